package lifecycle_test

import (
	"testing"

	"github.com/gnames/wcvpseed/internal/iobuild"
	"github.com/gnames/wcvpseed/pkg/config"
	"github.com/gnames/wcvpseed/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestBuilderContract ensures that the builder from iobuild satisfies
// the lifecycle.Builder interface.
func TestBuilderContract(t *testing.T) {
	var b lifecycle.Builder = iobuild.New(config.New())
	assert.NotNil(t, b)
}
