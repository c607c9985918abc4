package iobuild_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/internal/iobuild"
	"github.com/gnames/wcvpseed/internal/iotesting"
	"github.com/gnames/wcvpseed/pkg/config"
	"github.com/gnames/wcvpseed/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	cfg.Update([]config.Option{config.OptWithCheck(true)})
	dir := t.TempDir()

	source := iotesting.SourceHeader + "\n" +
		"Species|Accepted|Y|Rosaceae|Rosa|canina|Europe|shrub|temperate\n" +
		"Species|Synonym|Y|Rosaceae|Rosa|lutetiana|Europe|shrub|temperate\n" +
		"Genus|Accepted|Y|Rosaceae|Rosa||Europe||\n" +
		"Species|Accepted|Y| ROSACEAE |Rosa|Canina|Asia|tree|tropical\n" +
		"Species|Accepted|N|Poaceae|Poa|annua|Europe|annual herb|\n"
	archive := iotesting.WriteZip(t, dir, "wcvp_names.csv", source)
	sqlPath := filepath.Join(dir, "seed.sql")

	res, err := iobuild.New(cfg).Build(context.Background(), archive, sqlPath)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Extract.Total)
	assert.Equal(t, 2, res.Extract.Kept)
	assert.Equal(t, 1, res.Extract.Duplicates)
	assert.Equal(t, 1, res.Extract.Unreviewed)
	assert.Equal(t, 2, res.Validate.Rows)
	assert.Equal(t, 2, res.Emit.Rows)
	assert.Equal(t, 1, res.Emit.Statements)
	require.NotNil(t, res.Check)
	assert.Equal(t, 2, res.Check.Rows)

	data, err := os.ReadFile(sqlPath)
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO species (id, slug, name, family, genus, "+
			"geographic_origin, shape, lifetime, climate_zone, moisture)\n"+
			"VALUES\n"+
			"(0, 'rosaceae rosa canina', 'canina','rosaceae','rosa',0,9,0,1,0),\n"+
			"(1, 'poaceae poa annua', 'annua','poaceae','poa',0,5,1,0,0);\n",
		string(data),
	)

	_, err = os.Stat(cfg.PreparedPath())
	assert.NoError(t, err, "prepared table is kept")
}

func TestBuildWithoutCheck(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	dir := t.TempDir()
	archive := iotesting.WriteZip(t, dir, "wcvp_names.csv",
		iotesting.SourceHeader+"\n"+iotesting.SourceRows(3))

	res, err := iobuild.New(cfg).Build(
		context.Background(), archive, filepath.Join(dir, "seed.sql"),
	)
	require.NoError(t, err)
	assert.Nil(t, res.Check)
	assert.Equal(t, 3, res.Emit.Rows)
}

func TestBuildStops(t *testing.T) {
	tests := []struct {
		msg    string
		source string
		code   gn.ErrorCode
	}{
		{
			msg: "family conflict",
			source: iotesting.SourceHeader + "\n" +
				"Species|Accepted|Y|Rosaceae|Rosa|canina|||\n" +
				"Species|Accepted|Y|Fabaceae|Rosa|canina|||\n",
			code: errcode.DuplicateSpeciesError,
		},
		{
			msg: "unknown climate",
			source: iotesting.SourceHeader + "\n" +
				"Species|Accepted|Y|Rosaceae|Rosa|canina||shrub|lunar\n",
			code: errcode.UnknownClimateError,
		},
		{
			msg: "missing columns",
			source: "taxon_rank|taxon_status|family|genus|species\n" +
				"Species|Accepted|Rosaceae|Rosa|canina\n",
			code: errcode.MissingColumnsError,
		},
	}

	for _, v := range tests {
		cfg := iotesting.GetTestConfig(t)
		dir := t.TempDir()
		archive := iotesting.WriteZip(t, dir, "wcvp_names.csv", v.source)
		sqlPath := filepath.Join(dir, "seed.sql")

		_, err := iobuild.New(cfg).Build(context.Background(), archive, sqlPath)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)

		_, err = os.Stat(sqlPath)
		assert.True(t, os.IsNotExist(err), v.msg)
	}
}
