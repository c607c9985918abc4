package iocheck_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/internal/iocheck"
	"github.com/gnames/wcvpseed/internal/ioemit"
	"github.com/gnames/wcvpseed/internal/iotesting"
	"github.com/gnames/wcvpseed/pkg/errcode"
	"github.com/gnames/wcvpseed/pkg/species"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEmitted(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	dir := t.TempDir()

	var sb strings.Builder
	sb.WriteString(strings.Join(species.Columns, ",") + "\n")
	for i := range 5_001 {
		fmt.Fprintf(&sb, "o'aceae,testia,sp%d,,annual herb,tropical seasonally dry\n", i)
	}
	csvPath := iotesting.WriteFile(t, dir, "prepared.csv", sb.String())
	sqlPath := filepath.Join(dir, "seed.sql")

	ctx := context.Background()
	emitted, err := ioemit.New(cfg).Emit(ctx, csvPath, sqlPath)
	require.NoError(t, err)

	res, err := iocheck.New().Check(ctx, sqlPath)
	require.NoError(t, err)
	assert.Equal(t, emitted.Rows, res.Rows)
	assert.Equal(t, emitted.Statements, res.Statements)
	assert.Equal(t, 2, res.Statements)
}

func TestCheckEmbeddedTerminator(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	dir := t.TempDir()
	csvPath := iotesting.WriteFile(t, dir, "prepared.csv",
		strings.Join(species.Columns, ",")+"\n"+
			"rosaceae,rosa,\"can;\nina\",,shrub,temperate\n"+
			"rosaceae,rosa,gallica,,shrub,temperate\n")
	sqlPath := filepath.Join(dir, "seed.sql")

	ctx := context.Background()
	_, err := ioemit.New(cfg).Emit(ctx, csvPath, sqlPath)
	require.NoError(t, err)

	res, err := iocheck.New().Check(ctx, sqlPath)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Statements)
	assert.Equal(t, 2, res.Rows)
}

func TestCheckEmpty(t *testing.T) {
	path := iotesting.WriteFile(t, t.TempDir(), "seed.sql", "")
	res, err := iocheck.New().Check(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Rows)
	assert.Equal(t, 0, res.Statements)
}

func TestCheckErrors(t *testing.T) {
	tuple := species.Row{Slug: "a b c", Name: "c", Family: "a", Genus: "b"}.Tuple()
	tests := []struct {
		msg  string
		seed string
		stmt int
	}{
		{
			msg: "duplicate slug",
			seed: species.InsertHeader + tuple + species.StatementEnd +
				species.InsertHeader +
				strings.Replace(tuple, "(0,", "(1,", 1) + species.StatementEnd,
			stmt: 2,
		},
		{
			msg:  "not sql",
			seed: "hello world;\n",
			stmt: 1,
		},
		{
			msg:  "unknown table",
			seed: "INSERT INTO genera (id) VALUES (1);\n",
			stmt: 1,
		},
	}

	for _, v := range tests {
		path := iotesting.WriteFile(t, t.TempDir(), "seed.sql", v.seed)
		_, err := iocheck.New().Check(context.Background(), path)
		require.Error(t, err, v.msg)

		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, errcode.SeedCheckError, gnErr.Code, v.msg)
		assert.Equal(t, v.stmt, gnErr.Vars[1], v.msg)
	}
}

func TestCheckNoFile(t *testing.T) {
	_, err := iocheck.New().Check(context.Background(), "/no/such/seed.sql")
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.ReadFileError, gnErr.Code)
}
