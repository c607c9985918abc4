package ioemit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/internal/iotesting"
	"github.com/gnames/wcvpseed/pkg/config"
	"github.com/gnames/wcvpseed/pkg/errcode"
	"github.com/gnames/wcvpseed/pkg/species"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "family,genus,species,geographic_area," +
	"lifeform_description,climate_description\n"

func preparedRows(n int) string {
	var sb strings.Builder
	sb.WriteString(header)
	for i := range n {
		fmt.Fprintf(&sb, "testaceae,testia,sp%d,mexico,perennial herb,temperate\n", i)
	}
	return sb.String()
}

func emit(
	t *testing.T,
	cfg *config.Config,
	content string,
) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	csvPath := iotesting.WriteFile(t, dir, "prepared.csv", content)
	sqlPath := filepath.Join(dir, "out", "seed.sql")

	stats, err := New(cfg).Emit(context.Background(), csvPath, sqlPath)
	if err != nil {
		assert.Nil(t, stats)
		return "", sqlPath, err
	}
	data, err := os.ReadFile(sqlPath)
	require.NoError(t, err)
	return string(data), sqlPath, nil
}

func TestEmitScenario(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	content := header +
		"rosaceae,rosa,canina,europe,shrub,temperate\n"

	res, sqlPath, err := emit(t, cfg, content)
	require.NoError(t, err)
	assert.Equal(t,
		"INSERT INTO species (id, slug, name, family, genus, "+
			"geographic_origin, shape, lifetime, climate_zone, moisture)\n"+
			"VALUES\n"+
			"(0, 'rosaceae rosa canina', 'canina','rosaceae','rosa',0,9,0,1,0);\n",
		res,
	)
	_, err = os.Stat(sqlPath + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestEmitStats(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	dir := t.TempDir()
	csvPath := iotesting.WriteFile(t, dir, "prepared.csv", preparedRows(3))

	stats, err := New(cfg).Emit(
		context.Background(), csvPath, filepath.Join(dir, "seed.sql"),
	)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Rows)
	assert.Equal(t, 1, stats.Statements)
}

func TestEmitBatches(t *testing.T) {
	tests := []struct {
		msg        string
		batchSize  int
		rows       int
		statements int
	}{
		{"default batch plus one", 5_000, 5_001, 2},
		{"exactly one batch", 5_000, 5_000, 1},
		{"small batches", 2, 5, 3},
		{"one row", 5_000, 1, 1},
		{"no rows", 5_000, 0, 0},
	}

	for _, v := range tests {
		cfg := iotesting.GetTestConfig(t)
		cfg.Update([]config.Option{config.OptEmitBatchSize(v.batchSize)})

		res, _, err := emit(t, cfg, preparedRows(v.rows))
		require.NoError(t, err, v.msg)

		assert.Equal(t, v.statements,
			strings.Count(res, "INSERT INTO species"), v.msg)
		assert.Equal(t, v.statements,
			strings.Count(res, species.StatementEnd), v.msg)
		assert.Equal(t, v.rows, strings.Count(res, "'testaceae testia sp"), v.msg)
		if v.rows == 0 {
			assert.Empty(t, res, v.msg)
			continue
		}
		assert.True(t, strings.HasSuffix(res, ");\n"), v.msg)
		last := fmt.Sprintf("(%d, 'testaceae testia sp%d'", v.rows-1, v.rows-1)
		assert.Contains(t, res, last, v.msg)
	}
}

func TestEmitBatchBoundary(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	cfg.Update([]config.Option{config.OptEmitBatchSize(2)})

	res, _, err := emit(t, cfg, preparedRows(3))
	require.NoError(t, err)
	stmts := strings.SplitAfter(res, species.StatementEnd)
	// SplitAfter leaves an empty tail after the last terminator
	require.Len(t, stmts, 3)
	assert.Equal(t, 2, strings.Count(stmts[0], "(")-1)
	assert.Contains(t, stmts[0], "(1, 'testaceae testia sp1'")
	assert.True(t, strings.HasPrefix(stmts[1], species.InsertHeader+"(2, "))
	assert.Empty(t, stmts[2])
}

func TestEmitEscaping(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	content := header +
		"o'family,gen'us,sp'ec,,,\n"

	res, _, err := emit(t, cfg, content)
	require.NoError(t, err)
	assert.Contains(t, res,
		"(0, 'o''family gen''us sp''ec', 'sp''ec','o''family','gen''us',0,0,0,0,0)")
}

func TestEmitIgnoredLifeform(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	content := header +
		"orchidaceae,vanilla,aphylla,,epiphyte,tropical wet\n" +
		"cactaceae,opuntia,ficus,, Perennial Succulent ,desert dry\n"

	res, _, err := emit(t, cfg, content)
	require.NoError(t, err)
	assert.Contains(t, res, ",0,0,0,2,1)")
	assert.Contains(t, res, ",0,8,3,4,2);\n")
}

func TestEmitClassificationErrors(t *testing.T) {
	tests := []struct {
		msg   string
		row   string
		code  gn.ErrorCode
		value string
	}{
		{
			msg:   "unknown climate",
			row:   "a,b,c,,herb,mediterranean\n",
			code:  errcode.UnknownClimateError,
			value: "mediterranean",
		},
		{
			msg:   "unclassified lifeform",
			row:   "a,b,c,,seagrass,temperate\n",
			code:  errcode.UnclassifiedLifeformError,
			value: "seagrass",
		},
	}

	for _, v := range tests {
		cfg := iotesting.GetTestConfig(t)
		content := preparedRows(2) + v.row
		_, sqlPath, err := emit(t, cfg, content)
		require.Error(t, err, v.msg)

		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), v.msg)
		assert.Equal(t, v.code, gnErr.Code, v.msg)
		assert.Equal(t, v.value, gnErr.Vars[0], v.msg)

		_, err = os.Stat(sqlPath)
		assert.True(t, os.IsNotExist(err), v.msg)
		_, err = os.Stat(sqlPath + ".tmp")
		assert.True(t, os.IsNotExist(err), v.msg)
	}
}

func TestEmitMissingColumns(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	_, sqlPath, err := emit(t, cfg, "family,genus,species\nrosaceae,rosa,canina\n")
	require.Error(t, err)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.MissingColumnsError, gnErr.Code)
	assert.Equal(t,
		"climate_description, geographic_area, lifeform_description",
		gnErr.Vars[1],
	)
	_, err = os.Stat(sqlPath)
	assert.True(t, os.IsNotExist(err))
}

func TestEmitReplacesOutput(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	dir := t.TempDir()
	csvPath := iotesting.WriteFile(t, dir, "prepared.csv", preparedRows(1))
	sqlPath := iotesting.WriteFile(t, dir, "seed.sql", "stale content")

	_, err := New(cfg).Emit(context.Background(), csvPath, sqlPath)
	require.NoError(t, err)
	data, err := os.ReadFile(sqlPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}

func TestEmitCancelled(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	dir := t.TempDir()
	csvPath := iotesting.WriteFile(t, dir, "prepared.csv",
		preparedRows(cancelCheckRows+1))
	sqlPath := filepath.Join(dir, "seed.sql")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(cfg).Emit(ctx, csvPath, sqlPath)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CancelledError, gnErr.Code)
	_, err = os.Stat(sqlPath)
	assert.True(t, os.IsNotExist(err))
}
