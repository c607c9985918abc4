// Package iotesting provides shared test utilities: configuration that
// keeps every file inside of a temporary directory, and checklist
// archive fixtures.
package iotesting

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gnames/wcvpseed/pkg/config"
)

const (
	// TestDatabaseName is the database name used for all integration tests.
	// This ensures tests never accidentally run against production databases.
	TestDatabaseName = "wcvpseed_test"
)

// SourceHeader is a minimal WCVP checklist header.
const SourceHeader = "taxon_rank|taxon_status|reviewed|family|genus|species|" +
	"geographic_area|lifeform_description|climate_description"

// GetTestConfig returns a configuration with home directory and prepared
// table inside of t.TempDir(), and without progress bars.
func GetTestConfig(t *testing.T) *config.Config {
	t.Helper()

	home := t.TempDir()
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHomeDir(home),
		config.OptEmitPreparedPath(filepath.Join(home, "prepared.csv")),
		config.OptWithProgress(false),
	})
	return cfg
}

// WriteZip creates an archive in dir with one member holding content.
// Returns the archive path.
func WriteZip(t *testing.T, dir, member, content string) string {
	t.Helper()

	path := filepath.Join(dir, "checklist.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create archive: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create(member)
	if err != nil {
		t.Fatalf("Failed to add %s to archive: %v", member, err)
	}
	if _, err = w.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write %s: %v", member, err)
	}
	if err = zw.Close(); err != nil {
		t.Fatalf("Failed to close archive: %v", err)
	}
	return path
}

// SourceRows renders n accepted unique species rows in the checklist
// format, without header.
func SourceRows(n int) string {
	var sb strings.Builder
	for i := range n {
		fmt.Fprintf(&sb,
			"Species|Accepted|Y|Testaceae|Testia|sp%d|Mexico|perennial herb|temperate\n",
			i,
		)
	}
	return sb.String()
}

// WriteFile writes content to a file in dir and returns its path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// GetTestDatabaseConfig returns database settings for integration tests.
// Defaults can be changed with WCVPSEED_DATABASE_* environment variables,
// the database name is always TestDatabaseName.
func GetTestDatabaseConfig() *config.DatabaseConfig {
	cfg := config.New()
	var opts []config.Option
	if v := os.Getenv("WCVPSEED_DATABASE_HOST"); v != "" {
		opts = append(opts, config.OptDatabaseHost(v))
	}
	if v, err := strconv.Atoi(os.Getenv("WCVPSEED_DATABASE_PORT")); err == nil {
		opts = append(opts, config.OptDatabasePort(v))
	}
	if v := os.Getenv("WCVPSEED_DATABASE_USER"); v != "" {
		opts = append(opts, config.OptDatabaseUser(v))
	}
	if v := os.Getenv("WCVPSEED_DATABASE_PASSWORD"); v != "" {
		opts = append(opts, config.OptDatabasePassword(v))
	}
	opts = append(opts, config.OptDatabaseDatabase(TestDatabaseName))
	cfg.Update(opts)
	return &cfg.Database
}
