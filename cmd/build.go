/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/internal/iobuild"
	"github.com/spf13/cobra"
)

// getBuildCmd returns the build command.
func getBuildCmd() *cobra.Command {
	buildCmd := &cobra.Command{
		Use:   "build <checklist.zip> <output.sql>",
		Short: "Generate SQL seed from WCVP checklist archive",
		Long: `Generate SQL seed for the species table from WCVP checklist.

This command:
  1. Reads the checklist (wcvp_names.csv) from the zip archive and
     keeps accepted species, dropping repeated taxa
  2. Writes the prepared CSV table (cache directory by default)
  3. Stops if some genus and species combination occurs more than once
  4. Classifies every species and writes INSERT statements in batches
  5. With --check, loads the result into in-memory SQLite

The output file is replaced only when all passes succeed.

Examples:
  # Build the seed with default settings
  wcvpseed build wcvp.zip seed_1.sql

  # Keep the prepared table next to the seed and verify the result
  wcvpseed build wcvp.zip seed_1.sql -p prepared.csv --check`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runBuild(cmd, args[0], args[1])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	buildCmd.Flags().StringP(
		"member", "m", "",
		"name of the checklist file inside the archive",
	)
	buildCmd.Flags().StringP(
		"prepared", "p", "",
		"path of the prepared CSV table",
	)
	buildCmd.Flags().IntP(
		"batch-size", "b", 0,
		"maximum number of rows per INSERT statement",
	)
	buildCmd.Flags().BoolP(
		"check", "c", false,
		"load the result into in-memory SQLite",
	)
	quietFlag(buildCmd)

	return buildCmd
}

func runBuild(cmd *cobra.Command, archivePath, sqlPath string) error {
	cfg.Update(flagOptions(cmd))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	_, err := iobuild.New(cfg).Build(ctx, archivePath, sqlPath)
	return err
}
