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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/internal/iofs"
	"github.com/gnames/wcvpseed/internal/iologger"
	app "github.com/gnames/wcvpseed/pkg"
	"github.com/gnames/wcvpseed/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd creates the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "wcvpseed",
		Short:   "Generates species seed SQL from WCVP checklist",
		Long: `wcvpseed converts the World Checklist of Vascular Plants (WCVP)
into a SQL seed for the species table of the MainVerte database.

Passes of the build command:
  1. Extract accepted species from the checklist zip archive
     into a prepared CSV table
  2. Validate that genus and species combinations are unique
  3. Classify climate, moisture, life time and shape of every
     species and write batched INSERT statements
  4. Optionally load the seed into in-memory SQLite

Configuration is kept in ~/.config/wcvpseed/config.yaml and can be
overridden by WCVPSEED_* environment variables and flags.`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "wcvpseed version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for wcvpseed")

	rootCmd.AddCommand(
		getBuildCmd(),
		getValidateCmd(),
		getCheckCmd(),
		getLoadCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings, keeping lines written
	// so far.
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

// Execute runs the root command. This is called by main.main(). Any
// error gives a non-zero exit status.
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("WCVPSEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Archive configuration
	v.BindEnv("archive.member", "WCVPSEED_ARCHIVE_MEMBER")

	// Emit configuration
	v.BindEnv("emit.batch_size", "WCVPSEED_EMIT_BATCH_SIZE")
	v.BindEnv("emit.prepared_path", "WCVPSEED_EMIT_PREPARED_PATH")

	// Database configuration
	v.BindEnv("database.host", "WCVPSEED_DATABASE_HOST")
	v.BindEnv("database.port", "WCVPSEED_DATABASE_PORT")
	v.BindEnv("database.user", "WCVPSEED_DATABASE_USER")
	v.BindEnv("database.password", "WCVPSEED_DATABASE_PASSWORD")
	v.BindEnv("database.database", "WCVPSEED_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "WCVPSEED_DATABASE_SSL_MODE")

	// Log configuration
	v.BindEnv("log.level", "WCVPSEED_LOG_LEVEL")
	v.BindEnv("log.format", "WCVPSEED_LOG_FORMAT")
	v.BindEnv("log.destination", "WCVPSEED_LOG_DESTINATION")

	v.AutomaticEnv()
}
