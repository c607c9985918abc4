package cmd

import (
	"github.com/gnames/wcvpseed/pkg/config"
	"github.com/spf13/cobra"
)

// flagOptions converts flags that were set on the command line into
// config options. Flags left at their defaults do not override the
// configuration file or environment.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	fs := cmd.Flags()

	if fs.Changed("member") {
		s, _ := fs.GetString("member")
		res = append(res, config.OptArchiveMember(s))
	}
	if fs.Changed("prepared") {
		s, _ := fs.GetString("prepared")
		res = append(res, config.OptEmitPreparedPath(s))
	}
	if fs.Changed("batch-size") {
		i, _ := fs.GetInt("batch-size")
		res = append(res, config.OptEmitBatchSize(i))
	}
	if fs.Changed("check") {
		b, _ := fs.GetBool("check")
		res = append(res, config.OptWithCheck(b))
	}
	if fs.Changed("quiet") {
		b, _ := fs.GetBool("quiet")
		res = append(res, config.OptWithProgress(!b))
	}
	return res
}

func quietFlag(cmd *cobra.Command) {
	cmd.Flags().BoolP("quiet", "q", false, "do not show progress bars")
}
