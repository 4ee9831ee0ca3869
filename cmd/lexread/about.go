package main

import (
	"fmt"

	"github.com/lexread/lexread/internal/metadata"
	"github.com/lexread/lexread/internal/version"
	"github.com/spf13/cobra"
)

func newAboutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "about",
		Short: "Show a short description and the models in use",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: floating selection translator\n", version.AppName)
			fmt.Fprintln(out, version.Info())
			for _, m := range metadata.GeminiModels {
				fmt.Fprintf(out, "  %-8s %s (%s)\n", m.Mode, m.Label, m.ID)
			}
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
