package main

import (
	"fmt"

	"github.com/lexread/lexread/internal/language"
	"github.com/spf13/cobra"
)

func newLanguagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "languages [query]",
		Aliases: []string{"list"},
		Short:   "List supported target languages, optionally filtered by name or code",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			matches := language.Search(query)
			if len(matches) == 0 {
				return fmt.Errorf("no language matches %q", query)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Supported Languages:")
			for _, l := range matches {
				fmt.Fprintf(out, "  %-35s [%s]\n", l.Name, l.Code)
			}
			return nil
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}
