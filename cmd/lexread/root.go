package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lexread/lexread/internal/cleanup"
	"github.com/lexread/lexread/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type globalOptions struct {
	configPath string
}

func execute() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run executes the command tree and the registered cleanup hooks and
// returns the process exit code.
func run(args []string, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.Execute()

	if cerr := cleanup.RunAll(); cerr != nil {
		fmt.Fprintln(stderr, cerr)
		if err == nil {
			err = cerr
		}
	}
	if err != nil {
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	global := &globalOptions{}
	translateOpts := translateOptions{}

	cmd := &cobra.Command{
		Use:          "lexread",
		Short:        "LexRead: translate selected text with Gemini",
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0 && !translateOpts.hasSource():
				if cmd.Flags().NFlag() > 0 {
					_ = cmd.Usage()
					return fmt.Errorf("text to translate is required")
				}
				return cmd.Help()
			case len(args) > 0 && hasSubcommand(cmd, args[0]):
				_ = cmd.Usage()
				return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return runTranslate(cmd, args, global, &translateOpts)
		},
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(rootUsageTemplate)
	cmd.SetGlobalNormalizationFunc(dashedFlagNames)

	cmd.PersistentFlags().StringVar(&global.configPath, "config", "", "Settings file (default ~/.lexread/settings.json)")
	addTranslateFlags(cmd, &translateOpts)

	cmd.AddCommand(
		newAboutCmd(),
		newTranslateCmd(global),
		newSettingsCmd(global),
		newLanguagesCmd(),
		newEnvCmd(),
	)

	cmd.InitDefaultCompletionCmd()
	if sub, _, err := cmd.Find([]string{"completion"}); err == nil && sub != cmd {
		sub.Short = "Generate shell completion scripts"
		sub.SetUsageTemplate(subcommandUsageTemplate)
	}
	return cmd
}

// dashedFlagNames lets --log_file and --log-file mean the same flag.
func dashedFlagNames(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func hasSubcommand(cmd *cobra.Command, name string) bool {
	for _, c := range cmd.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}
