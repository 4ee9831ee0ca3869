package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lexread/lexread/internal/auth"
	"github.com/spf13/cobra"
)

type envDeleteOptions struct {
	yes bool
}

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage the Gemini API key in the OS keychain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEnvStatus(cmd)
		},
	}
	cmd.SetUsageTemplate(groupUsageTemplate)

	var del envDeleteOptions
	deleteCmd := leafCmd("delete", "Delete the key from the keychain", func(cmd *cobra.Command) error {
		return runEnvDelete(cmd, &del)
	})
	deleteCmd.Flags().BoolVarP(&del.yes, "yes", "y", false, "Delete without asking")

	cmd.AddCommand(
		leafCmd("setup", "Save a key to the keychain (prompted, never an argument)", runEnvSetup),
		deleteCmd,
		leafCmd("status", "Show where the key comes from (default)", runEnvStatus),
	)
	return cmd
}

// leafCmd builds an argument-less subcommand.
func leafCmd(use, short string, run func(*cobra.Command) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func runEnvSetup(cmd *cobra.Command) error {
	if !isTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("env setup needs an interactive terminal; set GEMINI_API_KEY instead")
	}
	promptKey, err := promptForKey("Gemini API Key: ")
	if err != nil {
		return fmt.Errorf("error reading key: %w", err)
	}
	key := strings.TrimSpace(promptKey)
	if key == "" {
		return fmt.Errorf("API key is required for setup")
	}
	if err := saveKey(key); err != nil {
		return fmt.Errorf("error saving key: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Saved Gemini API key to keychain.")
	return nil
}

func runEnvDelete(cmd *cobra.Command, opts *envDeleteOptions) error {
	ok, err := confirmer().Confirm("Delete the Gemini API key from the keychain?", opts.yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}
	if err := deleteKey(); err != nil {
		return fmt.Errorf("error deleting key: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Deleted Gemini API key from keychain.")
	return nil
}

func runEnvStatus(cmd *cobra.Command) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), "Gemini API Key: "+keyStatus())
	return err
}

// keyStatus never includes the key itself.
func keyStatus() string {
	if getStatus() {
		return fmt.Sprintf("Found (source=%s)", auth.SourceKeychain)
	}
	if key, ok := getEnvKey(); ok && key != "" {
		return fmt.Sprintf("Found (source=%s; %s)", auth.SourceEnv, strings.Join(auth.EnvVars, " or "))
	}
	return "Not Found (keychain empty, env not set)"
}
