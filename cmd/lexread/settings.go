package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/lexread/lexread/internal/language"
	"github.com/lexread/lexread/internal/logger"
	"github.com/lexread/lexread/internal/settings"
	"github.com/spf13/cobra"
)

type settingsResetOptions struct {
	yes bool
}

func newSettingsCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change persisted settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsShow(cmd, global)
		},
	}
	cmd.SetUsageTemplate(groupUsageTemplate)

	show := leafCmd("show", "Print current settings (default if no action given)", func(cmd *cobra.Command) error {
		return runSettingsShow(cmd, global)
	})
	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting (target, size, color, theme, mode, pinned)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSet(cmd, global, args[0], args[1])
		},
	}
	set.SetUsageTemplate(subcommandUsageTemplate)

	var resetOpts settingsResetOptions
	reset := leafCmd("reset", "Restore defaults and clear the stored API key", func(cmd *cobra.Command) error {
		return runSettingsReset(cmd, global, &resetOpts)
	})
	reset.Flags().BoolVarP(&resetOpts.yes, "yes", "y", false, "Reset without asking")

	watch := leafCmd("watch", "Print settings whenever the file changes", func(cmd *cobra.Command) error {
		return runSettingsWatch(cmd, global)
	})

	cmd.AddCommand(show, set, reset, watch)
	return cmd
}

func runSettingsShow(cmd *cobra.Command, global *globalOptions) error {
	store, backend, err := openSettings(global.configPath)
	if err != nil {
		return err
	}
	printSettings(cmd.OutOrStdout(), backend.Path(), store.Get())
	return nil
}

func printSettings(w io.Writer, path string, s settings.AppSettings) {
	credential := "not set"
	if s.Credential != "" {
		credential = "set (keychain)"
	}
	fmt.Fprintf(w, "File:            %s\n", path)
	fmt.Fprintf(w, "Target language: %s\n", s.TargetLanguage)
	fmt.Fprintf(w, "Text size:       %s\n", s.TextSize)
	fmt.Fprintf(w, "Text color:      %s\n", s.TextColor)
	fmt.Fprintf(w, "Theme:           %s\n", s.Theme)
	fmt.Fprintf(w, "Mode:            %s (%s)\n", s.Mode, s.Model().ID)
	fmt.Fprintf(w, "Pinned:          %t\n", s.Pinned)
	fmt.Fprintf(w, "API key:         %s\n", credential)
}

// settingsSetter validates value and applies it.
type settingsSetter func(a *settings.AppSettings, value string) error

var settingsSetters = map[string]settingsSetter{
	"target": func(a *settings.AppSettings, value string) error {
		lang, ok := language.Lookup(value)
		if !ok {
			return fmt.Errorf("unsupported language: %s", value)
		}
		a.TargetLanguage = lang.Name
		return nil
	},
	"size": func(a *settings.AppSettings, value string) error {
		v, err := matchTag(value, settings.TextSizes)
		a.TextSize = v
		return err
	},
	"color": func(a *settings.AppSettings, value string) error {
		v, err := matchTag(value, settings.TextColors)
		a.TextColor = v
		return err
	},
	"theme": func(a *settings.AppSettings, value string) error {
		v, err := matchTag(value, settings.Themes)
		a.Theme = v
		return err
	},
	"mode": func(a *settings.AppSettings, value string) error {
		v, err := matchTag(value, settings.Modes)
		a.Mode = v
		return err
	},
	"pinned": func(a *settings.AppSettings, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("pinned must be true or false")
		}
		a.Pinned = b
		return nil
	},
}

func matchTag[T ~string](value string, valid []T) (T, error) {
	needle := strings.ToUpper(strings.TrimSpace(value))
	names := make([]string, 0, len(valid))
	for _, v := range valid {
		if string(v) == needle {
			return v, nil
		}
		names = append(names, strings.ToLower(string(v)))
	}
	var zero T
	return zero, fmt.Errorf("invalid value %q (choose from: %s)", value, strings.Join(names, ", "))
}

func runSettingsSet(cmd *cobra.Command, global *globalOptions, key, value string) error {
	setter, ok := settingsSetters[strings.ToLower(key)]
	if !ok {
		return fmt.Errorf("unknown setting %q (target, size, color, theme, mode, pinned)", key)
	}
	store, backend, err := openSettings(global.configPath)
	if err != nil {
		return err
	}

	var setErr error
	if err := store.Update(func(a *settings.AppSettings) {
		next := *a
		if setErr = setter(&next, value); setErr == nil {
			*a = next
		}
	}); err != nil {
		return err
	}
	if setErr != nil {
		return setErr
	}
	printSettings(cmd.OutOrStdout(), backend.Path(), store.Get())
	return nil
}

func runSettingsReset(cmd *cobra.Command, global *globalOptions, opts *settingsResetOptions) error {
	ok, err := confirmer().Confirm("Reset all settings and clear the stored API key?", opts.yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
		return nil
	}
	store, backend, err := openSettings(global.configPath)
	if err != nil {
		return err
	}
	if err := store.Reset(); err != nil {
		return err
	}
	printSettings(cmd.OutOrStdout(), backend.Path(), store.Get())
	return nil
}

func runSettingsWatch(cmd *cobra.Command, global *globalOptions) error {
	store, backend, err := openSettings(global.configPath)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printSettings(out, backend.Path(), store.Get())

	unsubscribe := store.Subscribe(func(_, updated settings.AppSettings) {
		fmt.Fprintln(out, "--- settings changed ---")
		printSettings(out, backend.Path(), updated)
	})
	defer unsubscribe()

	if err := backend.Watch(func() {
		if err := store.Reload(); err != nil {
			logger.Warn("Failed to reload settings", "error", err)
		}
	}); err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()
	<-ctx.Done()
	return nil
}
