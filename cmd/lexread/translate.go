package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lexread/lexread/internal/apperrors"
	"github.com/lexread/lexread/internal/language"
	"github.com/lexread/lexread/internal/logger"
	"github.com/lexread/lexread/internal/settings"
	"github.com/spf13/cobra"
)

// maxStdinBytes caps text read from stdin.
const maxStdinBytes = 1 << 20

type translateOptions struct {
	target      string
	mode        string
	stdin       bool
	clipboard   bool
	copy        bool
	logFilePath string
	debug       bool
}

// hasSource reports whether a flag names where the text comes from.
func (o *translateOptions) hasSource() bool { return o.stdin || o.clipboard }

func newTranslateCmd(global *globalOptions) *cobra.Command {
	opts := translateOptions{}
	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: "Translate text with Gemini",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, args, global, &opts)
		},
		SilenceUsage: true,
	}

	cmd.SetUsageTemplate(subcommandUsageTemplate)
	addTranslateFlags(cmd, &opts)
	return cmd
}

func addTranslateFlags(cmd *cobra.Command, opts *translateOptions) {
	cmd.Flags().StringVar(&opts.target, "target", "", "Target language name or code (default: from settings)")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Translation mode: fast or precise (default: from settings)")
	cmd.Flags().BoolVar(&opts.stdin, "stdin", false, "Read text from standard input")
	cmd.Flags().BoolVar(&opts.clipboard, "clipboard", false, "Read text from the clipboard")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the translation to the clipboard")
	cmd.Flags().StringVar(&opts.logFilePath, "log-file", "", "Path to save machine-readable JSONL logs")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
}

func runTranslate(cmd *cobra.Command, args []string, global *globalOptions, opts *translateOptions) error {
	if err := initLogging(opts.debug, opts.logFilePath); err != nil {
		return err
	}

	text, err := readInput(cmd, args, opts)
	if err != nil {
		return err
	}

	store, _, err := openSettings(global.configPath)
	if err != nil {
		return err
	}
	current := store.Get()

	target := current.TargetLanguage
	if opts.target != "" {
		lang, ok := language.Lookup(opts.target)
		if !ok {
			return fmt.Errorf("unsupported language: %s (see 'lexread languages')", opts.target)
		}
		target = lang.Name
	}
	mode := current.Mode
	if opts.mode != "" {
		m, ok := settings.ParseMode(opts.mode)
		if !ok {
			return fmt.Errorf("invalid mode %q (use fast or precise)", opts.mode)
		}
		mode = m
	}

	ctx, stop := signalContext()
	defer stop()

	out, err := newTranslator().Translate(ctx, text, target, mode, current.Credential)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn("Translation canceled")
			return nil
		}
		return translateError(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	if opts.copy {
		if err := writeClipboard(out); err != nil {
			logger.Warn("Clipboard write failed", "error", err)
			return fmt.Errorf("clipboard access denied")
		}
	}
	return nil
}

func readInput(cmd *cobra.Command, args []string, opts *translateOptions) (string, error) {
	sources := 0
	for _, set := range []bool{len(args) > 0, opts.stdin, opts.clipboard} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return "", fmt.Errorf("use only one of: text arguments, --stdin, --clipboard")
	}

	var text string
	switch {
	case opts.stdin:
		data, err := io.ReadAll(io.LimitReader(cmd.InOrStdin(), maxStdinBytes))
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	case opts.clipboard:
		clip, err := readClipboard()
		if err != nil {
			logger.Warn("Clipboard read failed", "error", err)
			return "", fmt.Errorf("clipboard access denied")
		}
		text = clip
	default:
		text = strings.Join(args, " ")
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("nothing to translate")
	}
	return text, nil
}

func translateError(err error) error {
	if apperrors.Is(err, apperrors.KindMissingCredential) {
		return fmt.Errorf("%s Run 'lexread env setup' to store one in the keychain", apperrors.PublicMessage(err))
	}
	return fmt.Errorf("translation failed: %s", apperrors.PublicMessage(err))
}
