package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"github.com/lexread/lexread/internal/auth"
	"github.com/lexread/lexread/internal/cleanup"
	"github.com/lexread/lexread/internal/files"
	"github.com/lexread/lexread/internal/logger"
	"github.com/lexread/lexread/internal/prompt"
	"github.com/lexread/lexread/internal/settings"
	"github.com/lexread/lexread/internal/translate"
)

// Replaced in tests.
var (
	isTerminal     = term.IsTerminal
	getEnvKey      = auth.GetEnvKey
	getStatus      = auth.GetStatus
	promptForKey   = auth.PromptForAPIKey
	saveKey        = auth.SaveKey
	deleteKey      = auth.DeleteKey
	readClipboard  = clipboard.ReadAll
	writeClipboard = clipboard.WriteAll
	confirmer      = prompt.DefaultConfirmer

	secretStore   settings.SecretStore = auth.Keychain{}
	newTranslator                      = func() translate.Translator { return translate.NewService() }
)

// openSettings opens the file-backed store at path, or the default path.
func openSettings(path string) (*settings.Store, *settings.FileBackend, error) {
	if path == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
		path = p
	}
	backend := settings.NewFileBackend(path)
	store, err := settings.Open(backend, secretStore)
	if err != nil {
		return nil, nil, err
	}
	return store, backend, nil
}

func initLogging(debug bool, logFilePath string) error {
	logLevel := logger.LevelInfo
	if debug {
		logLevel = logger.LevelDebug
	}
	var logFileW io.Writer
	if logFilePath != "" {
		if err := files.CheckPath(logFilePath); err != nil {
			return err
		}
		f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup.RegisterCloser("log file", f)
		logFileW = f
	}
	logger.Init(logLevel, logFileW)
	return nil
}

// signalContext is canceled by Ctrl-C or SIGTERM. The returned stop must be
// called once the command is done.
func signalContext() (context.Context, func()) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	unlog := context.AfterFunc(ctx, func() {
		logger.Warn("Cancellation requested")
	})
	return ctx, func() {
		unlog()
		stop()
	}
}
