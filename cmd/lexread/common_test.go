package main

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lexread/lexread/internal/prompt"
	"github.com/lexread/lexread/internal/settings"
	"github.com/lexread/lexread/internal/translate"
)

type memorySecrets struct{ value string }

func (m *memorySecrets) Get() (string, error) { return m.value, nil }
func (m *memorySecrets) Set(v string) error   { m.value = v; return nil }

type translateCall struct {
	text, target string
	mode         settings.Mode
	credential   string
}

type stubTranslator struct {
	out   string
	err   error
	calls []translateCall
}

func (s *stubTranslator) Translate(_ context.Context, text, target string, mode settings.Mode, credential string) (string, error) {
	s.calls = append(s.calls, translateCall{text: text, target: target, mode: mode, credential: credential})
	return s.out, s.err
}

// withCLIStubs swaps every external dependency for an in-memory stand-in
// and returns the path of a throwaway settings file.
func withCLIStubs(t *testing.T, tr *stubTranslator, secrets *memorySecrets) string {
	t.Helper()

	prevSecrets := secretStore
	prevTranslator := newTranslator
	prevConfirmer := confirmer

	secretStore = secrets
	newTranslator = func() translate.Translator { return tr }
	confirmer = func() prompt.Confirmer {
		return prompt.Confirmer{In: strings.NewReader(""), Out: io.Discard, IsInteractive: func() bool { return false }}
	}

	t.Cleanup(func() {
		secretStore = prevSecrets
		newTranslator = prevTranslator
		confirmer = prevConfirmer
	})
	return filepath.Join(t.TempDir(), "settings.json")
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, "", args...)
}

func executeCommandWithInput(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
