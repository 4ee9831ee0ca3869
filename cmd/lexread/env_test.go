package main

import (
	"strings"
	"testing"
)

type keyStubs struct {
	saved      string
	deleted    int
	promptCall int
}

func withEnvStubs(t *testing.T, status bool, envKey, promptVal string) *keyStubs {
	t.Helper()
	stubs := &keyStubs{}

	prevStatus := getStatus
	prevEnv := getEnvKey
	prevPrompt := promptForKey
	prevSave := saveKey
	prevDelete := deleteKey
	prevTerminal := isTerminal

	getStatus = func() bool { return status }
	isTerminal = func(int) bool { return true }
	getEnvKey = func() (string, bool) {
		if envKey == "" {
			return "", false
		}
		return envKey, true
	}
	promptForKey = func(_ string) (string, error) {
		stubs.promptCall++
		return promptVal, nil
	}
	saveKey = func(key string) error {
		stubs.saved = key
		return nil
	}
	deleteKey = func() error {
		stubs.deleted++
		return nil
	}

	t.Cleanup(func() {
		getStatus = prevStatus
		getEnvKey = prevEnv
		promptForKey = prevPrompt
		saveKey = prevSave
		deleteKey = prevDelete
		isTerminal = prevTerminal
	})
	return stubs
}

func TestHandleEnv_Status(t *testing.T) {
	cases := []struct {
		name   string
		status bool
		envKey string
		want   string
	}{
		{name: "keychain", status: true, envKey: "AIza-env-secret", want: "Found (source=Keychain)"},
		{name: "env", status: false, envKey: "AIza-env-secret", want: "Found (source=Environment Variable"},
		{name: "not_found", status: false, envKey: "", want: "Not Found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			withEnvStubs(t, tc.status, tc.envKey, "")
			out, err := executeCommand(t, "env", "status")
			if err != nil {
				t.Fatalf("command failed: %v", err)
			}
			if !strings.Contains(out, tc.want) {
				t.Fatalf("expected %q, got: %s", tc.want, out)
			}
			if strings.Contains(out, "AIza-env-secret") {
				t.Fatalf("output leaked env key")
			}
		})
	}
}

func TestHandleEnv_DefaultsToStatus(t *testing.T) {
	withEnvStubs(t, false, "", "")
	out, err := executeCommand(t, "env")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "Not Found") {
		t.Fatalf("expected status output, got: %s", out)
	}
}

func TestHandleEnvSetup_SavesPromptedKey(t *testing.T) {
	stubs := withEnvStubs(t, false, "", "  AIza-new \n")
	out, err := executeCommand(t, "env", "setup")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if stubs.saved != "AIza-new" {
		t.Fatalf("saved key = %q", stubs.saved)
	}
	if strings.Contains(out, "AIza-new") {
		t.Fatalf("output leaked key: %s", out)
	}
}

func TestHandleEnvSetup_EmptyKeyRejected(t *testing.T) {
	stubs := withEnvStubs(t, false, "", "   ")
	if _, err := executeCommand(t, "env", "setup"); err == nil {
		t.Fatalf("expected error for empty key")
	}
	if stubs.saved != "" {
		t.Fatalf("empty key saved")
	}
}

func TestHandleEnvSetup_RejectsPositionalAPIKey(t *testing.T) {
	withEnvStubs(t, false, "", "")
	out, err := executeCommand(t, "env", "setup", "AIza-should-not-be-allowed")
	if err == nil {
		t.Fatalf("expected setup to reject positional API key argument")
	}
	if !strings.Contains(out, "unknown command") && !strings.Contains(out, "accepts 0 arg(s)") {
		t.Fatalf("expected positional-argument rejection error, got: %s", out)
	}
}

func TestHandleEnvDelete_RequiresConfirmation(t *testing.T) {
	withCLIStubs(t, &stubTranslator{}, &memorySecrets{})
	stubs := withEnvStubs(t, true, "", "")

	if _, err := executeCommand(t, "env", "delete"); err == nil {
		t.Fatalf("expected non-interactive delete without -y to fail")
	}
	if stubs.deleted != 0 {
		t.Fatalf("key deleted without confirmation")
	}

	for _, flag := range []string{"-y", "--yes"} {
		if _, err := executeCommand(t, "env", "delete", flag); err != nil {
			t.Fatalf("delete %s: %v", flag, err)
		}
	}
	if stubs.deleted != 2 {
		t.Fatalf("deleted = %d, want 2", stubs.deleted)
	}
}

func TestHandleEnvSetup_RequiresTerminal(t *testing.T) {
	stubs := withEnvStubs(t, false, "", "key")
	isTerminal = func(int) bool { return false }

	_, err := executeCommand(t, "env", "setup")
	if err == nil || !strings.Contains(err.Error(), "interactive terminal") {
		t.Fatalf("expected terminal error, got %v", err)
	}
	if stubs.promptCall != 0 || stubs.saved != "" {
		t.Fatalf("prompted without a terminal: %+v", stubs)
	}
}
