package main

import (
	"strings"
	"testing"

	"github.com/lexread/lexread/internal/settings"
)

func TestSettings_ShowDefaults(t *testing.T) {
	path := withCLIStubs(t, &stubTranslator{}, &memorySecrets{value: "AIza-secret"})
	out, err := executeCommand(t, "--config", path, "settings")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	for _, want := range []string{"Chinese (Simplified)", "NORMAL", "MINT", "gemini-2.5-flash", "set (keychain)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "AIza-secret") {
		t.Fatalf("output leaked credential")
	}
}

func TestSettings_SetPersists(t *testing.T) {
	path := withCLIStubs(t, &stubTranslator{}, &memorySecrets{})

	cases := []struct {
		key, value string
	}{
		{"target", "ja"},
		{"size", "large"},
		{"color", "Emerald"},
		{"theme", "dark"},
		{"mode", "PRECISE"},
		{"pinned", "true"},
	}
	for _, tc := range cases {
		if _, err := executeCommand(t, "--config", path, "settings", "set", tc.key, tc.value); err != nil {
			t.Fatalf("set %s=%s: %v", tc.key, tc.value, err)
		}
	}

	got, err := settings.NewFileBackend(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := settings.AppSettings{
		TargetLanguage: "Japanese",
		TextSize:       settings.TextSizeLarge,
		TextColor:      settings.TextColorEmerald,
		Theme:          settings.ThemeDark,
		Mode:           settings.ModePrecise,
		Pinned:         true,
	}
	if got != want {
		t.Fatalf("persisted = %+v, want %+v", got, want)
	}
}

func TestSettings_SetRejectsInvalid(t *testing.T) {
	path := withCLIStubs(t, &stubTranslator{}, &memorySecrets{})
	for _, args := range [][]string{
		{"settings", "set", "theme", "neon"},
		{"settings", "set", "pinned", "maybe"},
		{"settings", "set", "volume", "11"},
		{"settings", "set", "target", "Klingon"},
	} {
		if _, err := executeCommand(t, append([]string{"--config", path}, args...)...); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
	got, _ := settings.NewFileBackend(path).Load()
	if got.Normalize() != settings.Defaults() {
		t.Fatalf("invalid set changed settings: %+v", got)
	}
}

func TestSettings_ResetRequiresConfirmation(t *testing.T) {
	secrets := &memorySecrets{value: "AIza-secret"}
	path := withCLIStubs(t, &stubTranslator{}, secrets)

	if _, err := executeCommand(t, "--config", path, "settings", "set", "theme", "rose"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := executeCommand(t, "--config", path, "settings", "reset"); err == nil {
		t.Fatalf("expected non-interactive reset without -y to fail")
	}
	if _, err := executeCommand(t, "--config", path, "settings", "reset", "-y"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got, _ := settings.NewFileBackend(path).Load()
	if got.Theme != settings.ThemeMint {
		t.Fatalf("theme = %q after reset", got.Theme)
	}
	if secrets.value != "" {
		t.Fatalf("credential not cleared by reset")
	}
}

func TestLanguages(t *testing.T) {
	out, err := executeCommand(t, "languages")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "Japanese") || !strings.Contains(out, "[zh-Hans]") {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestLanguages_Query(t *testing.T) {
	out, err := executeCommand(t, "list", "chinese")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "[zh-Hant]") || strings.Contains(out, "Japanese") {
		t.Fatalf("unexpected output: %s", out)
	}
	if _, err := executeCommand(t, "languages", "klingon"); err == nil {
		t.Fatalf("expected error for a query with no matches")
	}
}

func TestAbout(t *testing.T) {
	out, err := executeCommand(t, "about")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "gemini-3-pro-preview") {
		t.Fatalf("about missing model list: %s", out)
	}
}
