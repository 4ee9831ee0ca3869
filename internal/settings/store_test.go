package settings

import (
	"errors"
	"testing"
)

type fakeSecrets struct {
	value  string
	setErr error
	sets   int
}

func (f *fakeSecrets) Get() (string, error) { return f.value, nil }

func (f *fakeSecrets) Set(v string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.value = v
	f.sets++
	return nil
}

type failingBackend struct {
	MemoryBackend
	loadErr error
	saveErr error
}

func (f *failingBackend) Load() (AppSettings, error) {
	if f.loadErr != nil {
		return AppSettings{}, f.loadErr
	}
	return f.MemoryBackend.Load()
}

func (f *failingBackend) Save(a AppSettings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	return f.MemoryBackend.Save(a)
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	want := AppSettings{
		TargetLanguage: "Chinese (Simplified)",
		TextSize:       TextSizeNormal,
		TextColor:      TextColorStandard,
		Theme:          ThemeMint,
		Mode:           ModeFast,
	}
	if d != want {
		t.Fatalf("Defaults() = %+v, want %+v", d, want)
	}
	if d.Model().ID != "gemini-2.5-flash" {
		t.Fatalf("default model = %q", d.Model().ID)
	}
}

func TestNormalize(t *testing.T) {
	got := AppSettings{
		TargetLanguage: " ja ",
		TextSize:       "large",
		TextColor:      "PURPLE",
		Theme:          "",
		Mode:           "precise",
		Credential:     "  key  ",
	}.Normalize()
	if got.TargetLanguage != "Japanese" {
		t.Errorf("TargetLanguage = %q", got.TargetLanguage)
	}
	if got.TextSize != TextSizeLarge {
		t.Errorf("TextSize = %q", got.TextSize)
	}
	if got.TextColor != TextColorStandard {
		t.Errorf("TextColor = %q", got.TextColor)
	}
	if got.Theme != ThemeMint {
		t.Errorf("Theme = %q", got.Theme)
	}
	if got.Mode != ModePrecise || got.Model().ID != "gemini-3-pro-preview" {
		t.Errorf("Mode = %q model = %q", got.Mode, got.Model().ID)
	}
	if got.Credential != "key" {
		t.Errorf("Credential = %q", got.Credential)
	}
}

func TestOpen_NilBackend(t *testing.T) {
	if _, err := Open(nil, nil); !errors.Is(err, ErrNoStore) {
		t.Fatalf("Open(nil) error = %v, want ErrNoStore", err)
	}
}

func TestNilStore(t *testing.T) {
	var s *Store
	if got := s.Get(); got != Defaults() {
		t.Fatalf("nil Get() = %+v, want defaults", got)
	}
	if err := s.Update(func(a *AppSettings) { a.Pinned = true }); !errors.Is(err, ErrNoStore) {
		t.Fatalf("nil Update() error = %v, want ErrNoStore", err)
	}
	if err := s.Reload(); !errors.Is(err, ErrNoStore) {
		t.Fatalf("nil Reload() error = %v, want ErrNoStore", err)
	}
	s.Subscribe(func(_, _ AppSettings) {})()
}

func TestOpen_LoadFailureFallsBackToDefaults(t *testing.T) {
	backend := &failingBackend{loadErr: errors.New("corrupt")}
	s, err := Open(backend, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Get() != Defaults() {
		t.Fatalf("Get() = %+v, want defaults", s.Get())
	}
}

func TestUpdate_WritesThrough(t *testing.T) {
	backend := &MemoryBackend{}
	secrets := &fakeSecrets{}
	s, err := Open(backend, secrets)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if err := s.Update(func(a *AppSettings) {
		a.TargetLanguage = "English"
		a.Credential = "AIza-secret"
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	saved, _ := backend.Load()
	if saved.TargetLanguage != "English" {
		t.Fatalf("backend TargetLanguage = %q", saved.TargetLanguage)
	}
	if saved.Credential != "" {
		t.Fatalf("credential leaked into backend record")
	}
	if secrets.value != "AIza-secret" {
		t.Fatalf("secret store value = %q", secrets.value)
	}
	if got := s.Get(); got.TargetLanguage != "English" || got.Credential != "AIza-secret" {
		t.Fatalf("Get() = %+v", got)
	}

	// Reopening sees the persisted record plus the stored credential.
	reopened, _ := Open(backend, secrets)
	if got := reopened.Get(); got.TargetLanguage != "English" || got.Credential != "AIza-secret" {
		t.Fatalf("reopened Get() = %+v", got)
	}
}

func TestUpdate_NoChangeSkipsSave(t *testing.T) {
	backend := &MemoryBackend{}
	s, _ := Open(backend, nil)
	if err := s.Update(func(a *AppSettings) {}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if backend.Saves != 0 {
		t.Fatalf("Saves = %d, want 0", backend.Saves)
	}
}

func TestUpdate_SaveFailureKeepsState(t *testing.T) {
	backend := &failingBackend{saveErr: errors.New("disk full")}
	s, _ := Open(backend, nil)
	called := false
	s.Subscribe(func(_, _ AppSettings) { called = true })

	err := s.Update(func(a *AppSettings) { a.Pinned = true })
	if err == nil {
		t.Fatalf("expected save error")
	}
	if s.Get().Pinned {
		t.Fatalf("state changed despite failed save")
	}
	if called {
		t.Fatalf("listener notified for failed save")
	}
}

func TestUpdate_SecretFailureKeepsState(t *testing.T) {
	s, _ := Open(&MemoryBackend{}, &fakeSecrets{setErr: errors.New("locked")})
	if err := s.Update(func(a *AppSettings) { a.Credential = "k" }); err == nil {
		t.Fatalf("expected credential error")
	}
	if s.Get().Credential != "" {
		t.Fatalf("credential changed despite failure")
	}
}

func TestUpdate_SaveFailureRestoresCredential(t *testing.T) {
	secrets := &fakeSecrets{value: "old-key"}
	backend := &failingBackend{}
	s, _ := Open(backend, secrets)
	backend.saveErr = errors.New("disk full")

	if err := s.Update(func(a *AppSettings) { a.Credential = "new-key" }); err == nil {
		t.Fatalf("expected save error")
	}
	if secrets.value != "old-key" {
		t.Fatalf("secret store holds %q after failed save", secrets.value)
	}
	if s.Get().Credential != "old-key" {
		t.Fatalf("in-memory credential = %q", s.Get().Credential)
	}
}

func TestSubscribe_NotifiesAndUnsubscribes(t *testing.T) {
	s, _ := Open(&MemoryBackend{}, nil)
	var got []AppSettings
	unsubscribe := s.Subscribe(func(old, updated AppSettings) {
		if old.Mode != ModeFast {
			t.Errorf("old mode = %q", old.Mode)
		}
		got = append(got, updated)
	})

	_ = s.Update(func(a *AppSettings) { a.Mode = ModePrecise })
	unsubscribe()
	unsubscribe()
	_ = s.Update(func(a *AppSettings) { a.Mode = ModeFast })

	if len(got) != 1 || got[0].Mode != ModePrecise {
		t.Fatalf("notifications = %+v", got)
	}
}

func TestReset(t *testing.T) {
	secrets := &fakeSecrets{value: "k"}
	s, _ := Open(&MemoryBackend{}, secrets)
	_ = s.Update(func(a *AppSettings) { a.Theme = ThemeDark })
	if err := s.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if s.Get() != Defaults() {
		t.Fatalf("Get() after reset = %+v", s.Get())
	}
	if secrets.value != "" {
		t.Fatalf("credential not cleared")
	}
}

func TestReload_NotifiesOnExternalChange(t *testing.T) {
	backend := &MemoryBackend{}
	s, _ := Open(backend, nil)
	notified := 0
	s.Subscribe(func(_, _ AppSettings) { notified++ })

	external := Defaults()
	external.Theme = ThemeRose
	_ = backend.Save(external)

	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if s.Get().Theme != ThemeRose {
		t.Fatalf("Theme = %q", s.Get().Theme)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if notified != 1 {
		t.Fatalf("notified = %d, want 1", notified)
	}
}

func TestParseMode(t *testing.T) {
	if m, ok := ParseMode(" precise "); !ok || m != ModePrecise {
		t.Fatalf("ParseMode = %q, %v", m, ok)
	}
	if _, ok := ParseMode("turbo"); ok {
		t.Fatalf("unexpected ok for unknown mode")
	}
}
