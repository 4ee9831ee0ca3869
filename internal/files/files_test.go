package files

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func skipWithoutSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("creating symlinks needs elevated rights on Windows")
	}
}

// tempDir resolves links in the temp root itself, such as /var on macOS.
func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("resolve temp dir: %v", err)
	}
	return dir
}

func TestCheckPath_Links(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp := tempDir(t)
	if err := os.MkdirAll(filepath.Join(tmp, "real", "nested"), 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	settingsFile := filepath.Join(tmp, "real", "settings.json")
	if err := os.WriteFile(settingsFile, []byte("{}"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Symlink(filepath.Join(tmp, "real"), filepath.Join(tmp, "link")); err != nil {
		t.Fatalf("symlink dir: %v", err)
	}
	if err := os.Symlink(settingsFile, filepath.Join(tmp, "real", "alias.json")); err != nil {
		t.Fatalf("symlink file: %v", err)
	}

	cases := []struct {
		name string
		path string
		at   string
	}{
		{"file", filepath.Join(tmp, "real", "alias.json"), "alias.json"},
		{"parent", filepath.Join(tmp, "link", "settings.json"), "link"},
		{"ancestor", filepath.Join(tmp, "link", "nested", "settings.json"), "link"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckPath(tc.path)
			if !errors.Is(err, ErrLinkedPath) {
				t.Fatalf("CheckPath() = %v, want ErrLinkedPath", err)
			}
			var le *LinkError
			if !errors.As(err, &le) || filepath.Base(le.At) != tc.at {
				t.Fatalf("link reported at %v, want %s", le, tc.at)
			}
		})
	}
}

func TestCheckPath_PlainAndMissing(t *testing.T) {
	tmp := tempDir(t)
	for _, p := range []string{
		tmp,
		filepath.Join(tmp, "settings.json"),
		filepath.Join(tmp, "not", "yet", "created.json"),
	} {
		if err := CheckPath(p); err != nil {
			t.Errorf("CheckPath(%s) = %v", p, err)
		}
	}
	if err := CheckPath("  "); err == nil {
		t.Errorf("expected error for blank path")
	}
}

func TestAncestors(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix path layout")
	}
	got := ancestors("/home/ana/.config/lexread")
	want := []string{"/home", "/home/ana", "/home/ana/.config", "/home/ana/.config/lexread"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("ancestors = %v, want %v", got, want)
	}
	if got := ancestors("/"); len(got) != 0 {
		t.Fatalf("root ancestors = %v", got)
	}
}

func TestReplace_SwapsContent(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "settings.json")

	for _, body := range []string{`{"mode":"FAST"}`, `{"mode":"PRECISE"}`} {
		if err := Replace(path, []byte(body), 0o600); err != nil {
			t.Fatalf("Replace(%s): %v", body, err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != `{"mode":"PRECISE"}` {
		t.Fatalf("content = %s", data)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Fatalf("perm = %v, want 0600", info.Mode().Perm())
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("leftover files in %s: %v", dir, entries)
	}
}

func TestReplace_MissingDirectory(t *testing.T) {
	path := filepath.Join(tempDir(t), "missing", "settings.json")
	if err := Replace(path, []byte("{}"), 0o600); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestReplace_LeavesLinkTargetAlone(t *testing.T) {
	skipWithoutSymlinks(t)
	tmp := tempDir(t)
	target := filepath.Join(tmp, "target.json")
	if err := os.WriteFile(target, []byte("original"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	link := filepath.Join(tmp, "settings.json")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	if err := Replace(link, []byte("new"), 0o600); !errors.Is(err, ErrLinkedPath) {
		t.Fatalf("Replace() = %v, want ErrLinkedPath", err)
	}
	if data, _ := os.ReadFile(target); string(data) != "original" {
		t.Fatalf("target changed through link: %s", data)
	}
}

func TestMkdirPrivate(t *testing.T) {
	dir := filepath.Join(tempDir(t), "lexread", "state")
	if err := MkdirPrivate(dir); err != nil {
		t.Fatalf("MkdirPrivate: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected directory, err=%v", err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0o700 {
		t.Fatalf("perm = %v, want 0700", info.Mode().Perm())
	}
}
