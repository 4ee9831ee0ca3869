package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/lexread/lexread/internal/files"
	"github.com/lexread/lexread/internal/logger"
)

// EnvPrefix scopes environment overrides, e.g. LEXREAD_TARGET_LANGUAGE.
const EnvPrefix = "LEXREAD"

const (
	fieldTargetLanguage = "target_language"
	fieldTextSize       = "text_size"
	fieldTextColor      = "text_color"
	fieldTheme          = "theme"
	fieldMode           = "mode"
	fieldPinned         = "pinned"
)

// DefaultPath returns ~/.lexread/settings.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".lexread", "settings.json"), nil
}

// FileBackend reads a JSON settings file through viper, with environment
// overrides, and writes it back atomically.
type FileBackend struct {
	path string

	mu       sync.Mutex
	v        *viper.Viper
	watching bool
}

func NewFileBackend(path string) *FileBackend {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault(fieldTargetLanguage, d.TargetLanguage)
	v.SetDefault(fieldTextSize, string(d.TextSize))
	v.SetDefault(fieldTextColor, string(d.TextColor))
	v.SetDefault(fieldTheme, string(d.Theme))
	v.SetDefault(fieldMode, string(d.Mode))
	v.SetDefault(fieldPinned, d.Pinned)

	return &FileBackend{path: path, v: v}
}

func (b *FileBackend) Path() string { return b.path }

func (b *FileBackend) Load() (AppSettings, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return AppSettings{}, fmt.Errorf("read settings file %s: %w", b.path, err)
		}
	}

	var out AppSettings
	if err := b.v.Unmarshal(&out); err != nil {
		return AppSettings{}, fmt.Errorf("decode settings file %s: %w", b.path, err)
	}
	return out, nil
}

// fileRecord is the on-disk shape. Keys match the viper field names.
type fileRecord struct {
	TargetLanguage string `json:"target_language"`
	TextSize       string `json:"text_size"`
	TextColor      string `json:"text_color"`
	Theme          string `json:"theme"`
	Mode           string `json:"mode"`
	Pinned         bool   `json:"pinned"`
}

func (b *FileBackend) Save(a AppSettings) error {
	rec := fileRecord{
		TargetLanguage: a.TargetLanguage,
		TextSize:       string(a.TextSize),
		TextColor:      string(a.TextColor),
		Theme:          string(a.Theme),
		Mode:           string(a.Mode),
		Pinned:         a.Pinned,
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if err := files.MkdirPrivate(filepath.Dir(b.path)); err != nil {
		return err
	}
	return files.Replace(b.path, data, 0600)
}

// Watch calls onChange whenever the settings file changes on disk.
// Repeated calls are no-ops. The file's directory must exist.
func (b *FileBackend) Watch(onChange func()) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.watching {
		return nil
	}
	if err := files.MkdirPrivate(filepath.Dir(b.path)); err != nil {
		return err
	}

	b.v.OnConfigChange(func(e fsnotify.Event) {
		logger.Component("settings").Debug("Settings file change detected", "op", e.Op.String(), "file", e.Name)
		onChange()
	})
	b.v.WatchConfig()
	b.watching = true
	return nil
}
