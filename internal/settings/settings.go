package settings

import (
	"strings"

	"github.com/lexread/lexread/internal/language"
	"github.com/lexread/lexread/internal/metadata"
)

type TextSize string

const (
	TextSizeSmall  TextSize = "SMALL"
	TextSizeNormal TextSize = "NORMAL"
	TextSizeLarge  TextSize = "LARGE"
	TextSizeXLarge TextSize = "XLARGE"
)

var TextSizes = []TextSize{TextSizeSmall, TextSizeNormal, TextSizeLarge, TextSizeXLarge}

type TextColor string

const (
	TextColorStandard TextColor = "STANDARD"
	TextColorGray     TextColor = "GRAY"
	TextColorBlue     TextColor = "BLUE"
	TextColorIndigo   TextColor = "INDIGO"
	TextColorEmerald  TextColor = "EMERALD"
)

var TextColors = []TextColor{TextColorStandard, TextColorGray, TextColorBlue, TextColorIndigo, TextColorEmerald}

type Theme string

const (
	ThemeLight Theme = "LIGHT"
	ThemeDark  Theme = "DARK"
	ThemeBlue  Theme = "BLUE"
	ThemeCream Theme = "CREAM"
	ThemeMint  Theme = "MINT"
	ThemeRose  Theme = "ROSE"
)

var Themes = []Theme{ThemeLight, ThemeDark, ThemeBlue, ThemeCream, ThemeMint, ThemeRose}

type Mode string

const (
	ModeFast    Mode = metadata.ModeFast
	ModePrecise Mode = metadata.ModePrecise
)

var Modes = []Mode{ModeFast, ModePrecise}

const DefaultTargetLanguage = "Chinese (Simplified)"

// AppSettings is the flat user configuration record.
// Credential is persisted through a SecretStore, never with the rest.
type AppSettings struct {
	TargetLanguage string    `json:"targetLanguage" mapstructure:"target_language"`
	TextSize       TextSize  `json:"textSize" mapstructure:"text_size"`
	TextColor      TextColor `json:"textColor" mapstructure:"text_color"`
	Theme          Theme     `json:"theme" mapstructure:"theme"`
	Mode           Mode      `json:"mode" mapstructure:"mode"`
	Pinned         bool      `json:"isPinned" mapstructure:"pinned"`
	Credential     string    `json:"-" mapstructure:"-"`
}

func Defaults() AppSettings {
	return AppSettings{
		TargetLanguage: DefaultTargetLanguage,
		TextSize:       TextSizeNormal,
		TextColor:      TextColorStandard,
		Theme:          ThemeMint,
		Mode:           ModeFast,
	}
}

// Normalize replaces unknown enum tags and blank fields with defaults.
// Known language aliases are resolved to their display names.
func (s AppSettings) Normalize() AppSettings {
	d := Defaults()
	s.TargetLanguage = strings.TrimSpace(s.TargetLanguage)
	if s.TargetLanguage == "" {
		s.TargetLanguage = d.TargetLanguage
	} else if lang, ok := language.Lookup(s.TargetLanguage); ok {
		s.TargetLanguage = lang.Name
	}
	s.TextSize = TextSize(normalizeTag(string(s.TextSize), TextSizes, d.TextSize))
	s.TextColor = TextColor(normalizeTag(string(s.TextColor), TextColors, d.TextColor))
	s.Theme = Theme(normalizeTag(string(s.Theme), Themes, d.Theme))
	s.Mode = Mode(normalizeTag(string(s.Mode), Modes, d.Mode))
	s.Credential = strings.TrimSpace(s.Credential)
	return s
}

// Model returns the Gemini model bound to the configured mode.
func (s AppSettings) Model() metadata.GeminiModel {
	m, _ := metadata.ModelForMode(string(s.Mode))
	return m
}

func normalizeTag[T ~string](raw string, valid []T, fallback T) string {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	for _, v := range valid {
		if string(v) == raw {
			return raw
		}
	}
	return string(fallback)
}

// ParseMode accepts a mode tag case-insensitively.
func ParseMode(raw string) (Mode, bool) {
	raw = strings.ToUpper(strings.TrimSpace(raw))
	for _, m := range Modes {
		if string(m) == raw {
			return m, true
		}
	}
	return "", false
}
