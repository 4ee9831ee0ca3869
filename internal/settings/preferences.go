package settings

import "fyne.io/fyne/v2"

// Preference keys, one per field.
const (
	KeyTargetLanguage = "TargetLanguage"
	KeyTextSize       = "TextSize"
	KeyTextColor      = "TextColor"
	KeyTheme          = "Theme"
	KeyMode           = "Mode"
	KeyPinned         = "Pinned"
)

// PreferencesBackend stores settings in the Fyne application preferences.
type PreferencesBackend struct {
	prefs fyne.Preferences
}

func NewPreferencesBackend(prefs fyne.Preferences) *PreferencesBackend {
	return &PreferencesBackend{prefs: prefs}
}

func (p *PreferencesBackend) Load() (AppSettings, error) {
	d := Defaults()
	return AppSettings{
		TargetLanguage: p.prefs.StringWithFallback(KeyTargetLanguage, d.TargetLanguage),
		TextSize:       TextSize(p.prefs.StringWithFallback(KeyTextSize, string(d.TextSize))),
		TextColor:      TextColor(p.prefs.StringWithFallback(KeyTextColor, string(d.TextColor))),
		Theme:          Theme(p.prefs.StringWithFallback(KeyTheme, string(d.Theme))),
		Mode:           Mode(p.prefs.StringWithFallback(KeyMode, string(d.Mode))),
		Pinned:         p.prefs.BoolWithFallback(KeyPinned, d.Pinned),
	}, nil
}

func (p *PreferencesBackend) Save(a AppSettings) error {
	p.prefs.SetString(KeyTargetLanguage, a.TargetLanguage)
	p.prefs.SetString(KeyTextSize, string(a.TextSize))
	p.prefs.SetString(KeyTextColor, string(a.TextColor))
	p.prefs.SetString(KeyTheme, string(a.Theme))
	p.prefs.SetString(KeyMode, string(a.Mode))
	p.prefs.SetBool(KeyPinned, a.Pinned)
	return nil
}
