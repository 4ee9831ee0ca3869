package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/lexread/lexread/internal/auth"
	"github.com/lexread/lexread/internal/language"
	"github.com/lexread/lexread/internal/logger"
	"github.com/lexread/lexread/internal/settings"
)

type option[T comparable] struct {
	label string
	value T
}

var (
	textSizeOptions = []option[settings.TextSize]{
		{"Small", settings.TextSizeSmall},
		{"Normal", settings.TextSizeNormal},
		{"Large", settings.TextSizeLarge},
		{"XL", settings.TextSizeXLarge},
	}
	textColorOptions = []option[settings.TextColor]{
		{"Standard", settings.TextColorStandard},
		{"Gray", settings.TextColorGray},
		{"Blue", settings.TextColorBlue},
		{"Indigo", settings.TextColorIndigo},
		{"Green", settings.TextColorEmerald},
	}
	themeOptions = []option[settings.Theme]{
		{"Light", settings.ThemeLight},
		{"Dark", settings.ThemeDark},
		{"Blue", settings.ThemeBlue},
		{"Cream", settings.ThemeCream},
		{"Mint", settings.ThemeMint},
		{"Rose", settings.ThemeRose},
	}
	modeOptions = []option[settings.Mode]{
		{modeLabel(settings.ModeFast), settings.ModeFast},
		{modeLabel(settings.ModePrecise), settings.ModePrecise},
	}
)

func modeLabel(m settings.Mode) string {
	model := settings.AppSettings{Mode: m}.Model()
	name := "Fast"
	if m == settings.ModePrecise {
		name = "Precise"
	}
	return fmt.Sprintf("%s (%s)", name, model.Label)
}

func optionLabels[T comparable](opts []option[T]) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.label
	}
	return out
}

func labelFor[T comparable](opts []option[T], v T) string {
	for _, o := range opts {
		if o.value == v {
			return o.label
		}
	}
	return ""
}

func valueFor[T comparable](opts []option[T], label string) (T, bool) {
	for _, o := range opts {
		if o.label == label {
			return o.value, true
		}
	}
	var zero T
	return zero, false
}

// filterLanguages returns the language names containing query, ignoring
// case. An empty query returns every name.
func filterLanguages(query string) []string {
	matches := language.Search(query)
	names := make([]string, len(matches))
	for i, l := range matches {
		names[i] = l.Name
	}
	return names
}

// settingsForm is bound to the store: every change is written through
// immediately. The credential is written when submitted.
type settingsForm struct {
	store *settings.Store

	credential *widget.Entry
	keyStatus  *widget.Label
	language   *widget.SelectEntry
	textSize   *widget.RadioGroup
	textColor  *widget.Select
	theme      *widget.Select
	mode       *widget.RadioGroup
	errLabel   *widget.Label

	loading bool
}

func newSettingsForm(store *settings.Store) *settingsForm {
	f := &settingsForm{store: store}

	f.credential = widget.NewPasswordEntry()
	f.credential.SetPlaceHolder("Gemini API key")
	f.credential.OnSubmitted = func(string) { f.saveCredential() }
	f.keyStatus = widget.NewLabel("")

	f.language = widget.NewSelectEntry(language.Names())
	f.language.OnChanged = func(s string) {
		if f.loading {
			return
		}
		f.language.SetOptions(filterLanguages(s))
		lang, ok := language.Lookup(s)
		if !ok {
			return
		}
		f.update(func(a *settings.AppSettings) { a.TargetLanguage = lang.Name })
	}

	f.textSize = widget.NewRadioGroup(optionLabels(textSizeOptions), func(s string) {
		if v, ok := valueFor(textSizeOptions, s); ok {
			f.update(func(a *settings.AppSettings) { a.TextSize = v })
		}
	})
	f.textSize.Horizontal = true
	f.textSize.Required = true

	f.textColor = widget.NewSelect(optionLabels(textColorOptions), func(s string) {
		if v, ok := valueFor(textColorOptions, s); ok {
			f.update(func(a *settings.AppSettings) { a.TextColor = v })
		}
	})
	f.theme = widget.NewSelect(optionLabels(themeOptions), func(s string) {
		if v, ok := valueFor(themeOptions, s); ok {
			f.update(func(a *settings.AppSettings) { a.Theme = v })
		}
	})
	f.mode = widget.NewRadioGroup(optionLabels(modeOptions), func(s string) {
		if v, ok := valueFor(modeOptions, s); ok {
			f.update(func(a *settings.AppSettings) { a.Mode = v })
		}
	})
	f.mode.Required = true

	f.errLabel = widget.NewLabel("")
	f.errLabel.Importance = widget.DangerImportance
	f.errLabel.Wrapping = fyne.TextWrapWord
	f.errLabel.Hide()

	f.load()
	return f
}

// load copies the stored record into the widgets without writing back.
func (f *settingsForm) load() {
	s := f.store.Get()
	f.loading = true
	defer func() { f.loading = false }()

	f.credential.SetText("")
	f.keyStatus.SetText(keyStatusText(s.Credential))
	f.language.SetText(s.TargetLanguage)
	f.language.SetOptions(language.Names())
	f.textSize.SetSelected(labelFor(textSizeOptions, s.TextSize))
	f.textColor.SetSelected(labelFor(textColorOptions, s.TextColor))
	f.theme.SetSelected(labelFor(themeOptions, s.Theme))
	f.mode.SetSelected(labelFor(modeOptions, s.Mode))
}

// keyStatusText describes which key a translation will use.
func keyStatusText(stored string) string {
	if stored != "" {
		return "Saved in keychain"
	}
	if _, ok := auth.GetEnvKey(); ok {
		return "Not saved; using the key from the environment"
	}
	return "Not set"
}

func (f *settingsForm) update(fn func(*settings.AppSettings)) {
	if f.loading {
		return
	}
	if err := f.store.Update(fn); err != nil {
		logger.Component("gui").Error("Failed to save settings", "error", err)
		f.errLabel.SetText("Could not save settings.")
		f.errLabel.Show()
		return
	}
	f.errLabel.Hide()
}

func (f *settingsForm) saveCredential() {
	key := strings.TrimSpace(f.credential.Text)
	if key == "" {
		return
	}
	f.update(func(a *settings.AppSettings) { a.Credential = key })
	if f.errLabel.Visible() {
		return
	}
	f.credential.SetText("")
	f.keyStatus.SetText(keyStatusText(key))
}

func (f *settingsForm) clearCredential() {
	f.update(func(a *settings.AppSettings) { a.Credential = "" })
	if !f.errLabel.Visible() {
		f.keyStatus.SetText(keyStatusText(""))
	}
}

func (f *settingsForm) reset() {
	f.update(func(a *settings.AppSettings) { *a = settings.Defaults() })
	f.load()
}

func (f *settingsForm) content() fyne.CanvasObject {
	keyRow := container.NewBorder(nil, nil, nil,
		container.NewHBox(
			widget.NewButton("Save", f.saveCredential),
			widget.NewButton("Clear", f.clearCredential),
		),
		f.credential,
	)
	form := widget.NewForm(
		widget.NewFormItem("API Key", container.NewVBox(keyRow, f.keyStatus)),
		widget.NewFormItem("Target Language", f.language),
		widget.NewFormItem("Text Size", f.textSize),
		widget.NewFormItem("Text Color", f.textColor),
		widget.NewFormItem("Background", f.theme),
		widget.NewFormItem("Mode", f.mode),
	)
	return container.NewVBox(form, f.errLabel, widget.NewButton("Reset to defaults", f.reset))
}

func (a *overlayApp) showSettings() {
	if a.settingsDialog != nil {
		a.settingsDialog.Show()
		return
	}
	form := newSettingsForm(a.store)
	d := dialog.NewCustom("Settings", "Close", form.content(), a.window)
	d.SetOnClosed(func() { a.settingsDialog = nil })
	d.Resize(fyne.NewSize(520, 560))
	a.settingsDialog = d
	d.Show()
}
