package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/lexread/lexread/internal/settings"
)

// appearance is the resolved look of the overlay for one settings record.
type appearance struct {
	Panel      color.NRGBA
	Header     color.NRGBA
	Border     color.NRGBA
	Text       color.NRGBA
	SubText    color.NRGBA
	Handle     color.NRGBA
	TextSize   float32
	Dark       bool
	themeColor settings.Theme
}

var (
	textSizes = map[settings.TextSize]float32{
		settings.TextSizeSmall:  14,
		settings.TextSizeNormal: 16,
		settings.TextSizeLarge:  18,
		settings.TextSizeXLarge: 20,
	}

	textColors = map[settings.TextColor]color.NRGBA{
		settings.TextColorStandard: {R: 0x0f, G: 0x17, B: 0x2a, A: 0xff},
		settings.TextColorGray:     {R: 0x4b, G: 0x55, B: 0x63, A: 0xff},
		settings.TextColorBlue:     {R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff},
		settings.TextColorIndigo:   {R: 0x31, G: 0x2e, B: 0x81, A: 0xff},
		settings.TextColorEmerald:  {R: 0x06, G: 0x4e, B: 0x3b, A: 0xff},
	}

	panelColors = map[settings.Theme]color.NRGBA{
		settings.ThemeLight: {R: 0xff, G: 0xff, B: 0xff, A: 0xf2},
		settings.ThemeDark:  {R: 0x0f, G: 0x17, B: 0x2a, A: 0xf2},
		settings.ThemeBlue:  {R: 0xef, G: 0xf6, B: 0xff, A: 0xf2},
		settings.ThemeCream: {R: 0xff, G: 0xf7, B: 0xed, A: 0xf2},
		settings.ThemeMint:  {R: 0xec, G: 0xfd, B: 0xf5, A: 0xf2},
		settings.ThemeRose:  {R: 0xff, G: 0xf1, B: 0xf2, A: 0xf2},
	}

	darkText    = color.NRGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}
	darkSubText = color.NRGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
	subText     = color.NRGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	darkBorder  = color.NRGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff}
	lightBorder = color.NRGBA{A: 0x1a}
	accent      = color.NRGBA{R: 0x25, G: 0x63, B: 0xeb, A: 0xff}
	errorRed    = color.NRGBA{R: 0xdc, G: 0x26, B: 0x26, A: 0xff}
)

func appearanceFor(s settings.AppSettings) appearance {
	s = s.Normalize()
	a := appearance{
		Panel:      panelColors[s.Theme],
		Text:       textColors[s.TextColor],
		SubText:    subText,
		Border:     lightBorder,
		Handle:     color.NRGBA{A: 0x66},
		TextSize:   textSizes[s.TextSize],
		Dark:       s.Theme == settings.ThemeDark,
		themeColor: s.Theme,
	}
	if a.Dark {
		a.Text = darkText
		a.SubText = darkSubText
		a.Border = darkBorder
		a.Handle = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x66}
	}
	a.Header = shade(a.Panel, a.Dark)
	return a
}

// shade darkens light panels and lightens dark ones for the header strip.
func shade(c color.NRGBA, dark bool) color.NRGBA {
	const step = 0x10
	if dark {
		return color.NRGBA{R: c.R + step, G: c.G + step, B: c.B + step, A: 0xff}
	}
	return color.NRGBA{R: c.R - step, G: c.G - step, B: c.B - step, A: 0xff}
}

// overlayTheme applies the user's text size and colors on top of the
// default theme.
type overlayTheme struct {
	fyne.Theme
	look appearance
}

func newOverlayTheme(look appearance) overlayTheme {
	return overlayTheme{Theme: theme.DefaultTheme(), look: look}
}

func (t overlayTheme) Color(n fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	variant := theme.VariantLight
	if t.look.Dark {
		variant = theme.VariantDark
	}
	switch n {
	case theme.ColorNameForeground:
		return t.look.Text
	case theme.ColorNamePlaceHolder, theme.ColorNameDisabled:
		return t.look.SubText
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return accent
	case theme.ColorNameError:
		return errorRed
	case theme.ColorNameInputBackground:
		return color.Transparent
	}
	return t.Theme.Color(n, variant)
}

func (t overlayTheme) Size(n fyne.ThemeSizeName) float32 {
	switch n {
	case theme.SizeNameText:
		return t.look.TextSize
	case theme.SizeNameCaptionText:
		return t.look.TextSize - 3
	}
	return t.Theme.Size(n)
}
