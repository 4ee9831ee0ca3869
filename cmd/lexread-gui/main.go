package main

import (
	"fmt"
	"image/color"
	"os"
	"sync/atomic"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/lexread/lexread/internal/auth"
	"github.com/lexread/lexread/internal/cleanup"
	"github.com/lexread/lexread/internal/logger"
	"github.com/lexread/lexread/internal/overlay"
	"github.com/lexread/lexread/internal/settings"
	"github.com/lexread/lexread/internal/translate"
	"github.com/lexread/lexread/internal/version"
)

const appID = "io.lexread.app"

type overlayApp struct {
	fyneApp fyne.App
	window  fyne.Window
	store   *settings.Store
	ctrl    *overlay.Controller
	hub     *overlay.PointerHub
	host    *windowHost

	root    *fyne.Container
	reading *readingEntry

	panelBg       *canvas.Rectangle
	header        *dragArea
	title         *widget.Label
	pinBtn        *widget.Button
	settingsBtn   *widget.Button
	hideBtn       *widget.Button
	sourceCaption *widget.Label
	source        *sourceEntry
	divider       *dragArea
	targetCaption *widget.Label
	status        *widget.Label
	copyBtn       *widget.Button
	target        *copyLabel
	targetScroll  *container.Scroll
	errorLabel    *widget.Label
	handle        *dragArea
	restore       *widget.Button
	panelObjects  []fyne.CanvasObject

	toastBg   *canvas.Rectangle
	toastText *canvas.Text
	toastBox  *fyne.Container
	toastSeq  uint64

	// UI goroutine only.
	snap           overlay.Snapshot
	viewport       overlay.Size
	applyingSource bool
	settingsDialog dialog.Dialog

	latest atomic.Uint64
	panics atomic.Int64

	unsubscribe []func()
}

// overlayLayout fills the window with the reading surface and places the
// overlay from the last applied snapshot.
type overlayLayout struct{ a *overlayApp }

func (l overlayLayout) Layout(_ []fyne.CanvasObject, size fyne.Size) {
	l.a.layout(size)
}

func (l overlayLayout) MinSize([]fyne.CanvasObject) fyne.Size {
	return fyne.NewSize(overlay.MinWidth, overlay.MinHeight)
}

func newOverlayApp(fa fyne.App, w fyne.Window, store *settings.Store, tr translate.Translator) (*overlayApp, error) {
	a := &overlayApp{
		fyneApp: fa,
		window:  w,
		store:   store,
		hub:     overlay.NewPointerHub(),
		host:    &windowHost{window: w},
	}
	ctrl, err := overlay.New(overlay.Config{
		Settings:   store,
		Translator: tr,
		Host:       a.host,
		Pointer:    a.hub,
		Go: func(fn func()) {
			a.safeGo("translate.request", fn)
		},
	})
	if err != nil {
		return nil, err
	}
	a.ctrl = ctrl
	a.setupUI()

	a.unsubscribe = append(a.unsubscribe,
		ctrl.Subscribe(a.onSnapshot),
		store.Subscribe(func(_, updated settings.AppSettings) {
			a.safeDo("settings.appearance", func() { a.applyAppearance(updated) })
		}),
	)
	a.applyAppearance(store.Get())
	a.render(ctrl.Snapshot())
	return a, nil
}

func (a *overlayApp) setupUI() {
	a.reading = newReadingEntry(demoArticle, a.ctrl.Select)

	a.panelBg = canvas.NewRectangle(color.White)
	a.panelBg.CornerRadius = 8
	a.panelBg.StrokeWidth = 1

	a.header = newDragArea(a.hub, a.ctrl.PointerDown, desktop.PointerCursor, nil)
	a.title = widget.NewLabelWithStyle(version.AppName, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	a.title.Truncation = fyne.TextTruncateEllipsis

	a.pinBtn = widget.NewButtonWithIcon("", theme.RadioButtonIcon(), a.togglePin)
	a.settingsBtn = widget.NewButtonWithIcon("", theme.SettingsIcon(), a.showSettings)
	a.hideBtn = widget.NewButtonWithIcon("", theme.VisibilityOffIcon(), func() { a.ctrl.SetHidden(true) })
	for _, b := range []*widget.Button{a.pinBtn, a.settingsBtn, a.hideBtn} {
		b.Importance = widget.LowImportance
	}

	a.sourceCaption = widget.NewLabel("")
	a.sourceCaption.SizeName = theme.SizeNameCaptionText
	a.source = newSourceEntry(a.pasteSource)
	a.source.SetPlaceHolder("Select text or type here...")
	a.source.OnChanged = func(s string) {
		if !a.applyingSource {
			a.ctrl.Edit(s)
		}
	}

	a.divider = newDragArea(a.hub, a.ctrl.PointerDown, desktop.VResizeCursor, nil)

	a.targetCaption = widget.NewLabel("")
	a.targetCaption.SizeName = theme.SizeNameCaptionText
	a.status = widget.NewLabel("Translating...")
	a.status.SizeName = theme.SizeNameCaptionText
	a.status.Importance = widget.HighImportance
	a.status.Alignment = fyne.TextAlignTrailing
	a.status.Hide()
	a.copyBtn = widget.NewButtonWithIcon("", theme.ContentCopyIcon(), a.copyTranslation)
	a.copyBtn.Importance = widget.LowImportance
	a.target = newCopyLabel(a.copyTranslation)
	a.targetScroll = container.NewVScroll(a.target)
	a.errorLabel = widget.NewLabel("")
	a.errorLabel.Wrapping = fyne.TextWrapWord
	a.errorLabel.Importance = widget.DangerImportance
	a.errorLabel.Hide()

	a.handle = newDragArea(a.hub, a.ctrl.PointerDown, desktop.CrosshairCursor, theme.MenuDropDownIcon())

	a.restore = widget.NewButtonWithIcon(version.AppName, theme.VisibilityIcon(), func() { a.ctrl.SetHidden(false) })
	a.restore.Importance = widget.HighImportance
	a.restore.Hide()

	a.toastBg = canvas.NewRectangle(color.NRGBA{A: 0xcc})
	a.toastBg.CornerRadius = toastHeight / 2
	a.toastText = canvas.NewText("", color.White)
	a.toastText.Alignment = fyne.TextAlignCenter
	a.toastBox = container.NewStack(a.toastBg, container.NewCenter(a.toastText))
	a.toastBox.Hide()

	a.panelObjects = []fyne.CanvasObject{
		a.panelBg, a.header, a.title, a.pinBtn, a.settingsBtn, a.hideBtn,
		a.sourceCaption, a.source,
		a.targetCaption, a.status, a.copyBtn, a.targetScroll, a.errorLabel,
		a.divider, a.handle,
	}
	objects := append([]fyne.CanvasObject{a.reading}, a.panelObjects...)
	objects = append(objects, a.restore, a.toastBox)
	a.root = container.New(overlayLayout{a: a}, objects...)

	a.window.SetPadded(false)
	a.window.SetContent(a.root)
}

func (a *overlayApp) layout(size fyne.Size) {
	a.viewport = toSize(size)
	a.reading.Move(fyne.NewPos(0, 0))
	a.reading.Resize(size)
	a.ctrl.SetViewport(a.viewport)
	a.placePanel(a.snap)
	a.placeToast()
}

func (a *overlayApp) placePanel(snap overlay.Snapshot) {
	r := computePanel(snap.Geometry)
	a.ctrl.SetHeaderControls(r.headerControls())

	place(a.panelBg, r.Panel)
	place(a.header, r.Header)
	place(a.title, r.Title)
	place(a.pinBtn, r.control(controlPin))
	place(a.settingsBtn, r.control(controlSettings))
	place(a.hideBtn, r.control(controlHide))

	src := inset(r.Source, panePadding)
	caption, body := splitCaption(src)
	place(a.sourceCaption, caption)
	place(a.source, body)

	dst := inset(r.Target, panePadding)
	caption, body = splitCaption(dst)
	copyRect := overlay.Rect{
		Origin: overlay.Point{X: caption.Origin.X + caption.Size.Width - controlSize, Y: caption.Origin.Y},
		Size:   overlay.Size{Width: controlSize, Height: min(controlSize, caption.Size.Height)},
	}
	caption.Size.Width = max(caption.Size.Width-controlSize, 0)
	place(a.targetCaption, caption)
	place(a.status, caption)
	place(a.copyBtn, copyRect)
	if snap.Translation.Error != "" {
		banner := body
		banner.Size.Height = min(2*captionHeight, body.Size.Height)
		place(a.errorLabel, banner)
		body.Origin.Y += banner.Size.Height
		body.Size.Height -= banner.Size.Height
	}
	place(a.targetScroll, body)

	place(a.divider, r.Divider)
	place(a.handle, r.Handle)
	place(a.restore, restoreRect(snap.Geometry, a.viewport))
}

// splitCaption divides a pane into its caption row and body.
func splitCaption(r overlay.Rect) (caption, body overlay.Rect) {
	h := min(captionHeight, r.Size.Height)
	caption = overlay.Rect{Origin: r.Origin, Size: overlay.Size{Width: r.Size.Width, Height: h}}
	body = overlay.Rect{
		Origin: overlay.Point{X: r.Origin.X, Y: r.Origin.Y + h},
		Size:   overlay.Size{Width: r.Size.Width, Height: r.Size.Height - h},
	}
	return caption, body
}

// onSnapshot runs on whichever goroutine changed the controller. It records
// the newest version and hands the snapshot to the UI goroutine.
func (a *overlayApp) onSnapshot(snap overlay.Snapshot) {
	for {
		cur := a.latest.Load()
		if snap.Version <= cur || a.latest.CompareAndSwap(cur, snap.Version) {
			break
		}
	}
	a.safeDo("overlay.render", func() { a.render(snap) })
}

// render applies snap unless a newer one has been published.
func (a *overlayApp) render(snap overlay.Snapshot) {
	if snap.Version < a.latest.Load() || snap.Version < a.snap.Version {
		return
	}
	a.snap = snap
	t := snap.Translation

	if a.source.Text != t.SourceText {
		a.applyingSource = true
		a.source.SetText(t.SourceText)
		a.applyingSource = false
	}
	a.sourceCaption.SetText(fmt.Sprintf("Source · %d", snap.SourceCount()))
	a.targetCaption.SetText(fmt.Sprintf("%s · %d", snap.TargetLanguage, snap.TranslatedCount()))
	if a.target.Text != t.TranslatedText {
		a.target.SetText(t.TranslatedText)
	}

	if t.IsTranslating {
		a.status.Show()
	} else {
		a.status.Hide()
	}
	if t.Error != "" {
		a.errorLabel.SetText(t.Error)
		a.errorLabel.Show()
	} else {
		a.errorLabel.Hide()
	}

	if snap.Pinned {
		a.pinBtn.SetIcon(theme.RadioButtonCheckedIcon())
		a.pinBtn.Importance = widget.HighImportance
	} else {
		a.pinBtn.SetIcon(theme.RadioButtonIcon())
		a.pinBtn.Importance = widget.LowImportance
	}
	a.pinBtn.Refresh()

	for _, obj := range a.panelObjects {
		if snap.Hidden {
			obj.Hide()
			continue
		}
		switch obj {
		case a.status:
			if !t.IsTranslating {
				continue
			}
		case a.errorLabel:
			if t.Error == "" {
				continue
			}
		}
		obj.Show()
	}
	if snap.Hidden {
		a.restore.Show()
	} else {
		a.restore.Hide()
	}
	a.placePanel(snap)
}

func (a *overlayApp) applyAppearance(s settings.AppSettings) {
	look := appearanceFor(s)
	a.fyneApp.Settings().SetTheme(newOverlayTheme(look))
	a.panelBg.FillColor = look.Panel
	a.panelBg.StrokeColor = look.Border
	a.panelBg.Refresh()
	a.header.setFill(look.Header)
	a.divider.setFill(look.Border)
	a.handle.setFill(color.Transparent)
}

func (a *overlayApp) togglePin() {
	if err := a.ctrl.TogglePin(); err != nil {
		logger.Error("Failed to save pin state", "error", err)
		a.showToast("Could not save settings.")
	}
}

// showToast displays text for overlay.ToastDuration. A newer toast
// replaces an older one. Must run on the UI goroutine.
func (a *overlayApp) showToast(text string) {
	a.toastSeq++
	seq := a.toastSeq
	a.toastText.Text = text
	a.toastText.Refresh()
	a.placeToast()
	a.toastBox.Show()
	time.AfterFunc(overlay.ToastDuration, func() {
		a.safeDo("toast.hide", func() {
			if a.toastSeq == seq {
				a.toastBox.Hide()
			}
		})
	})
}

func (a *overlayApp) placeToast() {
	place(a.toastBox, toastRect(a.viewport, a.toastText.MinSize().Width))
}

func (a *overlayApp) shutdown() {
	for _, unsub := range a.unsubscribe {
		unsub()
	}
	a.unsubscribe = nil
	a.ctrl.Close()
}

func main() {
	logger.Init(logger.LevelInfo, nil)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unrecovered GUI panic", "scope", "main", "panic", fmt.Sprint(r))
			os.Exit(1)
		}
	}()

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(theme.DocumentIcon())

	store, err := settings.Open(settings.NewPreferencesBackend(fyneApp.Preferences()), auth.Keychain{})
	if err != nil {
		logger.Fatal("Failed to open settings", "error", err)
	}
	service := translate.NewService()
	cleanup.RegisterCloser("translator", service)

	w := fyneApp.NewWindow(version.AppName)
	w.SetMaster()
	w.Resize(fyne.NewSize(1100, 760))
	w.CenterOnScreen()

	a, err := newOverlayApp(fyneApp, w, store, service)
	if err != nil {
		logger.Fatal("Failed to start overlay", "error", err)
	}
	w.SetCloseIntercept(func() {
		a.shutdown()
		w.SetCloseIntercept(nil)
		w.Close()
	})

	w.ShowAndRun()
	if err := cleanup.RunAll(); err != nil {
		logger.Warn("Cleanup failed", "error", err)
	}
}
