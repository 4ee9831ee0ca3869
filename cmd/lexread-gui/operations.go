package main

import (
	"strings"

	"github.com/atotto/clipboard"

	"github.com/lexread/lexread/internal/logger"
	"github.com/lexread/lexread/internal/overlay"
)

var (
	readClipboard  = clipboard.ReadAll
	writeClipboard = clipboard.WriteAll
)

// pasteSource reads the clipboard off the UI goroutine and treats its
// content as a deliberate selection.
func (a *overlayApp) pasteSource() {
	a.safeGo("clipboard.paste", a.pasteSourceNow)
}

func (a *overlayApp) pasteSourceNow() {
	text, err := readClipboard()
	if err != nil {
		logger.Warn("Clipboard read failed", "error", err)
		a.notify(overlay.ToastClipboardDenied)
		return
	}
	if strings.TrimSpace(text) == "" {
		return
	}
	a.ctrl.Select(text)
	a.notify(overlay.ToastSourcePasted)
}

func (a *overlayApp) copyTranslation() {
	text, ok := a.ctrl.CopyText()
	if !ok {
		a.notify(overlay.ToastNothingToCopy)
		return
	}
	if err := writeClipboard(text); err != nil {
		logger.Warn("Clipboard write failed", "error", err)
		a.notify(overlay.ToastClipboardDenied)
		return
	}
	a.notify(overlay.ToastTranslationCopied)
}

// notify shows a toast localized for the current target language.
func (a *overlayApp) notify(kind overlay.ToastKind) {
	text := overlay.ToastText(kind, a.ctrl.Snapshot().TargetLanguage)
	a.safeDo("toast.show", func() { a.showToast(text) })
}
