package main

import (
	"sync/atomic"

	"fyne.io/fyne/v2"

	"github.com/lexread/lexread/internal/logger"
	"github.com/lexread/lexread/internal/version"
)

// windowHost is the native window surface the controller drives.
type windowHost struct {
	window fyne.Window
	onTop  atomic.Bool
}

// SetAlwaysOnTop records the pinned state and marks it in the window title.
// TODO: call a native always-on-top API once fyne.Window exposes one.
func (h *windowHost) SetAlwaysOnTop(on bool) {
	if h.onTop.Swap(on) == on {
		return
	}
	logger.Info("Always-on-top changed", "pinned", on)
	title := windowTitle(on)
	safeDo("host.title", func() {
		if h.window != nil {
			h.window.SetTitle(title)
		}
	})
}

func windowTitle(pinned bool) string {
	if pinned {
		return version.AppName + " (pinned)"
	}
	return version.AppName
}
