package main

import (
	"fmt"

	"fyne.io/fyne/v2"

	"github.com/lexread/lexread/internal/logger"
)

const msgInternalError = "Something went wrong. Please try again."

// panicReporter is told about a recovered panic after it has been logged.
type panicReporter func(scope string, r any)

// guarded runs fn and turns a panic into a log line plus a report.
func guarded(scope string, report panicReporter, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		logger.Component("gui").Error("Recovered panic", "scope", scope, "panic", fmt.Sprint(r))
		if report != nil {
			report(scope, r)
		}
	}()
	fn()
}

// goGuarded runs fn on a new goroutine.
func goGuarded(scope string, report panicReporter, fn func()) {
	go guarded(scope, report, fn)
}

// doGuarded queues fn on the Fyne main goroutine. Both the hand-off and fn
// itself are guarded.
func doGuarded(scope string, report panicReporter, fn func()) {
	guarded(scope+".dispatch", report, func() {
		fyne.Do(func() { guarded(scope, report, fn) })
	})
}

func safeGo(scope string, fn func()) { goGuarded(scope, nil, fn) }
func safeDo(scope string, fn func()) { doGuarded(scope, nil, fn) }

func (a *overlayApp) reporter() panicReporter {
	if a == nil {
		return nil
	}
	return a.handleRecoveredPanic
}

func (a *overlayApp) safeGo(scope string, fn func()) { goGuarded(scope, a.reporter(), fn) }
func (a *overlayApp) safeDo(scope string, fn func()) { doGuarded(scope, a.reporter(), fn) }

// handleRecoveredPanic shows a toast and keeps the overlay running. The
// next selection or edit starts a fresh request.
func (a *overlayApp) handleRecoveredPanic(scope string, _ any) {
	if fyne.CurrentApp() == nil {
		return
	}
	a.panics.Add(1)
	safeDo("panic.notice", func() { a.showToast(msgInternalError) })
	logger.Component("gui").Warn("Overlay recovered from panic", "scope", scope)
}
