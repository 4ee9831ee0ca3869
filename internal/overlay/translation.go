package overlay

import (
	"context"
	"strings"
)

// Select handles a deliberate capture: text selected outside the window or
// pasted into the source pane. A hidden overlay is restored, the previous
// result is cleared and the request starts immediately. Blank text is
// ignored.
func (c *Controller) Select(text string) {
	if isBlank(text) {
		return
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.debounce.cancel()
	c.hidden = false
	c.state = TranslationState{SourceText: text}
	launch := c.startLocked(text, true)
	c.commit(effects{notify: true, launch: launch})
}

// Edit handles a change typed into the source pane. Requests are debounced;
// the previous translation stays visible until the new result arrives.
// A request already in flight is for stale text and is superseded, but the
// indicator stays on until the debounced request lands. Blank text cancels
// everything pending and clears the target pane.
func (c *Controller) Edit(text string) {
	c.mu.Lock()
	if c.closed || text == c.state.SourceText {
		c.mu.Unlock()
		return
	}
	c.state.SourceText = text
	if isBlank(text) {
		c.debounce.cancel()
		c.supersedeLocked()
		c.state.TranslatedText = ""
		c.state.IsTranslating = false
		c.state.Error = ""
	} else {
		if c.cancelInFlight != nil {
			c.supersedeLocked()
		}
		c.debounce.arm(c.delay, c.debounceFired)
	}
	c.commit(effects{notify: true})
}

// CopyText returns the translation for the copy affordance.
func (c *Controller) CopyText() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.TranslatedText == "" {
		return "", false
	}
	return c.state.TranslatedText, true
}

func (c *Controller) debounceFired(seq uint64) {
	c.mu.Lock()
	if c.closed || !c.debounce.current(seq) {
		c.mu.Unlock()
		return
	}
	c.debounce.consume()
	text := c.state.SourceText
	if isBlank(text) {
		c.mu.Unlock()
		return
	}
	launch := c.startLocked(text, false)
	c.commit(effects{notify: true, launch: launch})
}

// startLocked supersedes any in-flight request and returns the function
// that performs the new one. clear drops the previous translation first.
func (c *Controller) startLocked(text string, clear bool) func() {
	c.supersedeLocked()
	gen := c.generation
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelInFlight = cancel

	c.state.Error = ""
	c.state.IsTranslating = true
	if clear {
		c.state.TranslatedText = ""
	}

	s := c.settings
	return func() {
		out, err := c.translator.Translate(ctx, text, s.TargetLanguage, s.Mode, s.Credential)
		c.finish(gen, out, err)
	}
}

// supersedeLocked invalidates the in-flight request, if any. Its result
// will be dropped on arrival.
func (c *Controller) supersedeLocked() {
	c.generation++
	if c.cancelInFlight != nil {
		c.cancelInFlight()
		c.cancelInFlight = nil
	}
}

func (c *Controller) finish(gen uint64, out string, err error) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		olog().Debug("Dropped superseded translation result", "generation", gen)
		return
	}
	if c.cancelInFlight != nil {
		c.cancelInFlight()
		c.cancelInFlight = nil
	}
	c.state.IsTranslating = false
	if err != nil {
		c.state.Error = errorMessage(err)
	} else {
		c.state.TranslatedText = out
	}
	c.commit(effects{notify: true})
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
