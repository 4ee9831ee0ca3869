package overlay

// PointerDown starts a drag session if p lands on the header, the resize
// handle or the pane divider. It reports whether a session started.
// While a session is active further pointer-downs are ignored.
func (c *Controller) PointerDown(p Point) bool {
	c.mu.Lock()
	if c.closed || c.hidden || c.session.Active() {
		c.mu.Unlock()
		return false
	}
	region := c.geometry.HitTest(p, c.controls)
	session, ok := beginSession(c.geometry, region, p, c.settings.Pinned)
	if !ok {
		c.mu.Unlock()
		return false
	}
	c.session = session
	c.release = c.pointer.Subscribe(c.PointerMove, c.PointerUp)
	olog().Debug("Drag session started", "kind", session.Kind.String(), "region", region.String())
	c.commit(effects{notify: true})
	return true
}

// PointerMove applies the active session to pointer position p.
func (c *Controller) PointerMove(p Point) {
	c.mu.Lock()
	if !c.session.Active() {
		c.mu.Unlock()
		return
	}
	next := c.session.apply(c.geometry, p, c.viewport)
	if next == c.geometry {
		c.mu.Unlock()
		return
	}
	c.geometry = next
	c.commit(effects{notify: true})
}

// PointerUp applies the final position and ends the session, releasing its
// pointer subscription.
func (c *Controller) PointerUp(p Point) {
	c.mu.Lock()
	if !c.session.Active() {
		c.mu.Unlock()
		return
	}
	c.geometry = c.session.apply(c.geometry, p, c.viewport)
	release := c.endSessionLocked()
	c.commit(effects{notify: true, release: release})
}

func (c *Controller) endSessionLocked() func() {
	olog().Debug("Drag session ended", "kind", c.session.Kind.String())
	release := c.release
	c.release = nil
	c.session = DragSession{}
	return release
}

// Geometry returns the current window geometry.
func (c *Controller) Geometry() Geometry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.geometry
}

// Session returns the kind of the active drag session.
func (c *Controller) Session() SessionKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.Kind
}
