package splitview

import "github.com/tilekit/splitview/internal/shell"

// AutoSnapPolicy fills the empty half of a split. It is installed while the
// controller is snapped and watches window activations and un-minimizes on
// the display; a qualifying window is snapped opposite the default side, an
// unqualifying one ends the split.
type AutoSnapPolicy struct {
	c    *Controller
	subs []shell.Subscription
}

func newAutoSnapPolicy(c *Controller) *AutoSnapPolicy {
	p := &AutoSnapPolicy{c: c}
	p.subs = append(p.subs,
		c.sh.ObserveActivation(p.onActivation),
		c.sh.ObserveShown(p.onShown),
	)
	return p
}

func (p *AutoSnapPolicy) teardown() {
	for _, s := range p.subs {
		s.Cancel()
	}
	p.subs = nil
}

func (p *AutoSnapPolicy) onActivation(gained shell.Window, reason shell.ActivationReason) {
	if reason == shell.ActivationWindowDisposition {
		return
	}
	p.consider(gained)
}

func (p *AutoSnapPolicy) onShown(w shell.Window) {
	c := p.c
	if active := c.sh.ActiveWindow(); active == nil || active.ID() != w.ID() {
		return
	}
	p.consider(w)
}

// consider decides what a newly activated window does to the split.
func (p *AutoSnapPolicy) consider(w shell.Window) {
	c := p.c
	if w == nil || c.state == StateNoSnap {
		return
	}
	if c.sh.DesksBeingModified() {
		return
	}
	if c.registry.Contains(w) || c.pending.IsPending(w) {
		return
	}
	if c.sh.IsDragged(w) || c.sh.IsDraggingTabs(w) || c.sh.ShouldHideDuringDrag(w) {
		return
	}
	if !inMRU(c.sh.MRUWindows(), w) {
		return
	}

	if !c.sh.InTabletMode() {
		// Clamshell split view lives inside overview; an activation
		// outside the split dismisses both.
		c.overview.End(shell.ReasonNormal)
		return
	}

	if c.divider.IsAnimating() {
		if c.sh.IsUserPositionable(w) {
			c.EndSplit(EndReasonUnsnappableWindowActivated)
		}
		return
	}

	if err := c.canSnap(w); err != nil {
		logger.Debug("activated window cannot join split", "window", w.ID(), "err", err)
		// Only a window the user could have positioned breaks the
		// split; system surfaces coming up leave it alone.
		if c.sh.IsUserPositionable(w) {
			c.EndSplit(EndReasonUnsnappableWindowActivated)
			c.sh.ShowCannotSnapNotice(w)
		}
		return
	}

	c.snapOpposite(w)
}

func inMRU(mru []shell.Window, w shell.Window) bool {
	for _, m := range mru {
		if m.ID() == w.ID() {
			return true
		}
	}
	return false
}
