// Package metrics measures how long split view engagements last, including
// the aggregate window during which two or more displays are split at once.
// It replaces ad hoc globals with a service the shell constructs once and
// hands to each display's controller.
package metrics

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

var logger *log.Logger

func init() {
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "metrics",
	})
}

// Service accumulates split view timing across displays. All methods must
// be called from the UI thread.
type Service struct {
	clock func() time.Time

	splitStart      map[string]time.Time
	multiStart      time.Time
	multiTotal      time.Duration
	resizeStart     time.Time
	resizeDurations []time.Duration
	swaps           int
}

// NewService returns a service reading time from clock, time.Now when nil.
func NewService(clock func() time.Time) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{clock: clock, splitStart: make(map[string]time.Time)}
}

// SplitStarted records that the display entered split view.
func (s *Service) SplitStarted(display string) {
	if _, ok := s.splitStart[display]; ok {
		return
	}
	s.splitStart[display] = s.clock()
	if len(s.splitStart) == 2 {
		s.multiStart = s.clock()
	}
}

// SplitEnded records that the display left split view and logs the
// engagement duration.
func (s *Service) SplitEnded(display, reason string) {
	start, ok := s.splitStart[display]
	if !ok {
		return
	}
	delete(s.splitStart, display)
	if len(s.splitStart) == 1 && !s.multiStart.IsZero() {
		s.multiTotal += s.clock().Sub(s.multiStart)
		s.multiStart = time.Time{}
	}
	logger.Debug("split ended",
		"display", display,
		"reason", reason,
		"duration", s.clock().Sub(start),
	)
}

// InSplit reports whether the display is currently counted as split.
func (s *Service) InSplit(display string) bool {
	_, ok := s.splitStart[display]
	return ok
}

// MultiDisplayDuration returns the accumulated time during which at least
// two displays were split simultaneously, including any window still open.
func (s *Service) MultiDisplayDuration() time.Duration {
	total := s.multiTotal
	if !s.multiStart.IsZero() {
		total += s.clock().Sub(s.multiStart)
	}
	return total
}

// ResizeStarted marks the beginning of a divider drag.
func (s *Service) ResizeStarted() {
	s.resizeStart = s.clock()
}

// ResizeEnded closes the drag opened by ResizeStarted.
func (s *Service) ResizeEnded() {
	if s.resizeStart.IsZero() {
		return
	}
	s.resizeDurations = append(s.resizeDurations, s.clock().Sub(s.resizeStart))
	s.resizeStart = time.Time{}
}

// ResizeDurations returns every completed drag's duration, oldest first.
func (s *Service) ResizeDurations() []time.Duration {
	return append([]time.Duration(nil), s.resizeDurations...)
}

// SwapRecorded counts a double tap swap of the two snapped windows.
func (s *Service) SwapRecorded() {
	s.swaps++
}

// Swaps returns how many swaps have been recorded.
func (s *Service) Swaps() int { return s.swaps }
