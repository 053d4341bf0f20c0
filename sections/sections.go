// Package sections measures header and footer content and resolves which
// section applies to each page. Section content renders in a host-managed
// frame whose final height is only available after layout settles, so
// measurement polls the host with a bounded retry budget and degrades to
// the authored estimate when the frame never reports.
package sections

import (
	"context"
	"sync"
	"time"

	"github.com/Harbour-Enterprises/SuperDoc-sub009/observability"
)

// Section roles, in resolution precedence order.
const (
	RoleFirst   = "first"
	RoleEven    = "even"
	RoleLast    = "last"
	RoleDefault = "default"
)

// Section kinds.
const (
	KindHeader = "header"
	KindFooter = "footer"
)

// Section is one header or footer variant.
type Section struct {
	ID   string
	Kind string
	Role string

	// EstimatedHeightPx is the fallback used when the frame never reports
	// a measured height.
	EstimatedHeightPx float64

	// OffsetPx is the distance from the page edge to the band.
	OffsetPx float64

	// PaddingPx separates the band's content from its bottom edge.
	PaddingPx float64
}

// FramePoller reports the rendered height of a section frame. The second
// result is false while the frame has not finished layout; an error aborts
// the measurement.
type FramePoller interface {
	PollHeight(ctx context.Context, sectionID string) (float64, bool, error)
}

// DefaultMaxAttempts bounds how many times a frame is polled before the
// estimate wins.
const DefaultMaxAttempts = 10

// DefaultPollInterval is the delay between polls.
const DefaultPollInterval = 50 * time.Millisecond

// Measurer resolves section heights through a FramePoller. Each section is
// measured at most once; later calls return the recorded height, so a frame
// that settles after the retry budget cannot flip an already-published
// layout.
type Measurer struct {
	poller      FramePoller
	interval    time.Duration
	maxAttempts int
	log         observability.Logger

	mu       sync.Mutex
	resolved map[string]float64
}

// MeasurerOption configures a Measurer.
type MeasurerOption func(*Measurer)

// WithPollInterval sets the delay between frame polls.
func WithPollInterval(d time.Duration) MeasurerOption {
	return func(m *Measurer) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithMaxAttempts sets the polling retry budget.
func WithMaxAttempts(n int) MeasurerOption {
	return func(m *Measurer) {
		if n > 0 {
			m.maxAttempts = n
		}
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l observability.Logger) MeasurerOption {
	return func(m *Measurer) {
		if l != nil {
			m.log = l
		}
	}
}

// NewMeasurer creates a measurer over the given poller.
func NewMeasurer(poller FramePoller, opts ...MeasurerOption) *Measurer {
	m := &Measurer{
		poller:      poller,
		interval:    DefaultPollInterval,
		maxAttempts: DefaultMaxAttempts,
		log:         observability.NopLogger{},
		resolved:    make(map[string]float64),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MeasureHeight returns the section's content height in pixels. It polls the
// frame until it reports, the retry budget runs out, or ctx is done; the
// last two fall back to the authored estimate. The first resolution sticks.
func (m *Measurer) MeasureHeight(ctx context.Context, s Section) (float64, error) {
	m.mu.Lock()
	if h, ok := m.resolved[s.ID]; ok {
		m.mu.Unlock()
		return h, nil
	}
	m.mu.Unlock()

	h, err := m.poll(ctx, s)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// A concurrent call may have resolved first; its value wins.
	if prev, ok := m.resolved[s.ID]; ok {
		return prev, nil
	}
	m.resolved[s.ID] = h
	m.log.Debug(observability.MetricSectionMeasures,
		observability.String("sectionId", s.ID),
		observability.Float64("heightPx", h))
	return h, nil
}

func (m *Measurer) poll(ctx context.Context, s Section) (float64, error) {
	if m.poller == nil {
		return s.EstimatedHeightPx, nil
	}
	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	for attempt := 0; attempt < m.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			m.log.Warn("section measurement cancelled, using estimate",
				observability.String("sectionId", s.ID),
				observability.Error("err", err))
			return s.EstimatedHeightPx, nil
		}
		h, ok, err := m.poller.PollHeight(ctx, s.ID)
		if err != nil {
			return 0, err
		}
		if ok {
			return h, nil
		}
		if attempt == m.maxAttempts-1 {
			break
		}
		timer.Reset(m.interval)
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}

	m.log.Warn("section frame never reported, using estimate",
		observability.String("sectionId", s.ID),
		observability.Float64("estimate", s.EstimatedHeightPx))
	return s.EstimatedHeightPx, nil
}
