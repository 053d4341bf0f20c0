package sections

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// scriptedPoller reports not-ready for a number of polls, then a height.
type scriptedPoller struct {
	mu        sync.Mutex
	readyAt   int
	heightPx  float64
	failWith  error
	pollCount map[string]int
}

func newScriptedPoller(readyAt int, heightPx float64) *scriptedPoller {
	return &scriptedPoller{
		readyAt:   readyAt,
		heightPx:  heightPx,
		pollCount: make(map[string]int),
	}
}

func (p *scriptedPoller) PollHeight(ctx context.Context, sectionID string) (float64, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return 0, false, p.failWith
	}
	p.pollCount[sectionID]++
	if p.pollCount[sectionID] >= p.readyAt {
		return p.heightPx, true, nil
	}
	return 0, false, nil
}

func (p *scriptedPoller) polls(sectionID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pollCount[sectionID]
}

func TestMeasureHeightImmediate(t *testing.T) {
	m := NewMeasurer(newScriptedPoller(1, 72), WithPollInterval(time.Millisecond))
	h, err := m.MeasureHeight(context.Background(), Section{ID: "h1", EstimatedHeightPx: 40})
	if err != nil {
		t.Fatalf("MeasureHeight: %v", err)
	}
	if h != 72 {
		t.Fatalf("height = %v, want 72", h)
	}
}

func TestMeasureHeightRetriesUntilReady(t *testing.T) {
	p := newScriptedPoller(4, 60)
	m := NewMeasurer(p, WithPollInterval(time.Millisecond))
	h, err := m.MeasureHeight(context.Background(), Section{ID: "h1", EstimatedHeightPx: 40})
	if err != nil {
		t.Fatalf("MeasureHeight: %v", err)
	}
	if h != 60 {
		t.Fatalf("height = %v, want 60", h)
	}
	if got := p.polls("h1"); got != 4 {
		t.Fatalf("polled %d times, want 4", got)
	}
}

func TestMeasureHeightFallsBackToEstimate(t *testing.T) {
	p := newScriptedPoller(1000, 60) // never ready within budget
	m := NewMeasurer(p, WithPollInterval(time.Millisecond), WithMaxAttempts(3))
	h, err := m.MeasureHeight(context.Background(), Section{ID: "h1", EstimatedHeightPx: 44})
	if err != nil {
		t.Fatalf("MeasureHeight: %v", err)
	}
	if h != 44 {
		t.Fatalf("height = %v, want estimate 44", h)
	}
	if got := p.polls("h1"); got != 3 {
		t.Fatalf("polled %d times, want 3", got)
	}
}

func TestMeasureHeightPropagatesPollerErrors(t *testing.T) {
	p := newScriptedPoller(1, 60)
	p.failWith = errors.New("frame detached")
	m := NewMeasurer(p, WithPollInterval(time.Millisecond))
	if _, err := m.MeasureHeight(context.Background(), Section{ID: "h1"}); err == nil {
		t.Fatal("expected poller error to propagate")
	}
}

func TestMeasureHeightResolvesOnce(t *testing.T) {
	p := newScriptedPoller(1, 60)
	m := NewMeasurer(p, WithPollInterval(time.Millisecond))
	sec := Section{ID: "h1", EstimatedHeightPx: 40}

	if _, err := m.MeasureHeight(context.Background(), sec); err != nil {
		t.Fatalf("first measure: %v", err)
	}
	p.heightPx = 999 // a later frame resize must not leak through
	h, err := m.MeasureHeight(context.Background(), sec)
	if err != nil {
		t.Fatalf("second measure: %v", err)
	}
	if h != 60 {
		t.Fatalf("height = %v, want sticky 60", h)
	}
	if got := p.polls("h1"); got != 1 {
		t.Fatalf("resolved section re-polled: %d polls", got)
	}
}

func TestMeasureHeightCancelledContextUsesEstimate(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := newScriptedPoller(1, 60)
	m := NewMeasurer(p, WithPollInterval(time.Millisecond))
	h, err := m.MeasureHeight(ctx, Section{ID: "h1", EstimatedHeightPx: 33})
	if err != nil {
		t.Fatalf("MeasureHeight: %v", err)
	}
	if h != 33 {
		t.Fatalf("height = %v, want estimate 33", h)
	}
}

func TestResolverPicksRoleByPage(t *testing.T) {
	set := &Set{Sections: []Section{
		{ID: "hdr-first", Kind: KindHeader, Role: RoleFirst, EstimatedHeightPx: 90},
		{ID: "hdr-even", Kind: KindHeader, Role: RoleEven, EstimatedHeightPx: 50},
		{ID: "hdr-default", Kind: KindHeader, Role: RoleDefault, EstimatedHeightPx: 60},
		{ID: "ftr-last", Kind: KindFooter, Role: RoleLast, EstimatedHeightPx: 30},
		{ID: "ftr-default", Kind: KindFooter, Role: RoleDefault, EstimatedHeightPx: 20},
	}}
	m := NewMeasurer(nil) // nil poller resolves straight to estimates
	resolve, err := set.Resolver(context.Background(), m)
	if err != nil {
		t.Fatalf("Resolver: %v", err)
	}

	cases := []struct {
		pageIndex  int
		isLastPage bool
		header     string
		footer     string
	}{
		{0, false, "hdr-first", "ftr-default"},
		{1, false, "hdr-even", "ftr-default"},
		{2, false, "hdr-default", "ftr-default"},
		{3, true, "hdr-even", "ftr-last"},
	}
	for _, tc := range cases {
		hf := resolve(tc.pageIndex, tc.isLastPage)
		if hf.Header == nil || hf.Header.ID != tc.header {
			t.Fatalf("page %d header = %+v, want %s", tc.pageIndex, hf.Header, tc.header)
		}
		if hf.Footer == nil || hf.Footer.ID != tc.footer {
			t.Fatalf("page %d footer = %+v, want %s", tc.pageIndex, hf.Footer, tc.footer)
		}
	}
}

func TestResolverSummaryGeometry(t *testing.T) {
	set := &Set{Sections: []Section{
		{ID: "hdr", Kind: KindHeader, Role: RoleDefault,
			EstimatedHeightPx: 60, OffsetPx: 24, PaddingPx: 8},
	}}
	resolve, err := set.Resolver(context.Background(), NewMeasurer(nil))
	if err != nil {
		t.Fatalf("Resolver: %v", err)
	}

	hdr := resolve(0, false).Header
	if hdr == nil {
		t.Fatal("expected a header")
	}
	if hdr.ContentHeightPx != 60 || hdr.HeightPx != 68 || hdr.EffectiveHeightPx != 92 {
		t.Fatalf("unexpected geometry %+v", hdr)
	}
}

func TestResolverMissingBandsAreNil(t *testing.T) {
	set := &Set{}
	resolve, err := set.Resolver(context.Background(), NewMeasurer(nil))
	if err != nil {
		t.Fatalf("Resolver: %v", err)
	}
	hf := resolve(0, false)
	if hf.Header != nil || hf.Footer != nil {
		t.Fatalf("expected empty bands, got %+v", hf)
	}
}
