package observability

import (
	"context"
	"errors"
	"testing"
)

func TestNopTracer(t *testing.T) {
	tracer := NopTracer()
	ctx := context.Background()
	ctx2, span := tracer.StartSpan(ctx, "test")
	if ctx2 != ctx {
		t.Fatalf("nop tracer should return same context")
	}
	span.SetTag("key", "value")
	span.SetError(nil)
	span.Finish()
}

func TestFields(t *testing.T) {
	err := errors.New("boom")
	cases := []struct {
		f    Field
		key  string
		want interface{}
	}{
		{String("a", "b"), "a", "b"},
		{Int("n", 3), "n", 3},
		{Float64("px", 1.5), "px", 1.5},
		{Error("err", err), "err", err},
	}
	for _, c := range cases {
		if c.f.Key() != c.key {
			t.Errorf("key: got %q, want %q", c.f.Key(), c.key)
		}
		if c.f.Value() != c.want {
			t.Errorf("value for %q: got %v, want %v", c.key, c.f.Value(), c.want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l = l.With(String("component", "pagination"))
	l.Debug("debug")
	l.Info("info")
	l.Warn("warn")
	l.Error("error")
}
