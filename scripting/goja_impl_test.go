package scripting

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubField struct {
	value interface{}
}

func (f *stubField) GetValue() interface{}  { return f.value }
func (f *stubField) SetValue(v interface{}) { f.value = v }

type stubDOM struct {
	fields map[string]*stubField
	pages  int
	alerts []string
}

func (d *stubDOM) GetField(id string) (FieldProxy, error) {
	f, ok := d.fields[id]
	if !ok {
		return nil, errors.New("no such field")
	}
	return f, nil
}

func (d *stubDOM) PageCount() int       { return d.pages }
func (d *stubDOM) Alert(message string) { d.alerts = append(d.alerts, message) }

func TestGojaEngine_ContextCancellation(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	if _, err := engine.Execute(ctx, "while (true) {}"); err == nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}

	if _, err := engine.Execute(context.Background(), "1 + 1"); err != nil {
		t.Fatalf("engine should recover after cancellation, got %v", err)
	}
}

func TestGojaEngine_ImmediateCancel(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Execute(ctx, "42"); err == nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
}

func TestGojaEngine_FieldAccess(t *testing.T) {
	engine := NewEngine()
	dom := &stubDOM{
		fields: map[string]*stubField{"total": {value: "12.50"}},
		pages:  3,
	}
	if err := engine.RegisterDOM(dom); err != nil {
		t.Fatalf("RegisterDOM: %v", err)
	}

	got, err := engine.Execute(context.Background(), `getField("total").value + " / " + getPageCount()`)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != "12.50 / 3" {
		t.Fatalf("unexpected result %v", got)
	}

	if _, err := engine.Execute(context.Background(), `getField("total").value = "99"`); err != nil {
		t.Fatalf("Execute set: %v", err)
	}
	if dom.fields["total"].value != "99" {
		t.Fatalf("field not updated, got %v", dom.fields["total"].value)
	}
}

func TestGojaEngine_MissingFieldIsNull(t *testing.T) {
	engine := NewEngine()
	dom := &stubDOM{fields: map[string]*stubField{}}
	if err := engine.RegisterDOM(dom); err != nil {
		t.Fatalf("RegisterDOM: %v", err)
	}

	got, err := engine.Execute(context.Background(), `getField("missing") === null`)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != true {
		t.Fatalf("expected null field lookup, got %v", got)
	}
}

func TestGojaEngine_Alert(t *testing.T) {
	engine := NewEngine()
	dom := &stubDOM{}
	if err := engine.RegisterDOM(dom); err != nil {
		t.Fatalf("RegisterDOM: %v", err)
	}

	if _, err := engine.Execute(context.Background(), `editor.alert("saved")`); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(dom.alerts) != 1 || dom.alerts[0] != "saved" {
		t.Fatalf("unexpected alerts %v", dom.alerts)
	}
}
