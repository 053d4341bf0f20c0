package fields

import (
	"context"
	"fmt"

	"github.com/Harbour-Enterprises/SuperDoc-sub009/dom"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/observability"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/scripting"
)

// fieldValue is the scriptable state of one field.
type fieldValue struct {
	value interface{}
}

func (f *fieldValue) GetValue() interface{}  { return f.value }
func (f *fieldValue) SetValue(v interface{}) { f.value = v }

// documentDOM adapts a document to the scripting engine's DOM surface.
type documentDOM struct {
	values map[string]*fieldValue
	pages  int
	log    observability.Logger
}

func (d *documentDOM) GetField(id string) (scripting.FieldProxy, error) {
	f, ok := d.values[id]
	if !ok {
		return nil, fmt.Errorf("fields: unknown field %q", id)
	}
	return f, nil
}

func (d *documentDOM) PageCount() int { return d.pages }

func (d *documentDOM) Alert(message string) {
	d.log.Info("script alert", observability.String("message", message))
}

// DisplayValues resolves the display text of every field. A field carrying
// a format script evaluates it through the engine, with the other fields'
// current values in scope; script failures fall back to the field's static
// text. Plain fields display their text content, or their alias when empty.
func DisplayValues(ctx context.Context, doc *dom.Document, pageCount int, eng scripting.Engine, log observability.Logger) map[string]string {
	if log == nil {
		log = observability.NopLogger{}
	}
	out := make(map[string]string)
	if doc == nil {
		return out
	}

	nodes := doc.Fields()
	host := &documentDOM{
		values: make(map[string]*fieldValue, len(nodes)),
		pages:  pageCount,
		log:    log,
	}
	for _, n := range nodes {
		id, ok := n.Attr(dom.AttrFieldID)
		if !ok {
			continue
		}
		host.values[id] = &fieldValue{value: staticValue(n)}
	}

	scripted := eng != nil
	if scripted {
		if err := eng.RegisterDOM(host); err != nil {
			log.Error("script host registration failed", observability.Error("err", err))
			scripted = false
		}
	}

	for _, n := range nodes {
		id, ok := n.Attr(dom.AttrFieldID)
		if !ok {
			continue
		}
		script, hasScript := n.Attr(dom.AttrFormat)
		if scripted && hasScript && script != "" {
			val, err := eng.Execute(ctx, script)
			if err != nil {
				log.Warn("field script failed",
					observability.String("fieldId", id),
					observability.Error("err", err))
			} else if val != nil {
				host.values[id].SetValue(fmt.Sprint(val))
			}
		}
		out[id] = fmt.Sprint(host.values[id].GetValue())
	}
	return out
}

// staticValue is a field's display text before any script runs: its text
// content, or its alias when it has none.
func staticValue(n *dom.Node) string {
	if text := n.TextContent(); text != "" {
		return text
	}
	alias, _ := n.Attr(dom.AttrAlias)
	return alias
}
