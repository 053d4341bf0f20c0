package fields

import (
	"context"
	"testing"

	"github.com/Harbour-Enterprises/SuperDoc-sub009/dom"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/geo"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/measure"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/pagination"
	"github.com/Harbour-Enterprises/SuperDoc-sub009/scripting"
)

func page(index int, start, fittedBottom float64) pagination.Page {
	return pagination.Page{
		PageIndex: index,
		Break: pagination.Break{
			StartOffsetPx: start,
			FittedBottom:  fittedBottom,
		},
	}
}

func TestProjectRectSinglePage(t *testing.T) {
	rect := geo.Rect{Left: 0, Top: 40, Right: 100, Bottom: 240}
	segs := ProjectRect(rect, []pagination.Page{page(0, 0, 960)})

	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	s := segs[0]
	if s.PageIndex != 0 {
		t.Fatalf("wrong page index %d", s.PageIndex)
	}
	if s.TopPx != 40 || s.HeightPx != 200 {
		t.Fatalf("unexpected slice top=%v height=%v", s.TopPx, s.HeightPx)
	}
	if s.OffsetWithinFieldPx != 0 {
		t.Fatalf("first segment should start at field top, got %v", s.OffsetWithinFieldPx)
	}
}

func TestProjectRectSplitsAcrossPages(t *testing.T) {
	rect := geo.Rect{Left: 0, Top: 600, Right: 100, Bottom: 1200}
	pages := []pagination.Page{
		page(0, 0, 960),
		page(1, 960, 1920),
	}
	segs := ProjectRect(rect, pages)

	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if segs[0].HeightPx != 360 || segs[1].HeightPx != 240 {
		t.Fatalf("unexpected split %v / %v", segs[0].HeightPx, segs[1].HeightPx)
	}
	if segs[0].OffsetWithinFieldPx != 0 {
		t.Fatalf("first segment offset should be 0, got %v", segs[0].OffsetWithinFieldPx)
	}
	if segs[1].OffsetWithinFieldPx != 360 {
		t.Fatalf("continuation offset should be 360, got %v", segs[1].OffsetWithinFieldPx)
	}
	if segs[1].TopPx != 0 {
		t.Fatalf("continuation should start at the page top, got %v", segs[1].TopPx)
	}
	if segs[0].AbsoluteBottomPx != segs[1].AbsoluteTopPx {
		t.Fatalf("segments should abut at the break")
	}
}

func TestProjectRectEmptyPages(t *testing.T) {
	rect := geo.Rect{Left: 0, Top: 0, Right: 100, Bottom: 50}
	if segs := ProjectRect(rect, nil); segs != nil {
		t.Fatalf("expected no segments, got %v", segs)
	}
}

func TestProjectRectOutsideEveryPage(t *testing.T) {
	rect := geo.Rect{Left: 0, Top: 5000, Right: 100, Bottom: 5100}
	segs := ProjectRect(rect, []pagination.Page{page(0, 0, 960)})
	if len(segs) != 0 {
		t.Fatalf("expected no segments, got %v", segs)
	}
}

func fieldDoc(t *testing.T) *dom.Document {
	t.Helper()
	field := &dom.Node{
		Kind: dom.KindField,
		Attrs: map[string]string{
			dom.AttrFieldID:   "sig-1",
			dom.AttrFieldType: "signature",
			dom.AttrAlias:     "Signature",
		},
		Children: []*dom.Node{{Kind: dom.KindText, Text: "sign here"}},
	}
	para := &dom.Node{Kind: dom.KindParagraph, Children: []*dom.Node{field}}
	root := &dom.Node{Kind: dom.KindOther, Children: []*dom.Node{para}}
	return dom.NewDocument(root)
}

func TestComputeFieldSegmentsCollectsMetadata(t *testing.T) {
	doc := fieldDoc(t)
	lm := measure.NewLayoutMap(doc)
	para := doc.Blocks()[0]
	lm.SetRect(para, geo.Rect{Left: 0, Top: 100, Right: 600, Bottom: 160})
	lm.SetRect(para.Children[0], geo.Rect{Left: 0, Top: 100, Right: 200, Bottom: 160})

	res := pagination.Result{
		Doc:   doc,
		Pages: []pagination.Page{page(0, 0, 960)},
	}
	out := ComputeFieldSegments(res, lm, nil)

	if len(out) != 1 {
		t.Fatalf("expected 1 field, got %d", len(out))
	}
	f := out[0]
	if f.FieldID != "sig-1" || f.Type != "signature" || f.Alias != "Signature" {
		t.Fatalf("metadata not carried: %+v", f)
	}
	if f.Pos != para.Children[0].Pos() {
		t.Fatalf("wrong pos %d", f.Pos)
	}
	if len(f.Segments) != 1 || f.Segments[0].HeightPx != 60 {
		t.Fatalf("unexpected segments %+v", f.Segments)
	}
}

func TestComputeFieldSegmentsSkipsUnmeasurable(t *testing.T) {
	doc := fieldDoc(t)
	lm := measure.NewLayoutMap(doc) // no rects registered

	res := pagination.Result{
		Doc:   doc,
		Pages: []pagination.Page{page(0, 0, 960)},
	}
	if out := ComputeFieldSegments(res, lm, nil); len(out) != 0 {
		t.Fatalf("expected unmeasurable field to be skipped, got %+v", out)
	}
}

func TestDisplayValuesStaticAndAlias(t *testing.T) {
	field := func(id, text, alias string) *dom.Node {
		n := &dom.Node{
			Kind:  dom.KindField,
			Attrs: map[string]string{dom.AttrFieldID: id, dom.AttrAlias: alias},
		}
		if text != "" {
			n.Children = []*dom.Node{{Kind: dom.KindText, Text: text}}
		}
		return n
	}
	para := &dom.Node{Kind: dom.KindParagraph, Children: []*dom.Node{
		field("a", "hello", "Alias A"),
		field("b", "", "Alias B"),
	}}
	doc := dom.NewDocument(&dom.Node{Kind: dom.KindOther, Children: []*dom.Node{para}})

	got := DisplayValues(context.Background(), doc, 1, nil, nil)
	if got["a"] != "hello" {
		t.Fatalf("text content should win, got %q", got["a"])
	}
	if got["b"] != "Alias B" {
		t.Fatalf("empty field should fall back to alias, got %q", got["b"])
	}
}

func TestDisplayValuesScripted(t *testing.T) {
	field := &dom.Node{
		Kind: dom.KindField,
		Attrs: map[string]string{
			dom.AttrFieldID: "pages",
			dom.AttrFormat:  `"Page count: " + getPageCount()`,
		},
	}
	para := &dom.Node{Kind: dom.KindParagraph, Children: []*dom.Node{field}}
	doc := dom.NewDocument(&dom.Node{Kind: dom.KindOther, Children: []*dom.Node{para}})

	got := DisplayValues(context.Background(), doc, 4, scripting.NewEngine(), nil)
	if got["pages"] != "Page count: 4" {
		t.Fatalf("script result not applied, got %q", got["pages"])
	}
}

func TestDisplayValuesScriptFailureFallsBack(t *testing.T) {
	field := &dom.Node{
		Kind: dom.KindField,
		Attrs: map[string]string{
			dom.AttrFieldID: "x",
			dom.AttrFormat:  `throw new Error("boom")`,
		},
		Children: []*dom.Node{{Kind: dom.KindText, Text: "static"}},
	}
	para := &dom.Node{Kind: dom.KindParagraph, Children: []*dom.Node{field}}
	doc := dom.NewDocument(&dom.Node{Kind: dom.KindOther, Children: []*dom.Node{para}})

	got := DisplayValues(context.Background(), doc, 1, scripting.NewEngine(), nil)
	if got["x"] != "static" {
		t.Fatalf("failed script should keep the static value, got %q", got["x"])
	}
}

func TestDisplayValuesCrossFieldScript(t *testing.T) {
	total := &dom.Node{
		Kind:     dom.KindField,
		Attrs:    map[string]string{dom.AttrFieldID: "total"},
		Children: []*dom.Node{{Kind: dom.KindText, Text: "12.50"}},
	}
	echo := &dom.Node{
		Kind: dom.KindField,
		Attrs: map[string]string{
			dom.AttrFieldID: "echo",
			dom.AttrFormat:  `"Total is " + getField("total").value`,
		},
	}
	para := &dom.Node{Kind: dom.KindParagraph, Children: []*dom.Node{total, echo}}
	doc := dom.NewDocument(&dom.Node{Kind: dom.KindOther, Children: []*dom.Node{para}})

	got := DisplayValues(context.Background(), doc, 1, scripting.NewEngine(), nil)
	if got["echo"] != "Total is 12.50" {
		t.Fatalf("cross-field lookup failed, got %q", got["echo"])
	}
}
