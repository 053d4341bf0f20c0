package scripting

import (
	"context"
)

// Engine represents a scripting engine (e.g., JavaScript) used to compute
// dynamic field display values.
type Engine interface {
	// Execute executes a script in the context of the document.
	Execute(ctx context.Context, script string) (interface{}, error)

	// RegisterDOM registers the editor Document Object Model with the engine.
	RegisterDOM(dom EditorDOM) error
}

// EditorDOM exposes the document structure to the scripting engine.
// It provides a safe, controlled API for scripts to read and write fields.
type EditorDOM interface {
	// GetField returns a field by its id.
	GetField(id string) (FieldProxy, error)

	// PageCount returns the number of computed pages, or 0 before the
	// first pagination run.
	PageCount() int

	// Alert reports a message to the host (if supported by the runner).
	Alert(message string)
}

// FieldProxy represents a document field exposed to scripts.
type FieldProxy interface {
	GetValue() interface{}
	SetValue(value interface{})
}
