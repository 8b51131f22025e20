// Package canvas models the embedded rendering surface: the document it
// shows, and the lifecycle of one page load on it.
package canvas

import "errors"

// EditableAttr marks template elements that may be edited in place.
const EditableAttr = "data-ssb-editable"

var (
	// ErrInaccessible means the surface loaded something whose document
	// cannot be read or modified (cross-origin, load error).
	ErrInaccessible = errors.New("canvas document not accessible")

	// ErrNoTarget is returned by Document.Click when nothing matches.
	ErrNoTarget = errors.New("no element matches selector")
)

// Element is a node in the loaded document.
type Element interface {
	Tag() string
	Path() string
	Editable() bool
	SetEditable(editable bool)
}

// Document is the same-origin document tree of a loaded page.
type Document interface {
	// EditableElements queries the document for the marker attribute on
	// every call; the result is never cached.
	EditableElements() []Element

	// Markup serializes the document from its root element outward.
	Markup() (string, error)

	AddClickListener(l ClickListener)

	// Click dispatches a click on the first element matching selector.
	Click(selector string) (*ClickEvent, error)
}

// ClickListener receives clicks dispatched on a document.
type ClickListener func(ev *ClickEvent)

// ClickEvent is one click on a document element.
type ClickEvent struct {
	Target Element

	defaultPrevented   bool
	propagationStopped bool
}

// NewClickEvent creates an event targeting el.
func NewClickEvent(el Element) *ClickEvent {
	return &ClickEvent{Target: el}
}

func (e *ClickEvent) PreventDefault()          { e.defaultPrevented = true }
func (e *ClickEvent) StopPropagation()         { e.propagationStopped = true }
func (e *ClickEvent) DefaultPrevented() bool   { return e.defaultPrevented }
func (e *ClickEvent) PropagationStopped() bool { return e.propagationStopped }

// SetEditable toggles every marked element of doc and returns how many were
// touched. A nil document is a no-op.
func SetEditable(doc Document, editable bool) int {
	if doc == nil {
		return 0
	}
	elements := doc.EditableElements()
	for _, el := range elements {
		el.SetEditable(editable)
	}
	return len(elements)
}
