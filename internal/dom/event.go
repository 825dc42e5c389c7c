// Package dom is an in-memory paint target: containers addressed by
// marker attributes, overlays, input values and delegated listeners.
package dom

type EventType string

const (
	EventClick    EventType = "click"
	EventKeyPress EventType = "keypress"
	EventInput    EventType = "input"
)

const KeyEnter = "Enter"

// Element is the attribute set of one element on an event path.
type Element map[string]string

func (e Element) Has(name string) bool {
	_, ok := e[name]
	return ok
}

func (e Element) Attr(name string) string { return e[name] }

// Event is a user input. Path lists the target element first and
// then its ancestors, outermost last.
type Event struct {
	Type EventType `json:"type"`
	Key  string    `json:"key,omitempty"`
	Path []Element `json:"path"`
}

// Closest returns the nearest element on the path carrying marker.
func (e Event) Closest(marker string) (Element, bool) {
	for _, el := range e.Path {
		if el.Has(marker) {
			return el, true
		}
	}
	return nil, false
}

type NoticeKind string

const (
	NoticeValidation NoticeKind = "validation"
	NoticeNotFound   NoticeKind = "not_found"
	NoticeNotSaved   NoticeKind = "not_saved"
)

// Notice is a blocking message for the user. Fields names the inputs
// a validation notice refers to.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	Fields  []string   `json:"fields,omitempty"`
}
