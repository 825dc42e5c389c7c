package dom

import (
	"context"
	"maps"
	"slices"
)

type Handler func(ctx context.Context, ev Event)

type ListenerID uint64

type listener struct {
	marker  string
	typ     EventType
	handler Handler
}

// Overlay is a fragment mounted on top of the page.
type Overlay struct {
	Name string `json:"name"`
	HTML string `json:"html"`
}

// Document holds the state a browser page would: container contents,
// overlays, input values, flagged inputs and pending notices.
// It is not safe for concurrent use.
type Document struct {
	contents  map[string]string
	overlays  []Overlay
	values    map[string]string
	flagged   map[string]bool
	listeners map[ListenerID]listener
	nextID    ListenerID
	notices   []Notice
}

// NewDocument returns a document with empty containers for the given
// markers. Only these markers can be looked up or replaced.
func NewDocument(markers ...string) *Document {
	d := &Document{
		contents:  make(map[string]string, len(markers)),
		values:    make(map[string]string),
		flagged:   make(map[string]bool),
		listeners: make(map[ListenerID]listener),
	}
	for _, m := range markers {
		d.contents[m] = ""
	}
	return d
}

func (d *Document) Lookup(marker string) bool {
	_, ok := d.contents[marker]
	return ok
}

// Replace sets the contents of the container with marker. Unknown
// markers are ignored.
func (d *Document) Replace(marker, html string) {
	if _, ok := d.contents[marker]; ok {
		d.contents[marker] = html
	}
}

func (d *Document) Contents(marker string) string { return d.contents[marker] }

// Mount adds an overlay, replacing one with the same name.
func (d *Document) Mount(name, html string) {
	d.Unmount(name)
	d.overlays = append(d.overlays, Overlay{Name: name, HTML: html})
}

func (d *Document) Unmount(name string) {
	d.overlays = slices.DeleteFunc(d.overlays, func(o Overlay) bool {
		return o.Name == name
	})
}

func (d *Document) Overlays() []Overlay { return slices.Clone(d.overlays) }

func (d *Document) Value(marker string) string { return d.values[marker] }

func (d *Document) SetValue(marker, value string) { d.values[marker] = value }

func (d *Document) SetFlagged(marker string, flagged bool) {
	if flagged {
		d.flagged[marker] = true
		return
	}
	delete(d.flagged, marker)
}

func (d *Document) Flagged(marker string) bool { return d.flagged[marker] }

// Notify queues a notice until the next DrainNotices.
func (d *Document) Notify(n Notice) {
	d.notices = append(d.notices, n)
}

func (d *Document) DrainNotices() []Notice {
	n := d.notices
	d.notices = nil
	return n
}

// Listen registers h for events of type typ whose path contains an
// element carrying marker.
func (d *Document) Listen(marker string, typ EventType, h Handler) ListenerID {
	d.nextID++
	d.listeners[d.nextID] = listener{marker: marker, typ: typ, handler: h}
	return d.nextID
}

func (d *Document) Unlisten(id ListenerID) {
	delete(d.listeners, id)
}

func (d *Document) ListenerCount() int { return len(d.listeners) }

// Dispatch runs the matching listeners in registration order.
// Listeners removed by an earlier handler of the same event do not
// run, and listeners added during dispatch wait for the next event.
func (d *Document) Dispatch(ctx context.Context, ev Event) {
	ids := slices.Sorted(maps.Keys(d.listeners))
	for _, id := range ids {
		l, ok := d.listeners[id]
		if !ok || l.typ != ev.Type {
			continue
		}
		if _, ok := ev.Closest(l.marker); !ok {
			continue
		}
		l.handler(ctx, ev)
	}
}

// Snapshot is the serializable view of a document.
type Snapshot struct {
	Contents map[string]string `json:"contents"`
	Overlays []Overlay         `json:"overlays"`
	Values   map[string]string `json:"values"`
	Flagged  []string          `json:"flagged"`
	Notices  []Notice          `json:"notices"`
}

// Snapshot copies the document state and drains pending notices.
func (d *Document) Snapshot() Snapshot {
	s := Snapshot{
		Contents: maps.Clone(d.contents),
		Overlays: d.Overlays(),
		Values:   maps.Clone(d.values),
		Flagged:  slices.Sorted(maps.Keys(d.flagged)),
		Notices:  d.DrainNotices(),
	}
	if s.Overlays == nil {
		s.Overlays = []Overlay{}
	}
	if s.Flagged == nil {
		s.Flagged = []string{}
	}
	if s.Notices == nil {
		s.Notices = []Notice{}
	}
	return s
}
