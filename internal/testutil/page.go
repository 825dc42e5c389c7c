// Package testutil provides a recording page and event builders that
// mirror the markup produced by the view package.
package testutil

import (
	"context"

	"github.com/adanyl0v/go-todo-widget/internal/dom"
	"github.com/adanyl0v/go-todo-widget/internal/view"
)

// Page is a dom.Document with all required containers that counts how
// often each container was repainted.
type Page struct {
	*dom.Document
	Paints map[string]int
}

func NewPage() *Page {
	return &Page{
		Document: dom.NewDocument(view.RequiredMarkers...),
		Paints:   make(map[string]int),
	}
}

func (p *Page) Replace(marker, html string) {
	p.Paints[marker]++
	p.Document.Replace(marker, html)
}

// Click dispatches a click along path.
func (p *Page) Click(path ...dom.Element) {
	p.Dispatch(context.Background(), dom.Event{Type: dom.EventClick, Path: path})
}

// Type sets the input value and dispatches an input event on it.
func (p *Page) Type(marker, value string) {
	p.SetValue(marker, value)
	p.Dispatch(context.Background(), dom.Event{Type: dom.EventInput, Path: Input(marker)})
}

// PressEnter dispatches an Enter key press inside the input.
func (p *Page) PressEnter(marker string) {
	p.Dispatch(context.Background(), dom.Event{Type: dom.EventKeyPress, Key: dom.KeyEnter, Path: Input(marker)})
}

func root() dom.Element { return dom.Element{view.MarkerRoot: ""} }

func row(id string) []dom.Element {
	return []dom.Element{
		{view.MarkerItem: id, "class": "task"},
		{view.MarkerList: ""},
		root(),
	}
}

// RowBody is a click on the title of the row with id.
func RowBody(id string) []dom.Element {
	return append([]dom.Element{
		{},
		{"class": "task__content"},
		{"class": "task__window"},
	}, row(id)...)
}

// RowButton is a click on the icon inside one of the row buttons.
func RowButton(id, marker string) []dom.Element {
	path := []dom.Element{
		{"src": "./assets/icon.svg"},
		{marker: "", view.AttrTaskID: id},
	}
	if marker == view.MarkerItemDelete {
		path = append(path, dom.Element{"class": "task__window"})
	} else {
		path = append(path,
			dom.Element{"class": "button-group"},
			dom.Element{view.MarkerItemActions: id},
		)
	}
	return append(path, row(id)...)
}

func AddButton() []dom.Element {
	return []dom.Element{{view.MarkerAddButton: ""}, root()}
}

func Input(marker string) []dom.Element {
	return []dom.Element{{marker: ""}, root()}
}

// DialogButton is a click on a control inside the open dialog.
func DialogButton(kind string, control dom.Element) []dom.Element {
	return []dom.Element{
		control,
		{"class": "dialog__actions"},
		{view.MarkerDialogContent: ""},
		{view.MarkerDialog: "", kind: ""},
	}
}

// DialogContent is a click on the dialog window outside any control.
func DialogContent(kind string) []dom.Element {
	return []dom.Element{
		{"class": "dialog__text"},
		{view.MarkerDialogContent: ""},
		{view.MarkerDialog: "", kind: ""},
	}
}

// Backdrop is a click on the overlay around the dialog window.
func Backdrop(kind string) []dom.Element {
	return []dom.Element{{view.MarkerDialog: "", kind: ""}}
}
