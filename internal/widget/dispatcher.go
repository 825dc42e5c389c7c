package widget

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-widget/internal/dom"
	"github.com/adanyl0v/go-todo-widget/internal/services"
	"github.com/adanyl0v/go-todo-widget/internal/view"
)

// Dispatcher turns page events into task list operations and dialog
// openers. Rows are handled by a single listener on the list
// container.
type Dispatcher struct {
	logger   zerolog.Logger
	target   PaintTarget
	notifier Notifier
	tasks    services.TaskList
	dialog   *DialogController
	render   func()

	// openDetailID is the row whose detail section is visible.
	openDetailID string
	listeners    []dom.ListenerID
}

func (d *Dispatcher) OpenDetailID() string { return d.openDetailID }

func (d *Dispatcher) bind() {
	d.listen(view.MarkerList, dom.EventClick, d.handleListClick)
	d.listen(view.MarkerAddButton, dom.EventClick, d.handleAdd)
	d.listen(view.MarkerTitleInput, dom.EventKeyPress, d.handleKeyPress)
	d.listen(view.MarkerAboutInput, dom.EventKeyPress, d.handleKeyPress)
	d.listen(view.MarkerTitleInput, dom.EventInput, d.unflag(view.MarkerTitleInput))
	d.listen(view.MarkerAboutInput, dom.EventInput, d.unflag(view.MarkerAboutInput))
}

func (d *Dispatcher) unbind() {
	for _, id := range d.listeners {
		d.target.Unlisten(id)
	}
	d.listeners = nil
}

func (d *Dispatcher) listen(marker string, typ dom.EventType, h dom.Handler) {
	d.listeners = append(d.listeners, d.target.Listen(marker, typ, h))
}

// handleListClick resolves the click target in priority order:
// delete, edit, share, the rest of the detail section, row body.
func (d *Dispatcher) handleListClick(_ context.Context, ev dom.Event) {
	if id, ok := taskIDOf(ev, view.MarkerItemDelete); ok {
		d.dialog.OpenConfirmDelete(id)
		return
	}
	if id, ok := taskIDOf(ev, view.MarkerItemEdit); ok {
		_ = d.dialog.OpenEdit(id)
		return
	}
	if id, ok := taskIDOf(ev, view.MarkerItemShare); ok {
		_ = d.dialog.OpenShare(id)
		return
	}

	row, ok := ev.Closest(view.MarkerItem)
	if !ok {
		return
	}
	if _, ok := ev.Closest(view.MarkerItemActions); ok {
		return
	}
	d.ToggleDetail(row.Attr(view.MarkerItem))
}

// ToggleDetail opens the detail section of the row with id, closing
// any other, or closes it if it is already open.
func (d *Dispatcher) ToggleDetail(id string) {
	if d.openDetailID == id {
		d.openDetailID = ""
	} else {
		d.openDetailID = id
	}
	d.logger.Debug().
		Str("open_detail_id", d.openDetailID).
		Msg("toggled detail section")
	d.render()
}

func (d *Dispatcher) handleKeyPress(ctx context.Context, ev dom.Event) {
	if ev.Key == dom.KeyEnter {
		d.handleAdd(ctx, ev)
	}
}

// handleAdd adds a task from the two inputs and clears them, or flags
// the empty ones and raises a notice.
func (d *Dispatcher) handleAdd(ctx context.Context, _ dom.Event) {
	title := d.target.Value(view.MarkerTitleInput)
	about := d.target.Value(view.MarkerAboutInput)

	_, err := d.tasks.Add(ctx, title, about)
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		d.target.SetFlagged(view.MarkerTitleInput, vErr.Has(services.FieldTitle))
		d.target.SetFlagged(view.MarkerAboutInput, vErr.Has(services.FieldAbout))
		d.notifier.Notify(validationNotice(vErr))
		return
	}
	reportSaveError(d.logger, d.notifier, err)

	d.target.SetValue(view.MarkerTitleInput, "")
	d.target.SetValue(view.MarkerAboutInput, "")
	d.target.SetFlagged(view.MarkerTitleInput, false)
	d.target.SetFlagged(view.MarkerAboutInput, false)
}

func (d *Dispatcher) unflag(marker string) dom.Handler {
	return func(context.Context, dom.Event) {
		d.target.SetFlagged(marker, false)
	}
}

func taskIDOf(ev dom.Event, marker string) (string, bool) {
	el, ok := ev.Closest(marker)
	if !ok {
		return "", false
	}
	id := el.Attr(view.AttrTaskID)
	return id, id != ""
}
