// Package widget mounts the task list engine on a paint target: it
// renders the list after every mutation, routes input events and
// runs the modal dialogs.
package widget

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-widget/internal/dom"
	"github.com/adanyl0v/go-todo-widget/internal/models"
	"github.com/adanyl0v/go-todo-widget/internal/records"
	"github.com/adanyl0v/go-todo-widget/internal/services"
	"github.com/adanyl0v/go-todo-widget/internal/view"
)

var ErrElementNotFound = errors.New("element not found")

const (
	msgFillBothFields = "Please fill in both fields"
	msgTaskNotFound   = "Task not found"
	msgNotSaved       = "Failed to save tasks, changes may be lost on reload"
)

// PaintTarget is the page the widget draws into. Elements are
// addressed by marker attributes.
type PaintTarget interface {
	Lookup(marker string) bool
	Replace(marker, html string)
	Mount(name, html string)
	Unmount(name string)
	Value(marker string) string
	SetValue(marker, value string)
	SetFlagged(marker string, flagged bool)
	Listen(marker string, typ dom.EventType, h dom.Handler) dom.ListenerID
	Unlisten(id dom.ListenerID)
}

// Notifier shows blocking notices to the user.
type Notifier interface {
	Notify(n dom.Notice)
}

type Options struct {
	// IDs generates task ids. Defaults to random UUIDs.
	IDs services.IDGenerator
	// ShareTargets defaults to view.DefaultShareTargets.
	ShareTargets []view.ShareTarget
}

type Widget struct {
	logger     zerolog.Logger
	target     PaintTarget
	notifier   Notifier
	tasks      services.TaskList
	dialog     *DialogController
	dispatcher *Dispatcher
	closed     bool
}

// New loads the task list from store, paints it into target and binds
// the input listeners. It fails if target lacks a required container.
func New(
	ctx context.Context,
	logger zerolog.Logger,
	store services.RecordStore,
	target PaintTarget,
	notifier Notifier,
	opts Options,
) (*Widget, error) {
	var missing []string
	for _, m := range view.RequiredMarkers {
		if !target.Lookup(m) {
			missing = append(missing, m)
		}
	}
	if len(missing) > 0 {
		logger.Error().
			Strs("markers", missing).
			Msg("some elements not found")
		return nil, fmt.Errorf("%w: %s", ErrElementNotFound, strings.Join(missing, ", "))
	}

	shareTargets := opts.ShareTargets
	if shareTargets == nil {
		shareTargets = view.DefaultShareTargets
	}

	w := &Widget{
		logger:   logger,
		target:   target,
		notifier: notifier,
	}
	w.tasks = services.NewTaskList(ctx, logger, store, opts.IDs, w.render)
	w.dialog = &DialogController{
		logger:       logger.With().Str("component", "dialog").Logger(),
		target:       target,
		notifier:     notifier,
		tasks:        w.tasks,
		shareTargets: shareTargets,
	}
	w.dispatcher = &Dispatcher{
		logger:   logger.With().Str("component", "dispatcher").Logger(),
		target:   target,
		notifier: notifier,
		tasks:    w.tasks,
		dialog:   w.dialog,
		render:   func() { w.render(w.tasks.Tasks()) },
	}

	w.render(w.tasks.Tasks())
	w.dispatcher.bind()

	logger.Info().
		Int("count", w.tasks.Len()).
		Msg("initialized widget")
	return w, nil
}

func (w *Widget) Tasks() services.TaskList { return w.tasks }

func (w *Widget) Dialog() *DialogController { return w.dialog }

func (w *Widget) Dispatcher() *Dispatcher { return w.dispatcher }

// Close removes every listener the widget attached. The painted
// contents stay as they are.
func (w *Widget) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.dialog.Close()
	w.dispatcher.unbind()
	w.logger.Info().Msg("closed widget")
}

// render repaints the list and the empty-state slot from the live
// list and the open detail row.
func (w *Widget) render(tasks []models.Task) {
	openID := w.dispatcher.openDetailID
	if openID != "" && !slices.ContainsFunc(tasks, func(t models.Task) bool { return t.ID == openID }) {
		w.dispatcher.openDetailID = ""
		openID = ""
	}

	w.target.Replace(view.MarkerList, view.RenderList(tasks, openID).String())
	w.target.Replace(view.MarkerEmptyState, view.RenderEmptyState(len(tasks) == 0).String())
	w.logger.Trace().
		Int("count", len(tasks)).
		Str("open_detail_id", openID).
		Msg("rendered task list")
}

// reportSaveError tells the user that a change was kept in memory but
// not persisted.
func reportSaveError(logger zerolog.Logger, notifier Notifier, err error) {
	if err == nil {
		return
	}
	logger.Error().
		Err(err).
		Msg("changes not saved")
	if errors.Is(err, records.ErrStorageWrite) {
		notifier.Notify(dom.Notice{Kind: dom.NoticeNotSaved, Message: msgNotSaved})
	}
}

func validationNotice(err *services.ValidationError) dom.Notice {
	return dom.Notice{
		Kind:    dom.NoticeValidation,
		Message: msgFillBothFields,
		Fields:  slices.Clone(err.Fields),
	}
}
