package widget

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-widget/internal/dom"
	"github.com/adanyl0v/go-todo-widget/internal/models"
	"github.com/adanyl0v/go-todo-widget/internal/services"
	"github.com/adanyl0v/go-todo-widget/internal/view"
)

type DialogKind int

const (
	DialogClosed DialogKind = iota
	DialogConfirmDelete
	DialogEdit
	DialogShare
)

func (k DialogKind) String() string {
	switch k {
	case DialogConfirmDelete:
		return "confirm_delete"
	case DialogEdit:
		return "edit"
	case DialogShare:
		return "share"
	default:
		return "closed"
	}
}

// dialogOverlay is the overlay name every dialog mounts under, so at
// most one can be on the page.
const dialogOverlay = "dialog"

// DialogController runs at most one modal dialog. The listeners of
// the open dialog are owned here and all of them are released by
// Close.
type DialogController struct {
	logger       zerolog.Logger
	target       PaintTarget
	notifier     Notifier
	tasks        services.TaskList
	shareTargets []view.ShareTarget

	kind      DialogKind
	taskID    string
	listeners []dom.ListenerID
}

// State returns the open dialog kind and the task it is about.
func (c *DialogController) State() (DialogKind, string) {
	return c.kind, c.taskID
}

// Draft returns the current values of the edit dialog fields.
func (c *DialogController) Draft() (title, about string) {
	return c.target.Value(view.MarkerEditDialogTitleInput),
		c.target.Value(view.MarkerEditDialogAboutInput)
}

func (c *DialogController) ListenerCount() int { return len(c.listeners) }

func (c *DialogController) OpenConfirmDelete(taskID string) {
	c.open(DialogConfirmDelete, taskID, view.ConfirmDeleteDialog())
	c.listen(view.MarkerDeleteDialogConfirm, c.handleConfirmDelete)
	c.listen(view.MarkerDeleteDialogCancel, c.handleCancel)
}

// OpenEdit shows the edit dialog pre-filled with the task's values.
// If the task no longer exists no dialog is shown, the user gets a
// not-found notice and ErrTaskNotFound is returned.
func (c *DialogController) OpenEdit(taskID string) error {
	task, err := c.find(taskID)
	if err != nil {
		return err
	}

	c.open(DialogEdit, taskID, view.EditDialog(task.Title, task.About))
	c.target.SetValue(view.MarkerEditDialogTitleInput, task.Title)
	c.target.SetValue(view.MarkerEditDialogAboutInput, task.About)
	c.listen(view.MarkerEditDialogSave, c.handleSaveEdit)
	c.listen(view.MarkerEditDialogCancel, c.handleCancel)
	c.listen(view.MarkerDialog, c.handleBackdrop)
	return nil
}

// OpenShare shows the share menu for the task. Share targets are
// inert: clicking one is only logged.
func (c *DialogController) OpenShare(taskID string) error {
	task, err := c.find(taskID)
	if err != nil {
		return err
	}

	c.open(DialogShare, taskID, view.ShareDialog(task, c.shareTargets))
	c.listen(view.MarkerShareTarget, c.handleShareTarget)
	c.listen(view.MarkerShareDialogClose, c.handleCancel)
	c.listen(view.MarkerDialog, c.handleBackdrop)
	return nil
}

// Close unmounts the dialog and removes its listeners. Closing a
// closed controller does nothing.
func (c *DialogController) Close() {
	if c.kind == DialogClosed {
		return
	}
	for _, id := range c.listeners {
		c.target.Unlisten(id)
	}
	c.listeners = nil
	c.target.Unmount(dialogOverlay)

	if c.kind == DialogEdit {
		c.target.SetValue(view.MarkerEditDialogTitleInput, "")
		c.target.SetValue(view.MarkerEditDialogAboutInput, "")
		c.target.SetFlagged(view.MarkerEditDialogTitleInput, false)
		c.target.SetFlagged(view.MarkerEditDialogAboutInput, false)
	}

	c.logger.Debug().
		Str("dialog", c.kind.String()).
		Str("task_id", c.taskID).
		Msg("closed dialog")
	c.kind = DialogClosed
	c.taskID = ""
}

func (c *DialogController) find(taskID string) (task models.Task, err error) {
	task, err = c.tasks.Find(taskID)
	if err != nil {
		c.logger.Warn().
			Str("task_id", taskID).
			Msg("task not found, dialog not opened")
		c.notifier.Notify(dom.Notice{Kind: dom.NoticeNotFound, Message: msgTaskNotFound})
		return task, err
	}
	return task, nil
}

func (c *DialogController) open(kind DialogKind, taskID string, fragment view.Fragment) {
	c.Close()
	c.kind = kind
	c.taskID = taskID
	c.target.Mount(dialogOverlay, fragment.String())
	c.logger.Debug().
		Str("dialog", kind.String()).
		Str("task_id", taskID).
		Msg("opened dialog")
}

func (c *DialogController) listen(marker string, h dom.Handler) {
	c.listeners = append(c.listeners, c.target.Listen(marker, dom.EventClick, h))
}

func (c *DialogController) handleConfirmDelete(ctx context.Context, _ dom.Event) {
	err := c.tasks.Delete(ctx, c.taskID)
	reportSaveError(c.logger, c.notifier, err)
	c.Close()
}

func (c *DialogController) handleCancel(context.Context, dom.Event) {
	c.Close()
}

// handleBackdrop closes the dialog on clicks outside its content.
func (c *DialogController) handleBackdrop(_ context.Context, ev dom.Event) {
	if _, inside := ev.Closest(view.MarkerDialogContent); inside {
		return
	}
	c.Close()
}

func (c *DialogController) handleSaveEdit(ctx context.Context, _ dom.Event) {
	title, about := c.Draft()
	err := c.tasks.Update(ctx, c.taskID, title, about)

	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.target.SetFlagged(view.MarkerEditDialogTitleInput, vErr.Has(services.FieldTitle))
		c.target.SetFlagged(view.MarkerEditDialogAboutInput, vErr.Has(services.FieldAbout))
		c.notifier.Notify(validationNotice(vErr))
		return
	}
	reportSaveError(c.logger, c.notifier, err)
	c.Close()
}

func (c *DialogController) handleShareTarget(_ context.Context, ev dom.Event) {
	el, _ := ev.Closest(view.MarkerShareTarget)
	c.logger.Info().
		Str("task_id", c.taskID).
		Str("share_target", el.Attr(view.MarkerShareTarget)).
		Msg("share target selected")
}
