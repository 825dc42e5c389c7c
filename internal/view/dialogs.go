package view

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/adanyl0v/go-todo-widget/internal/models"
)

// ShareTarget is one entry of the share menu.
type ShareTarget struct {
	ID    string
	Label string
}

var DefaultShareTargets = []ShareTarget{
	{ID: "copy", Label: "Copy link"},
	{ID: "telegram", Label: "Telegram"},
	{ID: "whatsapp", Label: "WhatsApp"},
	{ID: "email", Label: "Email"},
}

func overlay(kind string, content ...*html.Node) Fragment {
	return Fragment{
		el(atom.Div, attrs(class("dialog__overlay"), marker(MarkerDialog), marker(kind)),
			el(atom.Section, attrs(class("dialog__window"), marker(MarkerDialogContent)), content...),
		),
	}
}

func ConfirmDeleteDialog() Fragment {
	return overlay(MarkerDeleteDialog,
		el(atom.P, attrs(class("dialog__text")), text("Delete task?")),
		el(atom.Div, attrs(class("dialog__actions")),
			button(attrs(
				class("button__window__action dialog__confirm_btn"),
				marker(MarkerDeleteDialogConfirm),
			), text("Yes")),
			button(attrs(
				class("button__window__action dialog__cancel_btn"),
				marker(MarkerDeleteDialogCancel),
			), text("No")),
		),
	)
}

// EditDialog pre-fills the fields with the given draft values.
func EditDialog(title, about string) Fragment {
	return overlay(MarkerEditDialog,
		el(atom.P, attrs(class("dialog__text")), text("Edit task")),
		el(atom.Input, attrs(
			class("dialog__input"),
			attr("type", "text"),
			attr("name", "title"),
			attr("value", title),
			marker(MarkerEditDialogTitleInput),
		)),
		el(atom.Textarea, attrs(
			class("dialog__input"),
			attr("name", "about"),
			marker(MarkerEditDialogAboutInput),
		), text(about)),
		el(atom.Div, attrs(class("dialog__actions")),
			button(attrs(
				class("button__window__action dialog__confirm_btn"),
				marker(MarkerEditDialogSave),
			), text("Save")),
			button(attrs(
				class("button__window__action dialog__cancel_btn"),
				marker(MarkerEditDialogCancel),
			), text("Cancel")),
		),
	)
}

func ShareDialog(task models.Task, targets []ShareTarget) Fragment {
	items := make([]*html.Node, 0, len(targets))
	for _, t := range targets {
		items = append(items, el(atom.Li, nil,
			button(attrs(
				class("button__share__target"),
				attr(MarkerShareTarget, t.ID),
			), text(t.Label)),
		))
	}

	return overlay(MarkerShareDialog,
		el(atom.P, attrs(class("dialog__text")), text("Share \""+task.Title+"\"")),
		el(atom.Ul, attrs(class("dialog__share")), items...),
		el(atom.Div, attrs(class("dialog__actions")),
			button(attrs(
				class("button__window__action dialog__cancel_btn"),
				marker(MarkerShareDialogClose),
			), text("Close")),
		),
	)
}
