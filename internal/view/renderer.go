// Package view derives the widget markup from state. Every function
// here is pure: equal input gives byte-identical output.
package view

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/adanyl0v/go-todo-widget/internal/models"
)

const EmptyStateMessage = "No tasks"

// RenderList returns one row per task in list order. Only the row
// whose id equals openDetailID shows its detail section.
func RenderList(tasks []models.Task, openDetailID string) Fragment {
	rows := make(Fragment, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, renderRow(task, task.ID == openDetailID))
	}
	return rows
}

// RenderEmptyState returns the placeholder for an empty list and an
// empty fragment otherwise.
func RenderEmptyState(isEmpty bool) Fragment {
	if !isEmpty {
		return nil
	}
	return Fragment{
		el(atom.Div, nil),
		el(atom.P, nil, text(EmptyStateMessage)),
		el(atom.Div, nil),
	}
}

func renderRow(task models.Task, detailOpen bool) *html.Node {
	actionsAttrs := attrs(
		class("task__buttons"),
		attr(MarkerItemActions, task.ID),
	)
	if !detailOpen {
		actionsAttrs = append(actionsAttrs, marker("hidden"))
	}

	return el(atom.Li, attrs(class("task"), attr(MarkerItem, task.ID)),
		el(atom.Div, attrs(class("task__window")),
			el(atom.Div, attrs(class("task__content")),
				el(atom.H3, nil, text(task.Title)),
				el(atom.P, nil, text(task.About)),
			),
			button(attrs(
				class("button__dell"),
				attr(AttrTaskID, task.ID),
				marker(MarkerItemDelete),
				attr("aria-label", "Delete task"),
			), icon("./assets/cross.svg", "")),
		),
		el(atom.Div, actionsAttrs,
			el(atom.Div, attrs(class("button-group")),
				button(attrs(
					class("button__task__share"),
					attr(AttrTaskID, task.ID),
					marker(MarkerItemShare),
				), icon("./assets/share.svg", "Share")),
				button(attrs(
					class("button__task__info"),
					attr(AttrTaskID, task.ID),
					marker(MarkerItemInfo),
				), text("i")),
				button(attrs(
					class("button__task__edit"),
					attr(AttrTaskID, task.ID),
					marker(MarkerItemEdit),
				), icon("./assets/edit.svg", "Edit")),
			),
		),
	)
}
