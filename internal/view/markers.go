package view

// Marker attributes locate elements for event delegation. Styling
// classes are never used for lookup.
const (
	MarkerRoot       = "data-js-todo"
	MarkerTitleInput = "data-js-todo-new-task-title-input"
	MarkerAboutInput = "data-js-todo-new-task-about-input"
	MarkerList       = "data-js-todo-list"
	MarkerAddButton  = "data-js-todo-add-button"
	MarkerEmptyState = "data-js-no-tasks-message"

	MarkerItem        = "data-js-todo-item"
	MarkerItemDelete  = "data-js-todo-item-delete-button"
	MarkerItemActions = "data-js-todo-item-actions"
	MarkerItemShare   = "data-js-todo-item-share-button"
	MarkerItemInfo    = "data-js-todo-item-info-button"
	MarkerItemEdit    = "data-js-todo-item-edit-button"

	// AttrTaskID carries the task id on every per-row button.
	AttrTaskID = "data-task-id"

	MarkerDialog        = "data-js-todo-dialog"
	MarkerDialogContent = "data-js-todo-dialog-content"

	MarkerDeleteDialog        = "data-js-todo-delete-dialog"
	MarkerDeleteDialogConfirm = "data-js-todo-delete-dialog-confirm-button"
	MarkerDeleteDialogCancel  = "data-js-todo-delete-dialog-cancel-button"

	MarkerEditDialog           = "data-js-todo-edit-dialog"
	MarkerEditDialogTitleInput = "data-js-todo-edit-dialog-title-input"
	MarkerEditDialogAboutInput = "data-js-todo-edit-dialog-about-input"
	MarkerEditDialogSave       = "data-js-todo-edit-dialog-save-button"
	MarkerEditDialogCancel     = "data-js-todo-edit-dialog-cancel-button"

	MarkerShareDialog      = "data-js-todo-share-dialog"
	MarkerShareTarget      = "data-js-todo-share-target"
	MarkerShareDialogClose = "data-js-todo-share-dialog-close-button"
)

// RequiredMarkers are the containers a page must provide before a
// widget can be mounted on it.
var RequiredMarkers = []string{
	MarkerRoot,
	MarkerTitleInput,
	MarkerAboutInput,
	MarkerList,
	MarkerAddButton,
	MarkerEmptyState,
}

// InputMarkers are the text fields whose values a client reports with
// every event.
var InputMarkers = []string{
	MarkerTitleInput,
	MarkerAboutInput,
	MarkerEditDialogTitleInput,
	MarkerEditDialogAboutInput,
}
