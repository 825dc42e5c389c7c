package services

import (
	"context"
	"errors"
	"strings"

	"github.com/adanyl0v/go-todo-widget/internal/models"
)

const (
	FieldTitle = "title"
	FieldAbout = "about"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrValidation   = errors.New("validation failed")
)

// ValidationError names the fields that were empty after trimming.
// It satisfies errors.Is(err, ErrValidation).
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	return "empty " + strings.Join(e.Fields, " and ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Validate trims title and about and rejects either being empty.
func Validate(title, about string) (string, string, error) {
	title = strings.TrimSpace(title)
	about = strings.TrimSpace(about)

	var fields []string
	if title == "" {
		fields = append(fields, FieldTitle)
	}
	if about == "" {
		fields = append(fields, FieldAbout)
	}
	if len(fields) > 0 {
		return "", "", &ValidationError{Fields: fields}
	}
	return title, about, nil
}

// RecordStore is the persistence a TaskList writes through.
type RecordStore interface {
	Load(ctx context.Context) []models.Task
	Save(ctx context.Context, tasks []models.Task) error
}

// ChangeFunc receives the live list after every mutation.
type ChangeFunc func(tasks []models.Task)

type TaskList interface {
	// Add validates title and about, appends a task with a fresh id
	// and persists the list.
	//
	// It returns a *ValidationError if either field is empty after
	// trimming. If the list could not be saved, the task stays in
	// memory and the error wraps records.ErrStorageWrite.
	Add(ctx context.Context, title, about string) (models.Task, error)

	// Update replaces the title and about of the task with the given
	// id, keeping its position.
	//
	// Unknown ids are ignored: nothing is persisted or rendered.
	Update(ctx context.Context, id, title, about string) error

	// Delete removes the task with the given id. Unknown ids are
	// ignored.
	Delete(ctx context.Context, id string) error

	// Find returns ErrTaskNotFound if no task has the given id.
	Find(id string) (models.Task, error)

	// Tasks returns a copy of the list in insertion order.
	Tasks() []models.Task

	Len() int

	// Unsaved reports whether the last save failed, so memory and
	// storage may differ.
	Unsaved() bool
}
