package services

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-widget/internal/models"
)

type taskListImpl struct {
	logger   zerolog.Logger
	store    RecordStore
	ids      IDGenerator
	onChange ChangeFunc
	now      func() time.Time

	tasks   []models.Task
	unsaved bool
}

// NewTaskList loads the list from store. onChange may be nil and is
// called synchronously once per successful mutation.
func NewTaskList(
	ctx context.Context,
	logger zerolog.Logger,
	store RecordStore,
	ids IDGenerator,
	onChange ChangeFunc,
) TaskList {
	if ids == nil {
		ids = NewUUID
	}
	l := &taskListImpl{
		logger:   logger,
		store:    store,
		ids:      ids,
		onChange: onChange,
		now:      time.Now,
	}
	l.tasks = store.Load(ctx)
	logger.Info().
		Int("count", len(l.tasks)).
		Msg("loaded task list")
	return l
}

func (l *taskListImpl) Add(ctx context.Context, title, about string) (models.Task, error) {
	title, about, err := Validate(title, about)
	if err != nil {
		l.logger.Debug().
			Err(err).
			Msg("rejected new task")
		return models.Task{}, err
	}

	task := models.Task{
		ID:    l.newID(),
		Title: title,
		About: about,
	}
	l.tasks = append(l.tasks, task)

	err = l.commit(ctx)
	l.logMutation("added task", task.ID, err)
	return task, err
}

func (l *taskListImpl) Update(ctx context.Context, id, title, about string) error {
	title, about, err := Validate(title, about)
	if err != nil {
		l.logger.Debug().
			Err(err).
			Str("task_id", id).
			Msg("rejected task update")
		return err
	}

	i := l.indexOf(id)
	if i < 0 {
		l.logger.Debug().
			Str("task_id", id).
			Msg("task to update not found")
		return nil
	}
	l.tasks[i].Title = title
	l.tasks[i].About = about

	err = l.commit(ctx)
	l.logMutation("updated task", id, err)
	return err
}

func (l *taskListImpl) Delete(ctx context.Context, id string) error {
	i := l.indexOf(id)
	if i < 0 {
		l.logger.Debug().
			Str("task_id", id).
			Msg("task to delete not found")
		return nil
	}
	l.tasks = slices.Delete(l.tasks, i, i+1)

	err := l.commit(ctx)
	l.logMutation("deleted task", id, err)
	return err
}

func (l *taskListImpl) Find(id string) (models.Task, error) {
	i := l.indexOf(id)
	if i < 0 {
		return models.Task{}, ErrTaskNotFound
	}
	return l.tasks[i], nil
}

func (l *taskListImpl) Tasks() []models.Task {
	return slices.Clone(l.tasks)
}

func (l *taskListImpl) Len() int { return len(l.tasks) }

func (l *taskListImpl) Unsaved() bool { return l.unsaved }

// logMutation records a change that is already applied in memory,
// at warn level if it could not be persisted.
func (l *taskListImpl) logMutation(msg, id string, err error) {
	event := l.logger.Info()
	if err != nil {
		event = l.logger.Warn().Err(err)
	}
	event.
		Str("task_id", id).
		Bool("unsaved", l.unsaved).
		Msg(msg)
}

// commit persists the list and then notifies the listener. The
// listener runs even if saving failed, because memory already changed.
func (l *taskListImpl) commit(ctx context.Context) error {
	err := l.store.Save(ctx, l.Tasks())
	if err != nil {
		l.unsaved = true
		l.logger.Error().
			Err(err).
			Int("count", len(l.tasks)).
			Msg("task list diverged from storage")
	} else {
		l.unsaved = false
	}

	if l.onChange != nil {
		l.onChange(l.Tasks())
	}
	return err
}

func (l *taskListImpl) indexOf(id string) int {
	return slices.IndexFunc(l.tasks, func(t models.Task) bool {
		return t.ID == id
	})
}

// newID asks the generator for a random id and falls back to the
// current time in nanoseconds. Either way the result is unique within
// the list.
func (l *taskListImpl) newID() string {
	id, err := l.ids()
	if err != nil || id == "" {
		l.logger.Warn().
			Err(err).
			Msg("random id source unavailable, using timestamp")
		id = strconv.FormatInt(l.now().UnixNano(), 10)
	}

	base := id
	for n := 1; l.indexOf(id) >= 0; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}
