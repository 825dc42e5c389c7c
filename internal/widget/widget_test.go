package widget

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-widget/internal/dom"
	"github.com/adanyl0v/go-todo-widget/internal/models"
	"github.com/adanyl0v/go-todo-widget/internal/records"
	"github.com/adanyl0v/go-todo-widget/internal/services"
	"github.com/adanyl0v/go-todo-widget/internal/storage"
	"github.com/adanyl0v/go-todo-widget/internal/testutil"
	"github.com/adanyl0v/go-todo-widget/internal/view"
)

type fixture struct {
	page   *testutil.Page
	store  *records.Store
	widget *Widget
}

func newFixture(t *testing.T, kv storage.KeyValue, seed ...models.Task) *fixture {
	t.Helper()
	ctx := context.Background()
	store := records.New(zerolog.Nop(), kv, "")
	if len(seed) > 0 {
		if err := store.Save(ctx, seed); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	page := testutil.NewPage()
	w, err := New(ctx, zerolog.Nop(), store, page, page, Options{})
	if err != nil {
		t.Fatalf("new widget: %v", err)
	}
	return &fixture{page: page, store: store, widget: w}
}

func (f *fixture) ids() []string {
	var ids []string
	for _, task := range f.widget.Tasks().Tasks() {
		ids = append(ids, task.ID)
	}
	return ids
}

func TestNewRequiresContainers(t *testing.T) {
	doc := dom.NewDocument(view.MarkerRoot, view.MarkerList)
	store := records.New(zerolog.Nop(), storage.NewMemory(0), "")

	_, err := New(context.Background(), zerolog.Nop(), store, doc, doc, Options{})
	if !errors.Is(err, ErrElementNotFound) {
		t.Fatalf("expected ErrElementNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), view.MarkerAddButton) {
		t.Fatalf("expected missing markers in error, got %v", err)
	}
}

func TestInitialRenderFromStorage(t *testing.T) {
	empty := newFixture(t, storage.NewMemory(0))
	if got := empty.page.Contents(view.MarkerEmptyState); got != view.RenderEmptyState(true).String() {
		t.Fatalf("expected placeholder, got %q", got)
	}

	seeded := newFixture(t, storage.NewMemory(0), models.Task{ID: "a", Title: "X", About: "Y"})
	if got := seeded.page.Contents(view.MarkerEmptyState); got != "" {
		t.Fatalf("expected empty slot cleared, got %q", got)
	}
	if !strings.Contains(seeded.page.Contents(view.MarkerList), `data-js-todo-item="a"`) {
		t.Fatalf("expected row a, got %q", seeded.page.Contents(view.MarkerList))
	}
}

func TestAddFromInputs(t *testing.T) {
	f := newFixture(t, storage.NewMemory(0))
	f.page.Type(view.MarkerTitleInput, "Buy milk")
	f.page.Type(view.MarkerAboutInput, "2%  ")
	f.page.Click(testutil.AddButton()...)

	tasks := f.widget.Tasks().Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" || tasks[0].About != "2%" {
		t.Fatalf("unexpected tasks %#v", tasks)
	}
	if got := f.page.Contents(view.MarkerEmptyState); got != "" {
		t.Fatalf("expected empty-state slot cleared, got %q", got)
	}
	if f.page.Value(view.MarkerTitleInput) != "" || f.page.Value(view.MarkerAboutInput) != "" {
		t.Fatal("expected inputs cleared")
	}
	// initial paint plus exactly one for the mutation.
	if f.page.Paints[view.MarkerList] != 2 {
		t.Fatalf("expected 2 list paints, got %d", f.page.Paints[view.MarkerList])
	}
	if !slices.Equal(f.store.Load(context.Background()), tasks) {
		t.Fatal("storage differs from memory")
	}
}

func TestAddWithEnterKey(t *testing.T) {
	f := newFixture(t, storage.NewMemory(0))
	f.page.SetValue(view.MarkerTitleInput, "t")
	f.page.SetValue(view.MarkerAboutInput, "a")

	f.page.Dispatch(context.Background(), dom.Event{
		Type: dom.EventKeyPress, Key: "x", Path: testutil.Input(view.MarkerAboutInput),
	})
	if f.widget.Tasks().Len() != 0 {
		t.Fatal("expected non-Enter key to be ignored")
	}

	f.page.PressEnter(view.MarkerAboutInput)
	if f.widget.Tasks().Len() != 1 {
		t.Fatalf("expected one task, got %d", f.widget.Tasks().Len())
	}
}

func TestAddValidationFlagsFields(t *testing.T) {
	f := newFixture(t, storage.NewMemory(0))
	f.page.SetValue(view.MarkerTitleInput, "   ")
	f.page.SetValue(view.MarkerAboutInput, "about")
	f.page.Click(testutil.AddButton()...)

	if f.widget.Tasks().Len() != 0 {
		t.Fatal("expected no task")
	}
	notices := f.page.DrainNotices()
	if len(notices) != 1 || notices[0].Kind != dom.NoticeValidation || !slices.Equal(notices[0].Fields, []string{services.FieldTitle}) {
		t.Fatalf("unexpected notices %#v", notices)
	}
	if !f.page.Flagged(view.MarkerTitleInput) || f.page.Flagged(view.MarkerAboutInput) {
		t.Fatal("expected only the title flagged")
	}
	if f.page.Value(view.MarkerAboutInput) != "about" {
		t.Fatal("expected inputs kept on failure")
	}

	f.page.Type(view.MarkerTitleInput, "t")
	if f.page.Flagged(view.MarkerTitleInput) {
		t.Fatal("expected typing to clear the flag")
	}
}

func TestDeleteConfirmAndCancel(t *testing.T) {
	f := newFixture(t, storage.NewMemory(0), models.Task{ID: "a", Title: "X", About: "Y"})
	baseline := f.page.ListenerCount()

	f.page.Click(testutil.RowButton("a", view.MarkerItemDelete)...)
	if kind, id := f.widget.Dialog().State(); kind != DialogConfirmDelete || id != "a" {
		t.Fatalf("expected confirm dialog for a, got %v %q", kind, id)
	}
	if o := f.page.Overlays(); len(o) != 1 || !strings.Contains(o[0].HTML, view.MarkerDeleteDialog) {
		t.Fatalf("expected delete dialog overlay, got %#v", o)
	}

	f.page.Click(testutil.DialogButton(view.MarkerDeleteDialog, dom.Element{view.MarkerDeleteDialogCancel: ""})...)
	if kind, _ := f.widget.Dialog().State(); kind != DialogClosed {
		t.Fatalf("expected closed, got %v", kind)
	}
	if f.widget.Tasks().Len() != 1 || len(f.page.Overlays()) != 0 || f.page.ListenerCount() != baseline {
		t.Fatal("cancel must not mutate and must release the dialog")
	}

	f.page.Click(testutil.RowButton("a", view.MarkerItemDelete)...)
	f.page.Click(testutil.DialogButton(view.MarkerDeleteDialog, dom.Element{view.MarkerDeleteDialogConfirm: ""})...)
	if f.widget.Tasks().Len() != 0 {
		t.Fatal("expected task deleted")
	}
	if kind, _ := f.widget.Dialog().State(); kind != DialogClosed || f.page.ListenerCount() != baseline {
		t.Fatal("expected dialog closed after confirm")
	}
	if got := f.page.Contents(view.MarkerEmptyState); got != view.RenderEmptyState(true).String() {
		t.Fatalf("expected placeholder after last delete, got %q", got)
	}
}

func TestDialogsDoNotLeakListeners(t *testing.T) {
	f := newFixture(t, storage.NewMemory(0), models.Task{ID: "a", Title: "X", About: "Y"})
	baseline := f.page.ListenerCount()

	for i := 0; i < 10; i++ {
		f.page.Click(testutil.RowButton("a", view.MarkerItemDelete)...)
		f.page.Click(testutil.RowButton("a", view.MarkerItemEdit)...)
		f.page.Click(testutil.RowButton("a", view.MarkerItemShare)...)
		f.page.Click(testutil.Backdrop(view.MarkerShareDialog)...)
	}
	if f.page.ListenerCount() != baseline || f.widget.Dialog().ListenerCount() != 0 {
		t.Fatalf("expected %d listeners, got %d", baseline, f.page.ListenerCount())
	}
	if len(f.page.Overlays()) != 0 {
		t.Fatal("expected no overlay left")
	}
}

func TestEditDialog(t *testing.T) {
	f := newFixture(t, storage.NewMemory(0),
		models.Task{ID: "z", Title: "first", About: "first"},
		models.Task{ID: "a", Title: "X", About: "Y"},
	)

	f.page.Click(testutil.RowButton("a", view.MarkerItemEdit)...)
	if kind, id := f.widget.Dialog().State(); kind != DialogEdit || id != "a" {
		t.Fatalf("expected edit dialog for a, got %v %q", kind, id)
	}
	if title, about := f.widget.Dialog().Draft(); title != "X" || about != "Y" {
		t.Fatalf("expected pre-filled fields, got %q %q", title, about)
	}

	f.page.SetValue(view.MarkerEditDialogTitleInput, "")
	save := testutil.DialogButton(view.MarkerEditDialog, dom.Element{view.MarkerEditDialogSave: ""})
	f.page.Click(save...)
	if kind, _ := f.widget.Dialog().State(); kind != DialogEdit {
		t.Fatal("expected dialog to stay open on validation failure")
	}
	if n := f.page.DrainNotices(); len(n) != 1 || n[0].Kind != dom.NoticeValidation {
		t.Fatalf("expected validation notice, got %#v", n)
	}
	if !f.page.Flagged(view.MarkerEditDialogTitleInput) {
		t.Fatal("expected title field flagged")
	}

	f.page.SetValue(view.MarkerEditDialogTitleInput, "X2")
	f.page.SetValue(view.MarkerEditDialogAboutInput, "Y2")
	f.page.Click(save...)

	got, err := f.widget.Tasks().Find("a")
	if err != nil || got != (models.Task{ID: "a", Title: "X2", About: "Y2"}) {
		t.Fatalf("unexpected task %#v (%v)", got, err)
	}
	if !slices.Equal(f.ids(), []string{"z", "a"}) {
		t.Fatalf("order changed: %v", f.ids())
	}
	if kind, _ := f.widget.Dialog().State(); kind != DialogClosed {
		t.Fatal("expected dialog closed after save")
	}
	if f.page.Flagged(view.MarkerEditDialogTitleInput) {
		t.Fatal("expected flags cleared on close")
	}
}

func TestEditDialogBackdrop(t *testing.T) {
	f := newFixture(t, storage.NewMemory(0), models.Task{ID: "a", Title: "X", About: "Y"})
	f.page.Click(testutil.RowButton("a", view.MarkerItemEdit)...)
	f.page.SetValue(view.MarkerEditDialogTitleInput, "changed")

	f.page.Click(testutil.DialogContent(view.MarkerEditDialog)...)
	if kind, _ := f.widget.Dialog().State(); kind != DialogEdit {
		t.Fatal("click inside the window must not close the dialog")
	}

	f.page.Click(testutil.Backdrop(view.MarkerEditDialog)...)
	if kind, _ := f.widget.Dialog().State(); kind != DialogClosed {
		t.Fatal("expected backdrop click to close")
	}
	if got, _ := f.widget.Tasks().Find("a"); got.Title != "X" {
		t.Fatalf("expected no mutation, got %#v", got)
	}
}

func TestEditDeletedTaskDoesNotOpen(t *testing.T) {
	f := newFixture(t, storage.NewMemory(0), models.Task{ID: "a", Title: "X", About: "Y"})
	before := f.page.Paints[view.MarkerList]

	err := f.widget.Dialog().OpenEdit("gone")
	if !errors.Is(err, services.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if kind, _ := f.widget.Dialog().State(); kind != DialogClosed || len(f.page.Overlays()) != 0 {
		t.Fatal("expected no dialog")
	}
	if n := f.page.DrainNotices(); len(n) != 1 || n[0].Kind != dom.NoticeNotFound {
		t.Fatalf("expected not-found notice, got %#v", n)
	}
	if f.widget.Tasks().Len() != 1 || f.page.Paints[view.MarkerList] != before {
		t.Fatal("expected task list unaffected")
	}
}

func TestShareDialog(t *testing.T) {
	f := newFixture(t, storage.NewMemory(0), models.Task{ID: "a", Title: "X", About: "Y"})

	f.page.Click(testutil.RowButton("a", view.MarkerItemShare)...)
	if kind, _ := f.widget.Dialog().State(); kind != DialogShare {
		t.Fatalf("expected share dialog, got %v", kind)
	}
	f.page.Click(testutil.DialogButton(view.MarkerShareDialog, dom.Element{view.MarkerShareTarget: "telegram"})...)
	if kind, _ := f.widget.Dialog().State(); kind != DialogShare {
		t.Fatal("share targets must be inert")
	}
	f.page.Click(testutil.Backdrop(view.MarkerShareDialog)...)
	if kind, _ := f.widget.Dialog().State(); kind != DialogClosed {
		t.Fatal("expected backdrop to close the share dialog")
	}

	if err := f.widget.Dialog().OpenShare("gone"); !errors.Is(err, services.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	if n := f.page.DrainNotices(); len(n) != 1 || n[0].Kind != dom.NoticeNotFound {
		t.Fatalf("expected not-found notice, got %#v", n)
	}
}

func TestToggleDetail(t *testing.T) {
	f := newFixture(t, storage.NewMemory(0),
		models.Task{ID: "a", Title: "X", About: "Y"},
		models.Task{ID: "b", Title: "X", About: "Y"},
	)
	d := f.widget.Dispatcher()

	f.page.Click(testutil.RowBody("a")...)
	if d.OpenDetailID() != "a" {
		t.Fatalf("expected a open, got %q", d.OpenDetailID())
	}
	if f.page.Contents(view.MarkerList) != view.RenderList(f.widget.Tasks().Tasks(), "a").String() {
		t.Fatal("expected list repainted from open row state")
	}

	f.page.Click(testutil.RowBody("b")...)
	if d.OpenDetailID() != "b" {
		t.Fatalf("expected b open and a closed, got %q", d.OpenDetailID())
	}

	f.page.Click(testutil.RowButton("b", view.MarkerItemInfo)...)
	if d.OpenDetailID() != "b" {
		t.Fatal("clicks inside the detail section must not toggle it")
	}

	f.page.Click(testutil.RowBody("b")...)
	if d.OpenDetailID() != "" {
		t.Fatalf("expected no open row, got %q", d.OpenDetailID())
	}

	f.page.Click(testutil.RowBody("a")...)
	f.page.Click(testutil.RowButton("a", view.MarkerItemDelete)...)
	f.page.Click(testutil.DialogButton(view.MarkerDeleteDialog, dom.Element{view.MarkerDeleteDialogConfirm: ""})...)
	if d.OpenDetailID() != "" {
		t.Fatalf("expected open row cleared after its deletion, got %q", d.OpenDetailID())
	}
}

func TestSaveFailureIsReported(t *testing.T) {
	f := newFixture(t, storage.NewMemory(10))
	f.page.SetValue(view.MarkerTitleInput, "t")
	f.page.SetValue(view.MarkerAboutInput, "a")
	f.page.Click(testutil.AddButton()...)

	if f.widget.Tasks().Len() != 1 || !f.widget.Tasks().Unsaved() {
		t.Fatal("expected task kept in memory and marked unsaved")
	}
	if n := f.page.DrainNotices(); len(n) != 1 || n[0].Kind != dom.NoticeNotSaved {
		t.Fatalf("expected not-saved notice, got %#v", n)
	}
	if !strings.Contains(f.page.Contents(view.MarkerList), "<h3>t</h3>") {
		t.Fatal("expected the unsaved task rendered")
	}
}

func TestCloseReleasesListeners(t *testing.T) {
	f := newFixture(t, storage.NewMemory(0), models.Task{ID: "a", Title: "X", About: "Y"})
	f.page.Click(testutil.RowButton("a", view.MarkerItemEdit)...)

	f.widget.Close()
	f.widget.Close()
	if f.page.ListenerCount() != 0 {
		t.Fatalf("expected no listeners, got %d", f.page.ListenerCount())
	}
	if len(f.page.Overlays()) != 0 {
		t.Fatal("expected dialog unmounted")
	}
}
