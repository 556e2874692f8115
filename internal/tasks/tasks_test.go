package tasks

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
)

type memoryKV map[string]string

func (kv memoryKV) String(key string) string { return kv[key] }
func (kv memoryKV) SetString(key string, value string) { kv[key] = value }

func fixedClock(list *List) {
	list.now = func() time.Time {
		return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	}
}

func TestAddPrependsTrimmedTask(t *testing.T) {
	list := NewList(memoryKV{})
	fixedClock(list)

	if _, err := list.Add("read chapter 3"); err != nil {
		t.Fatalf("add: %v", err)
	}
	task, err := list.Add("  write summary ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if task.Text != "write summary" || task.ID == "" || task.Done {
		t.Fatalf("unexpected task %+v", task)
	}

	all := list.All()
	if len(all) != 2 || all[0].Text != "write summary" || all[1].Text != "read chapter 3" {
		t.Fatalf("expected newest first, got %+v", all)
	}
	if !all[0].CreatedAt.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created time %v", all[0].CreatedAt)
	}
}

func TestAddRejectsBlankText(t *testing.T) {
	list := NewList(memoryKV{})
	if _, err := list.Add("   "); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
	if len(list.All()) != 0 {
		t.Fatalf("expected empty list")
	}
}

func TestToggleDeleteAndClearDone(t *testing.T) {
	list := NewList(memoryKV{})
	for _, text := range []string{"a", "b", "c", "d"} {
		if _, err := list.Add(text); err != nil {
			t.Fatalf("add %s: %v", text, err)
		}
	}
	// Order is d, c, b, a.
	if task, err := list.Toggle(1); err != nil || !task.Done || task.Text != "c" {
		t.Fatalf("toggle: %+v %v", task, err)
	}
	if _, err := list.Toggle(3); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := list.Delete(0); err != nil {
		t.Fatalf("delete: %v", err)
	}

	removed, err := list.ClearDone()
	if err != nil {
		t.Fatalf("clear done: %v", err)
	}
	if removed != 2 {
		t.Fatalf("expected 2 removed, got %d", removed)
	}
	all := list.All()
	if len(all) != 1 || all[0].Text != "b" {
		t.Fatalf("expected only b, got %+v", all)
	}

	if task, err := list.Toggle(0); err != nil || !task.Done {
		t.Fatalf("toggle: %+v %v", task, err)
	}
	if task, err := list.Toggle(0); err != nil || task.Done {
		t.Fatalf("expected second toggle to clear done: %+v %v", task, err)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	list := NewList(memoryKV{})
	if _, err := list.Toggle(0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := list.Delete(-1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestCorruptSlotLoadsEmpty(t *testing.T) {
	list := NewList(memoryKV{StorageKey: "{not json"})
	if len(list.All()) != 0 {
		t.Fatalf("expected corrupt slot to read as empty")
	}
	if _, err := list.Add("recover"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(list.All()) != 1 {
		t.Fatalf("expected list rewritten")
	}
}

func TestFynePreferencesSlot(t *testing.T) {
	app := test.NewTempApp(t)
	list := NewList(app.Preferences())
	if _, err := list.Add("stretch"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if app.Preferences().String(StorageKey) == "" {
		t.Fatalf("expected tasks under %s", StorageKey)
	}
	if all := NewList(app.Preferences()).All(); len(all) != 1 || all[0].Text != "stretch" {
		t.Fatalf("unexpected reload %+v", all)
	}
}

func TestFileKVPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")
	store, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	list := NewList(store)
	if _, err := list.Add("flashcards"); err != nil {
		t.Fatalf("add: %v", err)
	}

	reopened, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	all := NewList(reopened).All()
	if len(all) != 1 || all[0].Text != "flashcards" {
		t.Fatalf("unexpected tasks after reopen %+v", all)
	}
}

func TestCorruptFileOpensEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("expected corrupt file to open, got %v", err)
	}
	list := NewList(store)
	if all := list.All(); len(all) != 0 {
		t.Fatalf("expected empty list, got %+v", all)
	}
	if _, err := list.Add("recover"); err != nil {
		t.Fatalf("add: %v", err)
	}

	reopened, err := OpenFileKV(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if all := NewList(reopened).All(); len(all) != 1 || all[0].Text != "recover" {
		t.Fatalf("expected rewritten file, got %+v", all)
	}
}
