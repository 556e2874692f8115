// Package tasks keeps the ordered to-do list persisted in a key-value slot.
package tasks

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StorageKey is the slot the list is serialised under.
const StorageKey = "studydesk.todos"

var (
	// ErrEmptyText is returned when a task has no text after trimming.
	ErrEmptyText = errors.New("task text is empty")
	// ErrIndexOutOfRange is returned for an index outside the list.
	ErrIndexOutOfRange = errors.New("task index out of range")
)

// KV is a durable string slot store. fyne.Preferences satisfies it.
type KV interface {
	String(key string) string
	SetString(key string, value string)
}

// Task is a single to-do entry.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created"`
}

// List reads and writes the task list. Every operation loads the slot, so
// edits made by another writer of the same slot are not lost.
type List struct {
	mu  sync.Mutex
	kv  KV
	now func() time.Time
}

// NewList creates a List over kv.
func NewList(kv KV) *List {
	return &List{kv: kv, now: time.Now}
}

// All returns the tasks, newest first.
func (list *List) All() []Task {
	list.mu.Lock()
	defer list.mu.Unlock()
	return list.loadLocked()
}

// Add inserts a task at the front.
func (list *List) Add(text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}

	list.mu.Lock()
	defer list.mu.Unlock()

	task := Task{
		ID:        uuid.NewString(),
		Text:      text,
		CreatedAt: list.now().UTC(),
	}
	tasks := append([]Task{task}, list.loadLocked()...)
	if err := list.saveLocked(tasks); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Toggle flips the done flag of the task at index.
func (list *List) Toggle(index int) (Task, error) {
	list.mu.Lock()
	defer list.mu.Unlock()

	tasks := list.loadLocked()
	if index < 0 || index >= len(tasks) {
		return Task{}, fmt.Errorf("toggle %d: %w", index, ErrIndexOutOfRange)
	}
	tasks[index].Done = !tasks[index].Done
	if err := list.saveLocked(tasks); err != nil {
		return Task{}, err
	}
	return tasks[index], nil
}

// Delete removes the task at index.
func (list *List) Delete(index int) error {
	list.mu.Lock()
	defer list.mu.Unlock()

	tasks := list.loadLocked()
	if index < 0 || index >= len(tasks) {
		return fmt.Errorf("delete %d: %w", index, ErrIndexOutOfRange)
	}
	tasks = append(tasks[:index], tasks[index+1:]...)
	return list.saveLocked(tasks)
}

// ClearDone removes every completed task and returns how many were removed.
func (list *List) ClearDone() (int, error) {
	list.mu.Lock()
	defer list.mu.Unlock()

	tasks := list.loadLocked()
	kept := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if !task.Done {
			kept = append(kept, task)
		}
	}
	if err := list.saveLocked(kept); err != nil {
		return 0, err
	}
	return len(tasks) - len(kept), nil
}

// loadLocked treats a missing or unreadable slot as an empty list.
func (list *List) loadLocked() []Task {
	raw := list.kv.String(StorageKey)
	if raw == "" {
		return []Task{}
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		log.Printf("tasks: parse %s: %v", StorageKey, err)
		return []Task{}
	}
	return tasks
}

func (list *List) saveLocked(tasks []Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	list.kv.SetString(StorageKey, string(data))
	if flusher, ok := list.kv.(interface{ Flush() error }); ok {
		if err := flusher.Flush(); err != nil {
			return fmt.Errorf("save tasks: %w", err)
		}
	}
	return nil
}
