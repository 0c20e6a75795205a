package stores

import (
	"sync"

	"github.com/spindlework/a2a-runtime/pkg/a2a"
)

/*
TaskStore is the mutation surface handed to adapters. Implementations must
serialize mutations per store; same-id operations are linearizable.
*/
type TaskStore interface {
	Add(task *a2a.Task)
	Get(id string) (a2a.Task, bool)
	UpdateStatus(id string, status a2a.TaskStatus) bool
	UpdateArtifacts(id string, artifacts []a2a.Artifact) bool
}

/*
InMemoryTaskStore is a concurrency-safe TaskId -> Task mapping. Tasks are
stored by value and copied out on read so callers never share mutable
state with the store. Contents are lost on restart.
*/
type InMemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]a2a.Task
}

func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{
		tasks: make(map[string]a2a.Task),
	}
}

/*
Add inserts the task, replacing any existing task with the same id. Whole
task replacement is the only way to mutate history.
*/
func (store *InMemoryTaskStore) Add(task *a2a.Task) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.tasks[task.ID] = *task
}

/*
Get returns a copy of the task, and whether it exists.
*/
func (store *InMemoryTaskStore) Get(id string) (a2a.Task, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	task, ok := store.tasks[id]
	return task, ok
}

/*
UpdateStatus replaces the task's status. Returns false when the id is
unknown; the caller must check.
*/
func (store *InMemoryTaskStore) UpdateStatus(id string, status a2a.TaskStatus) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	task, ok := store.tasks[id]
	if !ok {
		return false
	}

	task.Status = status
	store.tasks[id] = task
	return true
}

/*
UpdateArtifacts replaces the task's artifact list. Returns false when the
id is unknown.
*/
func (store *InMemoryTaskStore) UpdateArtifacts(id string, artifacts []a2a.Artifact) bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	task, ok := store.tasks[id]
	if !ok {
		return false
	}

	task.Artifacts = artifacts
	store.tasks[id] = task
	return true
}

/*
Len reports the number of stored tasks.
*/
func (store *InMemoryTaskStore) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()

	return len(store.tasks)
}
