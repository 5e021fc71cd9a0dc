// Package job tracks asynchronous synthesis requests and executes them on a
// bounded worker pool.
package job

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status is a job lifecycle state. Legal transitions: pending → processing →
// complete or failed. Jobs for already-cached fingerprints are created
// directly complete.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusFailed     Status = "failed"
)

const growthLogInterval = 1000

// View is the read-only snapshot of a job handed to handlers and notifiers.
type View struct {
	ID          string
	Fingerprint string
	Status      Status
	Err         string
}

// Notifier receives a snapshot after every job creation and transition.
type Notifier func(View)

type record struct {
	id          string
	fingerprint string
	status      Status
	err         string
	createdAt   time.Time
	updatedAt   time.Time
}

func (r *record) view() View {
	return View{ID: r.id, Fingerprint: r.fingerprint, Status: r.status, Err: r.err}
}

// Registry is the in-memory job table. Records are never expired; growth is
// logged so operators can see it.
type Registry struct {
	mu     sync.RWMutex
	jobs   map[string]*record
	notify Notifier
}

func NewRegistry() *Registry {
	return &Registry{jobs: map[string]*record{}}
}

// SetNotifier registers the transition callback. Must be called before the
// registry is shared across goroutines.
func (r *Registry) SetNotifier(n Notifier) {
	r.notify = n
}

// Create inserts a fresh job for fp in the given initial state and returns
// its snapshot. The id is an unpredictable uuid.
func (r *Registry) Create(fp string, status Status) View {
	now := time.Now()
	rec := &record{
		id:          uuid.NewString(),
		fingerprint: fp,
		status:      status,
		createdAt:   now,
		updatedAt:   now,
	}

	r.mu.Lock()
	r.jobs[rec.id] = rec
	count := len(r.jobs)
	v := rec.view()
	r.mu.Unlock()

	if count%growthLogInterval == 0 {
		log.Printf("job registry holds %d records; records are never expired", count)
	}

	r.emit(v)

	return v
}

// Transition moves a job to a new state, with detail carrying the error
// message for failed jobs. Any transition outside the lifecycle is a bug in
// the caller and panics.
func (r *Registry) Transition(id string, status Status, detail string) {
	r.mu.Lock()

	rec, ok := r.jobs[id]
	if !ok {
		r.mu.Unlock()
		panic(fmt.Sprintf("job: transition of unknown job %s", id))
	}

	if !legalTransition(rec.status, status) {
		from := rec.status
		r.mu.Unlock()
		panic(fmt.Sprintf("job: illegal transition %s -> %s for job %s", from, status, id))
	}

	rec.status = status
	rec.err = detail
	rec.updatedAt = time.Now()
	v := rec.view()
	r.mu.Unlock()

	r.emit(v)
}

// Get returns the current snapshot of a job.
func (r *Registry) Get(id string) (View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.jobs[id]
	if !ok {
		return View{}, false
	}

	return rec.view(), true
}

// Remove discards a job that was never scheduled. Used when submission to
// the worker pool is rejected; no notification is emitted.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.jobs, id)
	r.mu.Unlock()
}

func (r *Registry) emit(v View) {
	if r.notify != nil {
		r.notify(v)
	}
}

func legalTransition(from, to Status) bool {
	switch {
	case from == StatusPending && to == StatusProcessing:
		return true
	case from == StatusProcessing && to == StatusComplete:
		return true
	case from == StatusProcessing && to == StatusFailed:
		return true
	default:
		return false
	}
}
