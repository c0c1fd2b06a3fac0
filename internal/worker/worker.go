// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package worker runs process_image jobs in the background for the REST
// server, keyed by job ID, and broadcasts per-stage progress to any
// subscribed clients.
package worker

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mlnoga/filmr/internal/buffer"
	"github.com/mlnoga/filmr/internal/filmrlog"
	"github.com/mlnoga/filmr/internal/filmstock"
	"github.com/mlnoga/filmr/internal/pipeline"
	"github.com/mlnoga/filmr/internal/simconfig"
)

// State is a job's lifecycle stage.
type State string

const (
	StateQueued    State = "queued"
	StateRunning   State = "running"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// Job is one submitted process_image request and its outcome.
type Job struct {
	ID        string
	State     State
	Stage     string // name of the most recently completed pipeline stage
	StageNum  int
	StageTotal int
	Error     string
	Image     *buffer.Image // input, mutated into output in place once completed
	Stock     filmstock.Stock
	Config    simconfig.Config
	StartTime time.Time
	EndTime   time.Time
}

// ProgressEvent is one broadcastable update about a Job's state.
type ProgressEvent struct {
	JobID      string    `json:"jobId"`
	State      State     `json:"state"`
	Stage      string    `json:"stage"`
	StageNum   int       `json:"stageNum"`
	StageTotal int       `json:"stageTotal"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Manager owns the job table and dispatches each submitted job to its own
// goroutine, bounded by a semaphore so a burst of submissions cannot start
// more concurrent pipeline runs than the CPU backend can usefully chew on.
type Manager struct {
	mu          sync.RWMutex
	jobs        map[string]*Job
	sem         chan struct{}
	broadcaster *EventBroadcaster
}

// NewManager returns a Manager that runs at most maxConcurrent jobs at
// once.
func NewManager(maxConcurrent int) *Manager {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Manager{
		jobs:        make(map[string]*Job),
		sem:         make(chan struct{}, maxConcurrent),
		broadcaster: NewEventBroadcaster(),
	}
}

// Submit registers a new job and starts it on a background goroutine,
// returning the job ID immediately.
func (m *Manager) Submit(img *buffer.Image, stock filmstock.Stock, cfg simconfig.Config) string {
	id := uuid.NewString()
	job := &Job{
		ID:        id,
		State:     StateQueued,
		Image:     img,
		Stock:     stock,
		Config:    cfg,
		StartTime: time.Now(),
	}
	m.mu.Lock()
	m.jobs[id] = job
	m.mu.Unlock()

	go m.run(job)
	return id
}

// GetJob returns the current snapshot state of a job.
func (m *Manager) GetJob(id string) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	if !ok {
		return nil, false
	}
	snapshot := *job
	return &snapshot, true
}

// Subscribe returns a channel of progress events for id, per
// EventBroadcaster.Subscribe.
func (m *Manager) Subscribe(id string) chan ProgressEvent {
	return m.broadcaster.Subscribe(id)
}

// Unsubscribe stops delivering events on ch.
func (m *Manager) Unsubscribe(id string, ch chan ProgressEvent) {
	m.broadcaster.Unsubscribe(id, ch)
}

func (m *Manager) run(job *Job) {
	m.sem <- struct{}{}
	defer func() { <-m.sem }()

	m.update(job, func(j *Job) { j.State = StateRunning })
	filmrlog.Info("job started", "job_id", job.ID)

	onStage := func(name string, index, total int) {
		m.update(job, func(j *Job) {
			j.Stage, j.StageNum, j.StageTotal = name, index, total
		})
	}

	func() {
		defer func() {
			if r := recover(); r != nil {
				m.update(job, func(j *Job) {
					j.State = StateFailed
					j.Error = "panic during processing"
					j.EndTime = time.Now()
				})
				filmrlog.Error("job panicked", "job_id", job.ID, "recover", r)
			}
		}()
		pipeline.ProcessWithProgress(job.Image, job.Stock, job.Config, nil, onStage)
		m.update(job, func(j *Job) {
			j.State = StateCompleted
			j.EndTime = time.Now()
		})
	}()

	filmrlog.Info("job finished", "job_id", job.ID, "state", job.State)
	m.broadcaster.CleanupJob(job.ID)
}

func (m *Manager) update(job *Job, mutate func(*Job)) {
	m.mu.Lock()
	mutate(job)
	snapshot := *job
	m.mu.Unlock()

	m.broadcaster.Broadcast(ProgressEvent{
		JobID:      snapshot.ID,
		State:      snapshot.State,
		Stage:      snapshot.Stage,
		StageNum:   snapshot.StageNum,
		StageTotal: snapshot.StageTotal,
		Error:      snapshot.Error,
		Timestamp:  time.Now(),
	})
}
