package cron

import (
	"context"
	"sort"
	"sync"
	"time"
)

// JobStatus represents the last known state of a job.
type JobStatus string

const (
	StatusIdle    JobStatus = "idle"
	StatusRunning JobStatus = "running"
	StatusFulfill JobStatus = "fulfill"
	StatusReject  JobStatus = "reject"
)

// Job defines a scheduled background task. Either Interval or Hours must be
// set: Interval reschedules a fixed duration after each run, Hours fires at
// the given wall-clock hours (local time) each day.
type Job struct {
	Name        string
	Description string
	Interval    time.Duration
	Hours       []int
	RunOnStart  bool
	Fn          func(ctx context.Context) error
}

// JobState holds runtime state for a registered job.
type JobState struct {
	Job
	Status    JobStatus
	Message   string
	LastRunAt *time.Time
	NextRunAt time.Time
	mu        sync.Mutex
}

// ListItem is the serializable representation of a job for the API.
type ListItem struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      JobStatus  `json:"status"`
	NextDate    *time.Time `json:"nextDate"`
	LastRunAt   *time.Time `json:"lastRunAt,omitempty"`
}

// Scheduler manages a collection of named background jobs.
type Scheduler struct {
	mu   sync.RWMutex
	jobs map[string]*JobState
}

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{
		jobs: make(map[string]*JobState),
	}
}

// NextFireTime returns the earliest future occurrence of any of the given
// wall-clock hours after now, rolling into the next day when every hour has
// already passed today.
func NextFireTime(now time.Time, hours []int) time.Time {
	if len(hours) == 0 {
		return now.Add(24 * time.Hour)
	}
	sorted := append([]int(nil), hours...)
	sort.Ints(sorted)

	for _, h := range sorted {
		candidate := time.Date(now.Year(), now.Month(), now.Day(), h, 0, 0, 0, now.Location())
		if candidate.After(now) {
			return candidate
		}
	}
	first := sorted[0]
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), first, 0, 0, 0, now.Location())
}

// Register adds a job to the scheduler. Must be called before Start.
func (s *Scheduler) Register(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	next := nextRun(job, now)
	if job.RunOnStart {
		next = now
	}
	s.jobs[job.Name] = &JobState{
		Job:       job,
		Status:    StatusIdle,
		NextRunAt: next,
	}
}

// Start launches all registered jobs in background goroutines.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, js := range s.jobs {
		go s.runLoop(ctx, js)
	}
}

func nextRun(job Job, now time.Time) time.Time {
	if len(job.Hours) > 0 {
		return NextFireTime(now, job.Hours)
	}
	return now.Add(job.Interval)
}

func (s *Scheduler) runLoop(ctx context.Context, js *JobState) {
	for {
		js.mu.Lock()
		wait := time.Until(js.NextRunAt)
		js.mu.Unlock()
		if wait < 0 {
			wait = 0
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			s.execute(ctx, js)
			js.mu.Lock()
			js.NextRunAt = nextRun(js.Job, time.Now())
			js.mu.Unlock()
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, js *JobState) {
	js.mu.Lock()
	if js.Status == StatusRunning {
		js.mu.Unlock()
		return
	}
	js.Status = StatusRunning
	js.mu.Unlock()

	now := time.Now()
	err := js.Fn(ctx)

	js.mu.Lock()
	js.LastRunAt = &now
	if err != nil {
		js.Status = StatusReject
		js.Message = err.Error()
	} else {
		js.Status = StatusFulfill
		js.Message = ""
	}
	js.mu.Unlock()
}

// List returns a summary of all registered jobs.
func (s *Scheduler) List() []ListItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ListItem, 0, len(s.jobs))
	for _, js := range s.jobs {
		js.mu.Lock()
		next := js.NextRunAt
		items = append(items, ListItem{
			Name:        js.Name,
			Description: js.Description,
			Status:      js.Status,
			NextDate:    &next,
			LastRunAt:   js.LastRunAt,
		})
		js.mu.Unlock()
	}
	return items
}
