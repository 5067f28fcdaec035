package concurrent

import (
	"errors"
	"sync"
	"time"
)

var ErrScheduleTimeout = errors.New("schedule error: timed out")

// Pool. goroutine pool for short tasks, e.g. serving one websocket frame. workers are spawned lazily
// up to size; queue buffers tasks waiting for a free worker.
type Pool struct {
	sem    chan struct{}
	work   chan func()
	done   chan struct{}
	closed sync.Once
}

func NewPool(size, queue int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
		done: make(chan struct{}),
	}
}

// Spawn. starts n workers eagerly.
func (p *Pool) Spawn(n int) {
	for i := 0; i < n; i++ {
		select {
		case p.sem <- struct{}{}:
			go p.worker(func() {})
		default:
			return
		}
	}
}

func (p *Pool) Schedule(task func()) {
	p.schedule(task, nil)
}

// ScheduleTimeout. ErrScheduleTimeout when no worker or queue slot frees up within timeout.
func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *Pool) worker(task func()) {
	defer func() { <-p.sem }()

	task()
	for {
		select {
		case task := <-p.work:
			task()
		case <-p.done:
			return
		}
	}
}

// Close. idle workers exit; tasks still queued may not run.
func (p *Pool) Close() {
	p.closed.Do(func() {
		close(p.done)
	})
}
