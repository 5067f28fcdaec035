package concurrent

import (
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// WorkerPool. fixed number of workers draining a job queue into a results channel. callers must keep
// reading CollectResults while adding jobs when there are more jobs than jobQueueSize.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(job)
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait. blocks until every worker returned, then closes the results channel. call after Close.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Run. processes jobs with numWorkers workers and returns the results in job order.
func Run[T any, G any](numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	type indexed struct {
		i   int
		job T
	}
	type indexedResult struct {
		i   int
		res G
	}

	wp := NewWorkerPool[indexed, indexedResult](numWorkers, len(jobs))
	wp.Start(func(job indexed) indexedResult {
		return indexedResult{i: job.i, res: jobFunc(job.job)}
	})
	for i, job := range jobs {
		wp.AddJob(indexed{i: i, job: job})
	}
	wp.Close()
	wp.Wait()

	out := make([]G, len(jobs))
	for r := range wp.CollectResults() {
		out[r.i] = r.res
	}
	return out
}
