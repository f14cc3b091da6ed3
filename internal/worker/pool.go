package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull = errors.New("job queue is full")
	ErrStopped   = errors.New("dispatcher is stopped")
)

// Job represents a unit of work to be executed.
type Job interface {
	ID() string
	Type() string
	Execute(ctx context.Context) (interface{}, error)
}

// ResultRecorder persists the outcome of a job.
type ResultRecorder interface {
	Complete(ctx context.Context, jobID string, output interface{}) error
	Fail(ctx context.Context, jobID string, message string) error
}

// Worker processes jobs handed to it by the Dispatcher.
type Worker struct {
	ID         int
	WorkerPool chan chan Job // workers register their JobChannel here when idle
	JobChannel chan Job
	quit       <-chan struct{}
	wg         *sync.WaitGroup
	recorder   ResultRecorder
	logger     *logrus.Logger
}

func newWorker(id int, d *Dispatcher) Worker {
	return Worker{
		ID:         id,
		WorkerPool: d.WorkerPool,
		JobChannel: make(chan Job),
		quit:       d.quit,
		wg:         &d.wg,
		recorder:   d.recorder,
		logger:     d.logger,
	}
}

// Start makes the Worker listen for jobs on its JobChannel.
func (w Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case w.WorkerPool <- w.JobChannel:
			case <-w.quit:
				return
			}

			select {
			case job := <-w.JobChannel:
				w.process(ctx, job)
			case <-w.quit:
				return
			}
		}
	}()
}

func (w Worker) process(ctx context.Context, job Job) {
	log := w.logger.WithFields(logrus.Fields{
		"worker":   w.ID,
		"job_id":   job.ID(),
		"job_type": job.Type(),
	})
	log.Info("Started job")

	output, err := job.Execute(ctx)

	// Outcomes are recorded even when ctx was cancelled mid-job.
	recordCtx := context.WithoutCancel(ctx)
	if err != nil {
		log.WithError(err).Error("Error processing job")
		if w.recorder != nil {
			if rerr := w.recorder.Fail(recordCtx, job.ID(), err.Error()); rerr != nil {
				log.WithError(rerr).Error("Failed to record job failure")
			}
		}
		return
	}
	log.Info("Finished job")
	if w.recorder != nil {
		if rerr := w.recorder.Complete(recordCtx, job.ID(), output); rerr != nil {
			log.WithError(rerr).Error("Failed to record job completion")
		}
	}
}

// Dispatcher manages a pool of workers and dispatches jobs to them.
type Dispatcher struct {
	MaxWorkers int
	WorkerPool chan chan Job
	JobQueue   chan Job

	recorder ResultRecorder
	logger   *logrus.Logger

	mu      sync.RWMutex
	running bool
	stopped bool
	quit    chan struct{}
	drained chan struct{}
	wg      sync.WaitGroup
}

// NewDispatcher creates a new Dispatcher. recorder may be nil.
func NewDispatcher(maxWorkers, jobQueueSize int, recorder ResultRecorder, logger *logrus.Logger) *Dispatcher {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Dispatcher{
		MaxWorkers: maxWorkers,
		WorkerPool: make(chan chan Job, maxWorkers),
		JobQueue:   make(chan Job, jobQueueSize),
		recorder:   recorder,
		logger:     logger,
		quit:       make(chan struct{}),
		drained:    make(chan struct{}),
	}
}

// Run starts the workers and the dispatch loop. ctx is passed to every job.
func (d *Dispatcher) Run(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running || d.stopped {
		return
	}
	d.running = true

	d.logger.WithField("workers", d.MaxWorkers).Info("Dispatcher starting")
	for i := 1; i <= d.MaxWorkers; i++ {
		newWorker(i, d).Start(ctx)
	}
	go d.dispatch()
}

// dispatch hands queued jobs to idle workers until the queue is closed and empty.
func (d *Dispatcher) dispatch() {
	defer close(d.drained)
	for job := range d.JobQueue {
		jobChannel := <-d.WorkerPool
		jobChannel <- job
	}
}

// SubmitJob queues job without blocking.
func (d *Dispatcher) SubmitJob(job Job) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.stopped {
		return ErrStopped
	}
	select {
	case d.JobQueue <- job:
		d.logger.WithField("job_id", job.ID()).Debug("Job submitted to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Available returns how many more jobs the queue accepts right now.
func (d *Dispatcher) Available() int {
	return cap(d.JobQueue) - len(d.JobQueue)
}

// Stop rejects new jobs, lets queued and in-flight jobs finish and waits for
// every worker to exit. It is safe to call more than once.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.JobQueue)
	running := d.running
	d.mu.Unlock()

	d.logger.Info("Dispatcher: Initiating shutdown")
	if running {
		<-d.drained
	}
	close(d.quit)
	d.wg.Wait()
	d.logger.Info("Dispatcher: Shutdown complete")
}
