package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type testJob struct {
	id      string
	err     error
	started chan struct{}
	release chan struct{}
	ran     *int32
}

func (j *testJob) ID() string   { return j.id }
func (j *testJob) Type() string { return "test" }

func (j *testJob) Execute(ctx context.Context) (interface{}, error) {
	if j.started != nil {
		close(j.started)
	}
	if j.release != nil {
		<-j.release
	}
	if j.ran != nil {
		atomic.AddInt32(j.ran, 1)
	}
	if j.err != nil {
		return nil, j.err
	}
	return map[string]string{"job": j.id}, nil
}

type recorder struct {
	mu        sync.Mutex
	completed map[string]interface{}
	failed    map[string]string
}

func newRecorder() *recorder {
	return &recorder{completed: map[string]interface{}{}, failed: map[string]string{}}
}

func (r *recorder) Complete(ctx context.Context, id string, output interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed[id] = output
	return nil
}

func (r *recorder) Fail(ctx context.Context, id string, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed[id] = msg
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDispatcher_RunsAndRecords(t *testing.T) {
	rec := newRecorder()
	d := NewDispatcher(3, 10, rec, quietLogger())
	d.Run(context.Background())

	var ran int32
	for _, id := range []string{"a", "b", "c", "d"} {
		require.NoError(t, d.SubmitJob(&testJob{id: id, ran: &ran}))
	}
	require.NoError(t, d.SubmitJob(&testJob{id: "bad", err: errors.New("ffmpeg failed")}))
	d.Stop()

	assert.Equal(t, int32(4), atomic.LoadInt32(&ran))
	assert.Len(t, rec.completed, 4)
	assert.Equal(t, map[string]string{"job": "a"}, rec.completed["a"])
	assert.Equal(t, "ffmpeg failed", rec.failed["bad"])
}

func TestDispatcher_QueueFull(t *testing.T) {
	d := NewDispatcher(1, 1, nil, quietLogger())
	d.Run(context.Background())

	blocker := &testJob{id: "blocker", started: make(chan struct{}), release: make(chan struct{})}
	require.NoError(t, d.SubmitJob(blocker))
	select {
	case <-blocker.started:
	case <-time.After(5 * time.Second):
		t.Fatal("blocker never started")
	}

	require.NoError(t, d.SubmitJob(&testJob{id: "queued"}))
	assert.Equal(t, 0, d.Available())
	assert.ErrorIs(t, d.SubmitJob(&testJob{id: "overflow"}), ErrQueueFull)

	close(blocker.release)
	d.Stop()
}

func TestDispatcher_StopRejectsAndIsIdempotent(t *testing.T) {
	d := NewDispatcher(2, 4, nil, quietLogger())
	d.Run(context.Background())
	d.Stop()
	d.Stop()
	assert.ErrorIs(t, d.SubmitJob(&testJob{id: "late"}), ErrStopped)
}

func TestDispatcher_StopWithoutRun(t *testing.T) {
	d := NewDispatcher(2, 4, nil, quietLogger())
	d.Stop()
	assert.ErrorIs(t, d.SubmitJob(&testJob{id: "late"}), ErrStopped)
}

func TestDispatcher_StopWaitsForInFlight(t *testing.T) {
	rec := newRecorder()
	d := NewDispatcher(1, 1, rec, quietLogger())
	d.Run(context.Background())

	job := &testJob{id: "slow", started: make(chan struct{}), release: make(chan struct{})}
	require.NoError(t, d.SubmitJob(job))
	<-job.started

	stopped := make(chan struct{})
	go func() {
		d.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while a job was still running")
	case <-time.After(50 * time.Millisecond):
	}
	close(job.release)
	<-stopped
	assert.Contains(t, rec.completed, "slow")
}
