package maintenance

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name string
	runs atomic.Int32
}

func (j *countingJob) Name() string { return j.name }
func (j *countingJob) Run(ctx context.Context) error {
	j.runs.Add(1)
	return nil
}

func TestSchedulerRunsJobOnInterval(t *testing.T) {
	job := &countingJob{name: "counter"}
	s := NewScheduler(discardLogger())
	s.AddJob(job, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)
	defer s.Stop()

	require.Eventually(t, func() bool {
		return job.runs.Load() >= 2
	}, time.Second, 5*time.Millisecond)
}

func TestSchedulerStopHaltsFurtherRuns(t *testing.T) {
	job := &countingJob{name: "counter"}
	s := NewScheduler(discardLogger())
	s.AddJob(job, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.Start(ctx)
	require.Eventually(t, func() bool { return job.runs.Load() >= 1 }, time.Second, 5*time.Millisecond)

	s.Stop()
	afterStop := job.runs.Load()
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, afterStop, job.runs.Load(), "no further runs should occur after Stop")
}

type erroringJob struct {
	name string
}

func (j *erroringJob) Name() string                  { return j.name }
func (j *erroringJob) Run(ctx context.Context) error { return context.DeadlineExceeded }

func TestSchedulerSurvivesJobError(t *testing.T) {
	job := &erroringJob{name: "always-fails"}
	s := NewScheduler(discardLogger())
	s.AddJob(job, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	s.Start(ctx)
	defer s.Stop()
	<-ctx.Done()
}
