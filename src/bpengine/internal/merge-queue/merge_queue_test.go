package mergequeue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"go.uber.org/atomic"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func counterValue(scope tally.TestScope, name string) int64 {
	var total int64
	for _, c := range scope.Snapshot().Counters() {
		if c.Name() == name {
			total += c.Value()
		}
	}
	return total
}

func TestQueueMergesWithinWindow(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	q := New("test", time.Hour, WithStats(scope))
	defer q.Close()

	var runs atomic.Int32
	for i := 0; i < 5; i++ {
		assert.True(t, q.Queue("doc", func(context.Context) { runs.Inc() }))
	}
	assert.Equal(t, 1, q.Pending())

	require.NoError(t, q.Flush(context.Background()))
	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, int64(5), counterValue(scope, "queued"))
	assert.Equal(t, int64(4), counterValue(scope, "merged"))
	assert.Equal(t, int64(1), counterValue(scope, "executed"))
}

func TestQueueLastTaskWins(t *testing.T) {
	q := New("test", time.Hour)
	defer q.Close()

	var got []string
	q.Queue("doc", func(context.Context) { got = append(got, "first") })
	q.Queue("doc", func(context.Context) { got = append(got, "second") })
	require.NoError(t, q.Flush(context.Background()))

	assert.Equal(t, []string{"second"}, got)
}

func TestQueueWaitsForWindow(t *testing.T) {
	q := New("test", 50*time.Millisecond)
	defer q.Close()

	ran := make(chan time.Time, 1)
	queued := time.Now()
	q.Queue("doc", func(context.Context) { ran <- time.Now() })

	select {
	case at := <-ran:
		assert.GreaterOrEqual(t, at.Sub(queued), 50*time.Millisecond)
	case <-time.After(5 * time.Second):
		t.Fatal("task did not run")
	}
}

func TestQueueNowSkipsWindow(t *testing.T) {
	q := New("test", time.Hour)
	defer q.Close()

	var runs atomic.Int32
	q.Queue("other", func(context.Context) { t.Error("windowed task must not run") })
	done := q.QueueNow("doc", func(context.Context) { runs.Inc() })

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("task did not run")
	}
	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, 1, q.Pending())
	q.Cancel("other")
	assert.Equal(t, 0, q.Pending())
}

func TestQueueNowPromotesPendingTask(t *testing.T) {
	q := New("test", time.Hour)
	defer q.Close()

	var got []string
	q.Queue("doc", func(context.Context) { got = append(got, "windowed") })
	<-q.QueueNow("doc", func(context.Context) { got = append(got, "now") })

	assert.Equal(t, []string{"now"}, got)
	assert.Equal(t, 0, q.Pending())
}

func TestQueueKeepsNowTaskDue(t *testing.T) {
	q := New("test", time.Hour)
	defer q.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	q.QueueNow("busy", func(context.Context) {
		close(started)
		<-release
	})
	<-started

	var got []string
	done := q.QueueNow("doc", func(context.Context) { got = append(got, "now") })
	q.Queue("doc", func(context.Context) { got = append(got, "windowed") })
	close(release)

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("windowed request delayed the immediate one")
	}
	assert.Equal(t, []string{"windowed"}, got)
	assert.Equal(t, 0, q.Pending())
}

func TestFlushNotDelayedByLaterQueue(t *testing.T) {
	q := New("test", time.Hour)
	defer q.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	q.QueueNow("busy", func(context.Context) {
		close(started)
		<-release
	})
	<-started

	q.Queue("doc", func(context.Context) {})
	flushed := make(chan error, 1)
	go func() { flushed <- q.Flush(context.Background()) }()
	require.Eventually(t, func() bool {
		q.mu.Lock()
		defer q.mu.Unlock()
		return q.pending["doc"].urgent
	}, 5*time.Second, time.Millisecond)

	q.Queue("doc", func(context.Context) {})
	close(release)

	select {
	case err := <-flushed:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("windowed request delayed the flush")
	}
}

func TestQueueRunsOneTaskAtATime(t *testing.T) {
	q := New("test", time.Millisecond)
	defer q.Close()

	var (
		inFlight atomic.Int32
		maxSeen  atomic.Int32
		wg       sync.WaitGroup
	)
	keys := []string{"a", "b", "c", "d", "e", "f"}
	wg.Add(len(keys))
	for _, key := range keys {
		q.Queue(key, func(context.Context) {
			defer wg.Done()
			n := inFlight.Inc()
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(time.Millisecond)
			inFlight.Dec()
		})
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxSeen.Load())
}

func TestQueueRecoversFromPanic(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	scope := tally.NewTestScope("", nil)
	q := New("test", time.Hour, WithLogger(zap.New(core).Sugar()), WithStats(scope))
	defer q.Close()

	<-q.QueueNow("bad", func(context.Context) { panic("boom") })

	var ran atomic.Bool
	<-q.QueueNow("good", func(context.Context) { ran.Store(true) })

	assert.True(t, ran.Load())
	require.Equal(t, 1, logs.FilterMessage("queued task panicked").Len())
	assert.Equal(t, int64(1), counterValue(scope, "panics"))
}

func TestQueueClose(t *testing.T) {
	q := New("test", time.Hour)

	q.Queue("windowed", func(context.Context) { t.Error("dropped task must not run") })

	started := make(chan struct{})
	var cancelled atomic.Bool
	q.QueueNow("running", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		cancelled.Store(true)
	})
	<-started

	q.Close()
	assert.True(t, cancelled.Load())
	assert.False(t, q.Queue("late", func(context.Context) {}))

	select {
	case <-q.QueueNow("late", func(context.Context) {}):
	default:
		t.Fatal("QueueNow after Close must return a closed channel")
	}

	// Idempotent.
	q.Close()
}

func TestFlushHonoursContext(t *testing.T) {
	q := New("test", time.Hour)
	defer q.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	q.QueueNow("slow", func(context.Context) {
		close(started)
		<-release
	})
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Flush(ctx), context.DeadlineExceeded)

	close(release)
	assert.NoError(t, q.Flush(context.Background()))
}
