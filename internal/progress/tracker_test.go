package progress

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTrackerCountsConcurrently(t *testing.T) {
	t.Parallel()
	tr := NewTracker("test-phase", 100, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				tr.Failure("id", errors.New("boom"))
			} else {
				tr.Success()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(25), tr.Failed())
}

func TestTrackerLogsFailures(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.WarnLevel)
	tr := NewTracker("bout-pages", 3, zap.New(core))

	tr.Success()
	tr.Failure("bout42", errors.New("status 404"))
	tr.Summary()

	entries := logs.FilterMessage("task failed").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "bout-pages", fields["phase"])
		assert.Equal(t, "bout42", fields["id"])
	}
}

func TestTrackerSummaryFields(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.InfoLevel)
	tr := NewTracker("listing", 2, zap.New(core))

	tr.Success()
	tr.Success()
	tr.Summary()

	entries := logs.FilterMessage("phase complete").All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, int64(2), fields["total"])
		assert.Equal(t, int64(2), fields["succeeded"])
		assert.Equal(t, int64(0), fields["failed"])
	}
}

func TestTrackerNilLogger(t *testing.T) {
	t.Parallel()
	tr := NewTracker("quiet", 1, nil)
	tr.Success()
	tr.Summary()
	assert.Equal(t, int64(0), tr.Failed())
}
