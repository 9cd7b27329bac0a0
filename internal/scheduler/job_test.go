package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func result(success bool) JobResult {
	return JobResult{
		JobName:   "test",
		StartTime: time.Now(),
		Success:   success,
	}
}

func TestJobHistoryAddResult(t *testing.T) {
	h := &JobHistory{}

	h.AddResult(result(true))
	h.AddResult(result(false))
	assert.Len(t, h.Results, 2)
}

func TestJobHistoryCapped(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(result(true))
	}
	assert.Len(t, h.Results, historyLimit)
}

func TestJobHistoryLatestResults(t *testing.T) {
	h := &JobHistory{}
	h.AddResult(result(true))
	h.AddResult(result(false))
	h.AddResult(result(true))

	latest := h.LatestResults(2)
	assert.Len(t, latest, 2)
	assert.False(t, latest[0].Success)
	assert.True(t, latest[1].Success)

	assert.Len(t, h.LatestResults(10), 3)
	assert.Empty(t, (&JobHistory{}).LatestResults(5))
}

func TestJobHistorySuccessRate(t *testing.T) {
	h := &JobHistory{}
	assert.Zero(t, h.SuccessRate())

	h.AddResult(result(true))
	h.AddResult(result(true))
	h.AddResult(result(false))
	h.AddResult(result(false))
	assert.InDelta(t, 0.5, h.SuccessRate(), 1e-9)
}
