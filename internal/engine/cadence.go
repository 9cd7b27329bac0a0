package engine

import (
	"fmt"
	"time"

	"github.com/chenglinzhou/ashare-rotation/internal/strategyconfig"
)

// Cadence decides which simulation dates are rebalancing dates. Each
// implementation is stateful and owned by a single run.
type Cadence interface {
	ShouldRun(date time.Time) bool
}

// CadenceByName builds the cadence for a task. Unknown names are
// configuration errors (validated earlier, double-checked here).
func CadenceByName(name string, n int) (Cadence, error) {
	switch name {
	case strategyconfig.CadenceDaily:
		return &runDaily{}, nil
	case strategyconfig.CadenceWeekly:
		return &runWeekly{}, nil
	case strategyconfig.CadenceMonthly:
		return &runMonthly{}, nil
	case strategyconfig.CadenceEveryN:
		if n <= 0 {
			return nil, fmt.Errorf("cadence every_n_days requires n > 0, got %d", n)
		}
		return &runEveryN{n: n}, nil
	default:
		return nil, fmt.Errorf("unknown cadence: %q", name)
	}
}

type runDaily struct{}

func (runDaily) ShouldRun(time.Time) bool { return true }

// runWeekly fires on the first trading day of every ISO week. The
// (year, week) pair handles year boundaries.
type runWeekly struct {
	lastYear int
	lastWeek int
	seen     bool
}

func (c *runWeekly) ShouldRun(date time.Time) bool {
	year, week := date.ISOWeek()
	if !c.seen || year != c.lastYear || week != c.lastWeek {
		c.seen = true
		c.lastYear = year
		c.lastWeek = week
		return true
	}
	return false
}

// runMonthly fires on the first trading day of every month.
type runMonthly struct {
	lastYear  int
	lastMonth time.Month
	seen      bool
}

func (c *runMonthly) ShouldRun(date time.Time) bool {
	if !c.seen || date.Year() != c.lastYear || date.Month() != c.lastMonth {
		c.seen = true
		c.lastYear = date.Year()
		c.lastMonth = date.Month()
		return true
	}
	return false
}

// runEveryN fires on the first date, then whenever n calendar days have
// elapsed since the last rebalance.
type runEveryN struct {
	n    int
	last time.Time
	seen bool
}

func (c *runEveryN) ShouldRun(date time.Time) bool {
	if !c.seen {
		c.seen = true
		c.last = date
		return true
	}
	if int(date.Sub(c.last).Hours()/24) >= c.n {
		c.last = date
		return true
	}
	return false
}
