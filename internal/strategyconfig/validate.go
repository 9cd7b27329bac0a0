package strategyconfig

import (
	"fmt"
	"time"

	"github.com/chenglinzhou/ashare-rotation/internal/indicator"
	"github.com/chenglinzhou/ashare-rotation/internal/signal"
)

// ValidationError is a fatal configuration problem; the run aborts before
// simulation starts.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints on a task.
func Validate(t *Task) error {
	if len(t.Symbols) == 0 {
		return ValidationError{"symbols", "required"}
	}

	if t.StartDate != "" {
		if _, err := time.Parse("2006-01-02", t.StartDate); err != nil {
			return ValidationError{"start_date", err.Error()}
		}
	}
	if t.EndDate != "" {
		if _, err := time.Parse("2006-01-02", t.EndDate); err != nil {
			return ValidationError{"end_date", err.Error()}
		}
	}

	if t.InitialCash <= 0 {
		return ValidationError{"initial_cash", "must be > 0"}
	}
	if t.LotSize <= 0 {
		return ValidationError{"lot_size", "must be > 0"}
	}
	if t.TopK < 0 || t.DropN < 0 {
		return ValidationError{"top_k/drop_n", "must be >= 0"}
	}

	switch t.WeightScheme {
	case WeightEqual, WeightRiskParity:
	case WeightSpecified:
		if len(t.WeightFixed) == 0 {
			return ValidationError{"weight_fixed", "required for weight_scheme: specified"}
		}
		total := 0.0
		for _, w := range t.WeightFixed {
			if w < 0 {
				return ValidationError{"weight_fixed", "weights must be >= 0"}
			}
			total += w
		}
		if total > 1 {
			return ValidationError{"weight_fixed", fmt.Sprintf("weights sum to %.4f, must be <= 1", total)}
		}
	default:
		return ValidationError{"weight_scheme", fmt.Sprintf("unknown scheme %q", t.WeightScheme)}
	}

	switch t.CommissionScheme {
	case "v1", "v2", "zero", "flat":
	default:
		return ValidationError{"commission_scheme", fmt.Sprintf("unknown scheme %q", t.CommissionScheme)}
	}

	switch t.Cadence {
	case CadenceDaily, CadenceWeekly, CadenceMonthly:
	case CadenceEveryN:
		if t.CadenceDays <= 0 {
			return ValidationError{"cadence_days", "must be > 0 for every_n_days"}
		}
	default:
		return ValidationError{"cadence", fmt.Sprintf("unknown cadence %q", t.Cadence)}
	}

	for i, spec := range t.Indicators {
		if spec.Name == "" {
			return ValidationError{fmt.Sprintf("indicators[%d].name", i), "required"}
		}
		switch spec.Kind {
		case indicator.KindROC, indicator.KindMA, indicator.KindRef, indicator.KindTrendScore:
		default:
			return ValidationError{fmt.Sprintf("indicators[%d].kind", i), fmt.Sprintf("unknown kind %q", spec.Kind)}
		}
		if spec.Window <= 0 {
			return ValidationError{fmt.Sprintf("indicators[%d].window", i), "must be > 0"}
		}
	}

	for i, rule := range append(append([]signal.Rule{}, t.BuyRules...), t.SellRules...) {
		if rule.Field == "" {
			return ValidationError{fmt.Sprintf("rules[%d].field", i), "required"}
		}
		switch rule.Op {
		case signal.OpGT, signal.OpGE, signal.OpLT, signal.OpLE:
		default:
			return ValidationError{fmt.Sprintf("rules[%d].op", i), fmt.Sprintf("unknown op %q", rule.Op)}
		}
	}

	return nil
}
