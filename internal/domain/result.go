package domain

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Outcome int

const (
	Outcome_Undefined Outcome = iota
	Outcome_Success
	Outcome_Failed
	Outcome_Invalid
	Outcome_Error
)

func (o Outcome) String() string {
	switch o {
	case Outcome_Success:
		return "Success"
	case Outcome_Failed:
		return "Failed"
	case Outcome_Invalid:
		return "Invalid"
	case Outcome_Error:
		return "Error"
	}
	return "Undefined"
}

// Result is the outcome of one simulation run.
type Result struct {
	Start    MonthYear `json:"start"`
	Strategy Strategy  `json:"strategy"`
	Outcome  Outcome   `json:"outcome"`

	NetWorth      decimal.Decimal `json:"netWorth"`
	Contributions decimal.Decimal `json:"contributions"`
	NetGain       decimal.Decimal `json:"netGain"`
	Months        int             `json:"months"`

	SecureMonths int `json:"secureMonths"`
	// nil when the run was never financially secure
	FirstSecure *MonthYear `json:"firstSecure,omitempty"`

	AverageMortgageRate   decimal.Decimal `json:"averageMortgageRate"`
	EffectiveMortgageRate decimal.Decimal `json:"effectiveMortgageRate"`

	FailedAt *MonthYear `json:"failedAt,omitempty"`
	Status   string     `json:"status,omitempty"`
	Error    string     `json:"error,omitempty"`
}

// Results holds one strategy's runs keyed by start month. Not safe for
// concurrent use.
type Results struct {
	SweepID  uuid.UUID
	Strategy Strategy
	Start    MonthYear
	End      MonthYear

	byStart map[MonthYear]Result
}

func NewResults(sweepID uuid.UUID, strategy Strategy, start, end MonthYear) *Results {
	return &Results{
		SweepID:  sweepID,
		Strategy: strategy,
		Start:    start,
		End:      end,
		byStart:  map[MonthYear]Result{},
	}
}

func (r *Results) Add(result Result) {
	r.byStart[result.Start] = result
}

func (r Results) Get(start MonthYear) (Result, bool) {
	result, ok := r.byStart[start]
	return result, ok
}

func (r Results) Len() int {
	return len(r.byStart)
}

// Items returns every result ordered by start month.
func (r Results) Items() []Result {
	out := make([]Result, 0, len(r.byStart))
	for _, result := range r.byStart {
		out = append(out, result)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

func (r Results) Count(outcome Outcome) int {
	n := 0
	for _, result := range r.byStart {
		if result.Outcome == outcome {
			n++
		}
	}
	return n
}
