package metrics

import (
	"strconv"

	"github.com/joeydtaylor/tramp/pkg/core"
)

// DispatchObserver records core dispatcher outcomes.
type DispatchObserver struct{}

var _ core.Observer = DispatchObserver{}

func NewDispatchObserver() DispatchObserver { return DispatchObserver{} }

func (DispatchObserver) ObserveDispatch(method, _ string, outcome core.Outcome, status int, seconds float64) {
	dispatchOutcomes.WithLabelValues(string(outcome), strconv.Itoa(status), methodLabel(method)).Inc()
	dispatchSeconds.WithLabelValues(string(outcome)).Observe(seconds)
}
