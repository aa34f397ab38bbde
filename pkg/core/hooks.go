package core

// Hook runs before or after the matched handler. Returning nil continues
// the chain. A non-nil response from a before-request hook is emitted as-is
// and nothing after it runs; from an after-request hook it replaces the
// outgoing response.
type Hook func(req *Request) *Response

// Outcome classifies how a request left the dispatcher.
type Outcome string

const (
	OutcomeOK               Outcome = "ok"
	OutcomeShortCircuit     Outcome = "short_circuit"
	OutcomeNotFound         Outcome = "not_found"
	OutcomeMethodNotAllowed Outcome = "method_not_allowed"
	OutcomeHandlerError     Outcome = "handler_error"
)

// Observer is notified once per dispatched request.
type Observer interface {
	ObserveDispatch(method, path string, outcome Outcome, status int, seconds float64)
}

type nopObserver struct{}

func (nopObserver) ObserveDispatch(string, string, Outcome, int, float64) {}
