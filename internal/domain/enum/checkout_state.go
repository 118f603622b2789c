package enum

import "encoding/json"

// CheckoutState tracks where a session's checkout sits between "nothing
// started" and a finished (or failed) submission.
type CheckoutState int

const (
	CheckoutStateIdle            CheckoutState = 0
	CheckoutStateAwaitingPayment CheckoutState = 1
	CheckoutStateSubmitting      CheckoutState = 2
	CheckoutStateSucceeded       CheckoutState = 3
	CheckoutStateFailed          CheckoutState = 4
)

func (s CheckoutState) String() string {
	names := [...]string{"Idle", "AwaitingPayment", "Submitting", "Succeeded", "Failed"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Idle"
	}
	return names[s]
}

func (s CheckoutState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
