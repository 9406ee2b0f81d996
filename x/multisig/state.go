package multisig

import "github.com/iov-one/vault/errors"

// State is a step of a single authorization attempt.
type State uint8

const (
	StateIdle State = iota
	// StateDigestBound means intent and nonce were combined into a digest.
	StateDigestBound
	StateVerifying
	// StateAuthorized means the quorum was reached and settlement may
	// begin.
	StateAuthorized
	// StateSettled is terminal. The nonce advanced and value was released.
	StateSettled
	// StateRejected is terminal. Nothing was written.
	StateRejected
)

var stateNames = [...]string{
	StateIdle:        "idle",
	StateDigestBound: "digest_bound",
	StateVerifying:   "verifying",
	StateAuthorized:  "authorized",
	StateSettled:     "settled",
	StateRejected:    "rejected",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Terminal returns true for states that end an attempt.
func (s State) Terminal() bool {
	return s == StateSettled || s == StateRejected
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(raw []byte) error {
	for i, name := range stateNames {
		if name == string(raw) {
			*s = State(i)
			return nil
		}
	}
	return errors.Wrapf(errors.ErrInput, "unknown state %q", raw)
}
