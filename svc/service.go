package svc

// Service is a long-running background component owned by conf.Core
type Service interface {
	Start() error // bootstrapping error only
	Stop()
	// Done - shutdown error channel
	// Since consumed by conf.Core only, Do Not Close the channel in a method
	Done() <-chan error
	Name() string
}

type State int

const (
	StateREADY State = iota
	StateRUNNING
	StateSTOPPED
)

func (s State) String() string {
	switch s {
	case StateREADY:
		return "ready"
	case StateRUNNING:
		return "running"
	case StateSTOPPED:
		return "stopped"
	default:
		return "unknown"
	}
}
