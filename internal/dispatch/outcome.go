package dispatch

// Status distinguishes a command that ran from one that could not be started.
type Status uint8

const (
	Success Status = iota
	Failure
)

func (s Status) String() string {
	if s == Success {
		return "success"
	}
	return "failure"
}

// Outcome is the transient result of one run.
type Outcome struct {
	Status Status
	// Err is the spawn error for a Failure.
	Err error
}
