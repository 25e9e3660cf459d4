package formtemplater

import "fmt"

// Stage is a step of the authorization flow. The flow is linear, every step
// either advances to the next stage or ends in StageFailed.
type Stage int

const (
	StageStart Stage = iota
	StageAuthURLBuilt
	StageAwaitingUserPaste
	StageCodeReceived
	StageTokenFetched
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageAuthURLBuilt:
		return "auth-url-built"
	case StageAwaitingUserPaste:
		return "awaiting-user-paste"
	case StageCodeReceived:
		return "code-received"
	case StageTokenFetched:
		return "token-fetched"
	case StageFailed:
		return "failed"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// StageError reports the stage in which the authorization flow failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%v (failed at stage %v)", e.Err, e.Stage)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
