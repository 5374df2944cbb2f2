package tutor

import "fmt"

// Stage is a step of turn processing.
type Stage string

const (
	StageValidating   Stage = "validating"
	StageTranscribing Stage = "transcribing"
	StageRequesting   Stage = "requesting"
	StageParsing      Stage = "parsing"
	StageExtracting   Stage = "extracting"
	StagePersisting   Stage = "persisting"
	StageResponding   Stage = "responding"
)

// TurnError is returned when a turn aborts. Err carries the domain sentinel.
type TurnError struct {
	Stage Stage
	Err   error
}

func (e *TurnError) Error() string {
	return fmt.Sprintf("tutor %s: %v", e.Stage, e.Err)
}

func (e *TurnError) Unwrap() error { return e.Err }

func fail(stage Stage, err error) error {
	return &TurnError{Stage: stage, Err: err}
}
