package pipeline

import "fmt"

// State is a stage of one run. Runs only move forward.
type State string

const (
	StateReceived     State = "received"
	StateDownloading  State = "downloading"
	StateDownloaded   State = "downloaded"
	StateTranscoding  State = "transcoding"
	StateTranscoded   State = "transcoded"
	StateTranscribing State = "transcribing"
	StateTranscribed  State = "transcribed"
	StateSummarizing  State = "summarizing"
	StateSummarized   State = "summarized"
	StatePosting      State = "posting"
	StateCleanup      State = "cleanup"
	StateDone         State = "done"
)

// StageError records the stage a run stopped at
type StageError struct {
	Stage State
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("processing failed at %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
