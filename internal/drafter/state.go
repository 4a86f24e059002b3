package drafter

import "github.com/ariel-frischer/autochangelog/internal/artifacts"

// State is the position of a run in the update state machine.
type State string

const (
	StateNotStarted     State = "NOT_STARTED"
	StateNoCommits      State = "NO_COMMITS"
	StateAnalyzed       State = "ANALYZED"
	StateRequested      State = "REQUESTED"
	StateNoUpdateNeeded State = "NO_UPDATE_NEEDED"
	StateUpdated        State = "UPDATED"
	StateError          State = "ERROR"
)

// Status maps a final state to the recorded run status. States reached
// mid-run have no status.
func (s State) Status() artifacts.Status {
	switch s {
	case StateNoCommits, StateNoUpdateNeeded:
		return artifacts.StatusNoUpdate
	case StateUpdated:
		return artifacts.StatusUpdated
	case StateError:
		return artifacts.StatusError
	}
	return ""
}
