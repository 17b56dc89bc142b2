package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ResolveSongs Phase = iota
	AssemblePlaylist
	WriteArtifact
	WarmCovers
)

func (p Phase) String() string {
	switch p {
	case ResolveSongs:
		return "resolve_songs"
	case AssemblePlaylist:
		return "assemble_playlist"
	case WriteArtifact:
		return "write_artifact"
	case WarmCovers:
		return "warm_covers"
	default:
		return ""
	}
}

func resolvingUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving %s...", step, total, id),
	}
}

func resolvedUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, name),
	}
}

func resolveFailedUpdate(step, total int, id string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ResolveSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, id, err),
	}
}

func assemblingUpdate(title string, count int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AssemblePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Assembling %q (%d songs)...", title, count),
	}
}

func warmingCoverUpdate(step, total int, hash string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WarmCovers,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching cover for %s...", step, total, hash),
	}
}
