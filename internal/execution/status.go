package execution

import (
	"fmt"
	"regexp"
)

// Execution status codes reported by the control plane.
const (
	StatusUnknown   = 0
	StatusTriggered = 1
	StatusStarted   = 2
	StatusQueued    = 3
	StatusAborted   = 6
	StatusSucceeded = 7
	StatusFailed    = 8
	StatusSkipped   = 9
	StatusRetrying  = 10
)

// NoStatus is shown when the record has neither a code nor a text.
const NoStatus = "-"

var statusText = map[int]string{
	StatusUnknown:   "Unknown",
	StatusTriggered: "Triggered",
	StatusStarted:   "Started/Running",
	StatusQueued:    "Queued",
	StatusAborted:   "Aborted",
	StatusSucceeded: "Succeeded",
	StatusFailed:    "Failed",
	StatusSkipped:   "Skipped",
	StatusRetrying:  "Retrying",
}

var runningWord = regexp.MustCompile(`(?i)\brunning\b`)

// ResolveStatusText maps a status code to its label, "Status #<code>" for
// codes outside the table.
func ResolveStatusText(code int) string {
	if text, ok := statusText[code]; ok {
		return text
	}
	return fmt.Sprintf("Status #%d", code)
}

// resolveStatus prefers an explicit text over the code label.
func resolveStatus(code *int, text string) string {
	switch {
	case text != "":
		return text
	case code != nil:
		return ResolveStatusText(*code)
	default:
		return NoStatus
	}
}

// isRunning ORs three signals since control-plane versions disagree on how a
// running execution is represented.
func isRunning(code *int, start, stop, text string) bool {
	if code != nil && *code == StatusStarted {
		return true
	}
	if start != "" && stop == "" {
		return true
	}
	return runningWord.MatchString(text)
}
