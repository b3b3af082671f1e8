package execution

import (
	"strings"

	"github.com/tidwall/gjson"
)

// field lists the candidate paths of one logical value, most preferred first.
type field []string

var (
	nameField          = field{"name"}
	lastExecutionField = field{
		"operational.lastExecutionResult",
		"operational.lastExecution",
		"lastExecutionResult",
		"lastExecution",
	}
	startField      = field{"executionStartTime", "startTime"}
	stopField       = field{"executionStopTime", "stopTime"}
	statusCodeField = field{"status"}
	statusTextField = field{"statusText"}
)

// lookup returns the first present candidate. null and blank strings count as
// absent.
func (f field) lookup(rec gjson.Result) (gjson.Result, bool) {
	for _, path := range f {
		if v := rec.Get(path); present(v) {
			return v, true
		}
	}
	return gjson.Result{}, false
}

// lookupObject is lookup restricted to JSON objects.
func (f field) lookupObject(rec gjson.Result) (gjson.Result, bool) {
	for _, path := range f {
		if v := rec.Get(path); v.IsObject() {
			return v, true
		}
	}
	return gjson.Result{}, false
}

func (f field) str(rec gjson.Result) string {
	v, ok := f.lookup(rec)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v.String())
}

func (f field) integer(rec gjson.Result) *int {
	v, ok := f.lookup(rec)
	if !ok || v.Type != gjson.Number {
		return nil
	}
	n := int(v.Int())
	return &n
}

func present(v gjson.Result) bool {
	if !v.Exists() {
		return false
	}
	switch v.Type {
	case gjson.Null:
		return false
	case gjson.String:
		return strings.TrimSpace(v.Str) != ""
	}
	return true
}
