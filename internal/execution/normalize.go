// Package execution turns the control plane's task records into a normalized
// execution status.
package execution

import (
	"time"

	"reloadtrigger/internal/client"
	"reloadtrigger/internal/common"
	"reloadtrigger/internal/display"

	"github.com/tidwall/gjson"
)

type Kind int

const (
	KindExecution Kind = iota
	KindEmpty
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindExecution:
		return "execution"
	case KindEmpty:
		return "empty"
	case KindError:
		return "error"
	}
	return "unknown"
}

// ExecutionResult is the normalized last execution of a task. It is built
// for one render and never stored.
type ExecutionResult struct {
	TaskName   string
	StatusCode *int
	StatusText string
	StartTime  string // raw, empty when absent
	StopTime   string // raw, empty when absent
	IsRunning  bool
	Duration   string
}

// Outcome is one of three shapes, selected by Kind. Execution is set for
// KindExecution; the HTTP fields are set for KindError.
type Outcome struct {
	Kind           Kind
	TaskName       string
	Execution      *ExecutionResult
	HTTPStatus     int
	HTTPStatusText string
	Body           string
}

var ErrParse = common.NewErrNo(common.ParseFailed)

type Option func(*Normalizer)

// WithClock replaces time.Now, used for the elapsed time of running tasks.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

type Normalizer struct {
	now func() time.Time
}

func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize never fails: every malformed input degrades to one of the three
// outcome shapes.
func (n *Normalizer) Normalize(resp *client.Response, fallbackName string) Outcome {
	if !resp.OK() {
		out := Outcome{Kind: KindError, TaskName: fallbackName}
		if resp != nil {
			out.HTTPStatus = resp.StatusCode
			out.HTTPStatusText = resp.StatusText
			out.Body = resp.Body
		}
		return out
	}

	rec, err := parseRecord(resp.Body)
	if err != nil {
		return Outcome{Kind: KindEmpty, TaskName: fallbackName}
	}

	name := fallbackName
	if v := nameField.str(rec); v != "" {
		name = v
	}
	last, ok := lastExecutionField.lookupObject(rec)
	if !ok {
		return Outcome{Kind: KindEmpty, TaskName: name}
	}
	res := n.fromRecord(name, last)
	return Outcome{Kind: KindExecution, TaskName: name, Execution: &res}
}

func parseRecord(body string) (gjson.Result, error) {
	if !gjson.Valid(body) {
		return gjson.Result{}, ErrParse
	}
	rec := gjson.Parse(body)
	if !rec.IsObject() {
		return gjson.Result{}, ErrParse
	}
	return rec, nil
}

func (n *Normalizer) fromRecord(name string, last gjson.Result) ExecutionResult {
	code := statusCodeField.integer(last)
	start := startField.str(last)
	stop := stopField.str(last)
	text := resolveStatus(code, statusTextField.str(last))
	running := isRunning(code, start, stop, text)

	return ExecutionResult{
		TaskName:   name,
		StatusCode: code,
		StatusText: text,
		StartTime:  start,
		StopTime:   stop,
		IsRunning:  running,
		Duration:   n.duration(start, stop, running),
	}
}

func (n *Normalizer) duration(start, stop string, running bool) string {
	if start == "" {
		return display.Unknown
	}
	from, err := display.ParseTimestamp(start)
	if err != nil {
		return display.Unknown
	}
	switch {
	case stop != "":
		to, err := display.ParseTimestamp(stop)
		if err != nil {
			return display.Unknown
		}
		return display.FormatDuration(to.Sub(from).Milliseconds())
	case running:
		return display.FormatDuration(n.now().Sub(from).Milliseconds())
	}
	return display.Unknown
}
