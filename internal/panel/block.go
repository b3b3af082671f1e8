package panel

import (
	"fmt"

	"reloadtrigger/internal/common"
	"reloadtrigger/internal/display"
	"reloadtrigger/internal/execution"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	}
	return "info"
}

type Field struct {
	Label string
	Value string
}

// Block is one rendered message. Hosts decide how it looks.
type Block struct {
	Level  Level
	Title  string
	Fields []Field
	Text   string
}

const (
	MsgNoPreviousExecution = "No previous execution found."
	MsgConfigRequired      = "Set the primary task id in the panel properties to enable the buttons."
)

func configWarningBlock() Block {
	return Block{Level: LevelWarning, Title: "Configuration required", Text: MsgConfigRequired}
}

func networkErrorBlock(err error) Block {
	text := err.Error()
	if e := common.ConvertErr(err); e.Unwrap() != nil {
		text = e.Unwrap().Error()
	}
	return Block{Level: LevelError, Title: "Network error", Text: text}
}

func invalidTaskIDBlock(id string) Block {
	return Block{
		Level: LevelWarning,
		Title: "Invalid task id",
		Text:  fmt.Sprintf("%q is not a valid task id (expected a 36-character GUID).", id),
	}
}

func httpStatus(code int, text string) string {
	if text == "" {
		return fmt.Sprintf("%d", code)
	}
	return fmt.Sprintf("%d %s", code, text)
}

func outcomeBlock(out execution.Outcome, f *display.Formatter) Block {
	switch out.Kind {
	case execution.KindError:
		return Block{
			Level:  LevelError,
			Title:  "Could not read task " + out.TaskName,
			Fields: []Field{{"HTTP status", httpStatus(out.HTTPStatus, out.HTTPStatusText)}},
			Text:   out.Body,
		}
	case execution.KindEmpty:
		return Block{Level: LevelInfo, Title: out.TaskName, Text: MsgNoPreviousExecution}
	}

	res := out.Execution
	b := Block{
		Level: statusLevel(res),
		Title: res.TaskName,
		Fields: []Field{
			{"Task", res.TaskName},
			{"Status", res.StatusText},
			{"Started", f.FormatTimestamp(res.StartTime)},
		},
	}
	// a running execution has neither a completion time nor a final duration
	if !res.IsRunning {
		b.Fields = append(b.Fields,
			Field{"Completed", f.FormatTimestamp(res.StopTime)},
			Field{"Duration", res.Duration},
		)
	}
	return b
}

func statusLevel(res *execution.ExecutionResult) Level {
	if res.IsRunning || res.StatusCode == nil {
		return LevelInfo
	}
	switch *res.StatusCode {
	case execution.StatusSucceeded:
		return LevelSuccess
	case execution.StatusFailed, execution.StatusAborted:
		return LevelError
	}
	return LevelInfo
}
