// Package panel wires the two panel actions, starting the primary task and
// checking the last execution of the configured tasks, and writes their
// results to a View.
package panel

import (
	"context"
	"strings"

	"reloadtrigger/internal/client"
	"reloadtrigger/internal/common"
	"reloadtrigger/internal/display"
	"reloadtrigger/internal/execution"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// ControlPlane is the part of the request client the actions need.
type ControlPlane interface {
	StartTask(ctx context.Context, prefix, taskID string) (*client.Response, error)
	ReadTask(ctx context.Context, prefix, taskID string) (*client.Response, error)
}

// View has two disjoint regions: the log region written by Start and the
// status region written by Check. ShowWarning replaces the whole panel.
type View interface {
	ShowWarning(Block)
	ShowLog(Block)
	ShowStatus([]Block)
}

type Deps struct {
	API        ControlPlane
	Normalizer *execution.Normalizer
	Formatter  *display.Formatter
	View       View
	Logger     *zap.Logger
}

// Controller holds no mutable state: overlapping calls are independent and
// the one that finishes last owns its view region.
type Controller struct {
	props      common.Properties
	api        ControlPlane
	normalizer *execution.Normalizer
	formatter  *display.Formatter
	view       View
	logger     *zap.Logger
}

// Mount checks the properties of one render pass. Without a primary task id
// it shows the configuration warning and returns a ConfigMissing error; no
// controller is mounted then.
func Mount(props common.Properties, deps Deps) (*Controller, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if props.PrimaryTaskID() == "" {
		deps.Logger.Warn("panel not mounted, primary task id missing")
		deps.View.ShowWarning(configWarningBlock())
		return nil, common.NewErrNo(common.ConfigMissing)
	}
	if deps.Normalizer == nil {
		deps.Normalizer = execution.NewNormalizer()
	}
	if deps.Formatter == nil {
		deps.Formatter = display.NewFormatter(nil)
	}
	return &Controller{
		props:      props,
		api:        deps.API,
		normalizer: deps.Normalizer,
		formatter:  deps.Formatter,
		view:       deps.View,
		logger:     deps.Logger,
	}, nil
}

func (c *Controller) Properties() common.Properties {
	return c.props
}

type StartState int

const (
	StartIdle StartState = iota
	StartRequesting
	StartSucceeded
	StartFailed
	StartNetworkError
)

func (s StartState) String() string {
	switch s {
	case StartRequesting:
		return "requesting"
	case StartSucceeded:
		return "succeeded"
	case StartFailed:
		return "failed"
	case StartNetworkError:
		return "network_error"
	}
	return "idle"
}

type StartOutcome struct {
	State      StartState
	TaskID     string
	StatusCode int
	StatusText string
	Body       string
	Err        error
}

func (o StartOutcome) Block() Block {
	switch o.State {
	case StartSucceeded:
		return Block{Level: LevelSuccess, Title: "Task started", Fields: []Field{{"Task", o.TaskID}}}
	case StartNetworkError:
		return networkErrorBlock(o.Err)
	}
	return Block{
		Level:  LevelError,
		Title:  "Task start failed",
		Fields: []Field{{"Task", o.TaskID}, {"HTTP status", httpStatus(o.StatusCode, o.StatusText)}},
		Text:   o.Body,
	}
}

// Start asks the control plane to start the primary task and writes the
// result to the log region.
func (c *Controller) Start(ctx context.Context) StartOutcome {
	id := c.props.PrimaryTaskID()
	c.logger.Info("start flow", zap.String("task_id", id), zap.Stringer("state", StartRequesting))

	out := StartOutcome{TaskID: id}
	resp, err := c.api.StartTask(ctx, c.props.ProxyPrefix, id)
	switch {
	case err != nil:
		out.State = StartNetworkError
		out.Err = err
	default:
		out.StatusCode = resp.StatusCode
		out.StatusText = resp.StatusText
		out.Body = resp.Body
		out.State = StartSucceeded
		if !startAccepted(resp, id) {
			out.State = StartFailed
			out.Err = common.NewErrNo(common.RequestFailed)
		}
	}

	c.logger.Info("start flow", zap.String("task_id", id), zap.Stringer("state", out.State), zap.Int("status", out.StatusCode))
	c.view.ShowLog(out.Block())
	return out
}

// startAccepted treats 2xx as success, and also a body echoing the started
// id as {"value": "<id>"}.
func startAccepted(resp *client.Response, id string) bool {
	if resp.OK() {
		return true
	}
	if !gjson.Valid(resp.Body) {
		return false
	}
	v := gjson.Get(resp.Body, "value")
	return v.Type == gjson.String && strings.EqualFold(strings.TrimSpace(v.Str), id)
}

// Item is the check result of one task id. Outcome is nil and Err holds a
// TaskIDInvalid error when the id was rejected without a request.
type Item struct {
	TaskID  string
	Valid   bool
	Outcome *execution.Outcome
	Err     error
}

// Report is the combined check result. Err is set when a transport failure
// aborted the sequence; Items then holds only the ids checked before it.
type Report struct {
	Items []Item
	Err   error
}

// Blocks renders the report in input order, or a single network error block.
func (r Report) Blocks(f *display.Formatter) []Block {
	if r.Err != nil {
		return []Block{networkErrorBlock(r.Err)}
	}
	blocks := make([]Block, 0, len(r.Items))
	for _, item := range r.Items {
		if !item.Valid {
			blocks = append(blocks, invalidTaskIDBlock(item.TaskID))
			continue
		}
		blocks = append(blocks, outcomeBlock(*item.Outcome, f))
	}
	return blocks
}

// Check reads the last execution of the primary and, when configured, the
// second task, one after the other, and writes the report to the status
// region.
func (c *Controller) Check(ctx context.Context) Report {
	var report Report
	for _, id := range c.props.TaskIDs() {
		if !ValidTaskID(id) {
			c.logger.Warn("check flow, invalid task id", zap.String("task_id", id))
			report.Items = append(report.Items, Item{TaskID: id, Err: common.NewErrNo(common.TaskIDInvalid)})
			continue
		}

		resp, err := c.api.ReadTask(ctx, c.props.ProxyPrefix, id)
		if err != nil {
			c.logger.Error("check flow aborted", zap.String("task_id", id), zap.Error(err))
			report.Err = err
			break
		}
		out := c.normalizer.Normalize(resp, id)
		c.logger.Info("check flow", zap.String("task_id", id), zap.Stringer("result", out.Kind))
		report.Items = append(report.Items, Item{TaskID: id, Valid: true, Outcome: &out})
	}

	c.view.ShowStatus(report.Blocks(c.formatter))
	return report
}
