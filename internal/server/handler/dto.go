package handler

import (
	"reloadtrigger/internal/common"
	"reloadtrigger/internal/execution"
	"reloadtrigger/internal/panel"
	"reloadtrigger/pkg/api"
)

func toPanelInfo(p common.Properties) api.PanelInfo {
	return api.PanelInfo{
		TaskIDs:     p.TaskIDs(),
		ProxyPrefix: p.ProxyPrefix,
		StartLabel:  p.StartButtonLabel(),
		CheckLabel:  p.CheckButtonLabel(),
	}
}

func toStartResult(out panel.StartOutcome) api.StartResult {
	return api.StartResult{
		TaskID:         out.TaskID,
		State:          out.State.String(),
		HTTPStatus:     out.StatusCode,
		HTTPStatusText: out.StatusText,
		Body:           out.Body,
	}
}

func toStatusReport(report panel.Report) api.StatusReport {
	tasks := make([]api.TaskStatus, 0, len(report.Items))
	for _, item := range report.Items {
		if !item.Valid {
			tasks = append(tasks, api.TaskStatus{TaskID: item.TaskID, Result: api.ResultInvalidID})
			continue
		}
		tasks = append(tasks, toTaskStatus(item.TaskID, *item.Outcome))
	}
	return api.StatusReport{Tasks: tasks}
}

func toTaskStatus(id string, out execution.Outcome) api.TaskStatus {
	s := api.TaskStatus{TaskID: id, TaskName: out.TaskName}
	switch out.Kind {
	case execution.KindError:
		s.Result = api.ResultError
		s.HTTPStatus = out.HTTPStatus
		s.HTTPStatusText = out.HTTPStatusText
		s.Body = out.Body
	case execution.KindEmpty:
		s.Result = api.ResultEmpty
	default:
		res := out.Execution
		s.Result = api.ResultExecution
		s.StatusCode = res.StatusCode
		s.StatusText = res.StatusText
		s.StartTime = res.StartTime
		s.StopTime = res.StopTime
		s.IsRunning = res.IsRunning
		s.Duration = res.Duration
	}
	return s
}
