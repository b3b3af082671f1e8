package api

// TaskStatus is the normalized last execution of one configured task.
type TaskStatus struct {
	TaskID         string `json:"task_id"`
	Result         string `json:"result"` // execution, empty, error or invalid_id
	TaskName       string `json:"task_name,omitempty"`
	StatusCode     *int   `json:"status_code,omitempty"`
	StatusText     string `json:"status_text,omitempty"`
	StartTime      string `json:"start_time,omitempty"` // as reported by the control plane
	StopTime       string `json:"stop_time,omitempty"`
	IsRunning      bool   `json:"is_running"`
	Duration       string `json:"duration,omitempty"`
	HTTPStatus     int    `json:"http_status,omitempty"`
	HTTPStatusText string `json:"http_status_text,omitempty"`
	Body           string `json:"body,omitempty"` // raw body of a failed read
}

type StatusReport struct {
	Tasks []TaskStatus `json:"tasks"`
}

type StartResult struct {
	TaskID         string `json:"task_id"`
	State          string `json:"state"` // succeeded or failed
	HTTPStatus     int    `json:"http_status"`
	HTTPStatusText string `json:"http_status_text"`
	Body           string `json:"body,omitempty"`
}
