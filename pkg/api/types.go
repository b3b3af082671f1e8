package api

const (
	ResultExecution = "execution"
	ResultEmpty     = "empty"
	ResultError     = "error"
	ResultInvalidID = "invalid_id"
)

// PanelInfo describes the mounted panel.
type PanelInfo struct {
	TaskIDs     []string `json:"task_ids"`
	ProxyPrefix string   `json:"proxy_prefix"`
	StartLabel  string   `json:"start_label"`
	CheckLabel  string   `json:"check_label"`
}
