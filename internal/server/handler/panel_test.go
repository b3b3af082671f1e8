package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"reloadtrigger/internal/client"
	"reloadtrigger/internal/common"
	"reloadtrigger/pkg/api"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeAPI struct {
	start    *client.Response
	read     map[string]*client.Response
	err      error
	requests int
}

func (f *fakeAPI) StartTask(context.Context, string, string) (*client.Response, error) {
	f.requests++
	return f.start, f.err
}

func (f *fakeAPI) ReadTask(_ context.Context, _ string, id string) (*client.Response, error) {
	f.requests++
	return f.read[id], f.err
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T, fake *fakeAPI, props common.Properties) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	load := func() (common.Config, error) {
		return common.Config{Timezone: "UTC", Properties: props}, nil
	}
	NewPanelHandler(fake, load, zaptest.NewLogger(t)).Register(r)
	return r
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && env.Code == common.SuccessCode {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func TestPage_Enabled(t *testing.T) {
	r := setupRouter(t, &fakeAPI{}, common.Properties{TaskID: uuid.NewString(), StartLabel: "Reload now"})

	w := do(r, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Reload now")
	assert.Contains(t, body, common.DefaultCheckLabel)
	assert.NotContains(t, body, "disabled")
	assert.NotContains(t, body, "Configuration required")
}

func TestPage_MissingTaskIDDisablesButtons(t *testing.T) {
	fake := &fakeAPI{}
	r := setupRouter(t, fake, common.Properties{})

	w := do(r, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Configuration required")
	assert.Contains(t, body, `id="start" disabled`)
	assert.Contains(t, body, `id="check" disabled`)
	assert.Zero(t, fake.requests)
}

func TestStartAction(t *testing.T) {
	r := setupRouter(t, &fakeAPI{start: &client.Response{StatusCode: 500, StatusText: "Internal Server Error", Body: "<b>boom</b>"}},
		common.Properties{TaskID: uuid.NewString()})

	w := do(r, http.MethodPost, "/actions/start")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Task start failed")
	assert.Contains(t, body, "500 Internal Server Error")
	assert.Contains(t, body, "&lt;b&gt;boom&lt;/b&gt;")
}

func TestCheckAction(t *testing.T) {
	id := uuid.NewString()
	fake := &fakeAPI{read: map[string]*client.Response{id: {StatusCode: 200,
		Body: `{"name":"Reload sales","operational":{"lastExecutionResult":{"status":8,"executionStartTime":"2024-01-01T10:00:00Z","executionStopTime":"2024-01-01T10:00:45Z"}}}`}}}
	r := setupRouter(t, fake, common.Properties{TaskID: id, SecondTaskID: "bad"})

	w := do(r, http.MethodPost, "/actions/check")

	body := w.Body.String()
	assert.Contains(t, body, `class="block error"`)
	assert.Contains(t, body, "Failed")
	assert.Contains(t, body, "0h 0m 45s")
	assert.Contains(t, body, "Invalid task id")
	assert.Equal(t, 1, fake.requests)
}

func TestCheckAction_MissingTaskID(t *testing.T) {
	r := setupRouter(t, &fakeAPI{}, common.Properties{})

	w := do(r, http.MethodPost, "/actions/check")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Configuration required")
}

func TestStatusAPI(t *testing.T) {
	id, second := uuid.NewString(), uuid.NewString()
	fake := &fakeAPI{read: map[string]*client.Response{
		id:     {StatusCode: 200, Body: `{"name":"a","operational":{"lastExecutionResult":{"status":2,"executionStartTime":"2024-01-01T10:00:00Z"}}}`},
		second: {StatusCode: 404, StatusText: "Not Found", Body: "missing"},
	}}
	r := setupRouter(t, fake, common.Properties{TaskID: id, SecondTaskID: second})

	var report api.StatusReport
	env := decode(t, do(r, http.MethodGet, "/api/status"), &report)

	require.Equal(t, common.SuccessCode, env.Code)
	require.Len(t, report.Tasks, 2)
	assert.Equal(t, api.ResultExecution, report.Tasks[0].Result)
	assert.True(t, report.Tasks[0].IsRunning)
	assert.Equal(t, "Started/Running", report.Tasks[0].StatusText)
	assert.Equal(t, api.ResultError, report.Tasks[1].Result)
	assert.Equal(t, 404, report.Tasks[1].HTTPStatus)
	assert.Equal(t, "missing", report.Tasks[1].Body)
}

func TestStatusAPI_NetworkError(t *testing.T) {
	fake := &fakeAPI{err: common.WrapErrNo(common.NetworkErr, errors.New("connection refused"), "GET")}
	r := setupRouter(t, fake, common.Properties{TaskID: uuid.NewString()})

	env := decode(t, do(r, http.MethodGet, "/api/status"), nil)

	assert.Equal(t, common.NetworkErr, env.Code)
}

func TestStartAPI(t *testing.T) {
	id := uuid.NewString()
	r := setupRouter(t, &fakeAPI{start: &client.Response{StatusCode: 201, StatusText: "Created", Body: `{"value":"` + id + `"}`}},
		common.Properties{TaskID: id})

	var res api.StartResult
	env := decode(t, do(r, http.MethodPost, "/api/start"), &res)

	require.Equal(t, common.SuccessCode, env.Code)
	assert.Equal(t, "succeeded", res.State)
	assert.Equal(t, id, res.TaskID)
}

func TestPanelInfoAPI_MissingTaskID(t *testing.T) {
	r := setupRouter(t, &fakeAPI{}, common.Properties{})

	env := decode(t, do(r, http.MethodGet, "/api/panel"), nil)

	assert.Equal(t, common.ConfigMissing, env.Code)
}
