package client

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"testing"

	"reloadtrigger/internal/common"
	"reloadtrigger/internal/xrf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/h2non/gock.v1"
)

const (
	serverURL = "https://qlik.example.com"
	prefix    = "/hdr/qrs"
	taskID    = "0b4cc1a9-4a1e-4c4f-9d1a-1f0b8f7a6e21"
)

// newTestClient returns a client whose tokens are predictable: the returned
// generator, built from the same seed, yields the same key sequence.
func newTestClient(t *testing.T, opts Options) (*Client, *xrf.Generator) {
	t.Helper()
	opts.ServerURL = serverURL
	opts.Tokens = xrf.NewGenerator(rand.NewSource(99))
	opts.Logger = zaptest.NewLogger(t)
	c, err := New(opts)
	require.NoError(t, err)
	gock.Intercept()
	gock.InterceptClient(c.HTTPClient())
	return c, xrf.NewGenerator(rand.NewSource(99))
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t, "/p/task/x/start?xrfkey=abc", BuildURL("/p", "/task/x/start", "abc"))
	assert.Equal(t, "/p/task?filter=name&xrfkey=abc", BuildURL("/p", "/task?filter=name", "abc"))
	assert.Equal(t, "/task/x?xrfkey=abc", BuildURL("", "/task/x", "abc"))
}

func TestStartTask_SendsKeyInQueryAndHeader(t *testing.T) {
	defer gock.Off()
	c, expected := newTestClient(t, Options{})
	token := expected.Token()

	gock.New(serverURL).
		Post(prefix+"/task/"+taskID+"/start").
		MatchParam("xrfkey", "^"+token+"$").
		MatchHeader(XrfHeader, "^"+token+"$").
		MatchHeader("Accept", "application/json").
		Reply(http.StatusNoContent)

	resp, err := c.StartTask(context.Background(), prefix, taskID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.True(t, resp.OK())
	assert.True(t, gock.IsDone())
}

func TestRequest_FreshKeyPerCall(t *testing.T) {
	defer gock.Off()
	c, expected := newTestClient(t, Options{})
	first, second := expected.Token(), expected.Token()
	require.NotEqual(t, first, second)

	gock.New(serverURL).Get(prefix+"/reloadtask/"+taskID).
		MatchParam("xrfkey", "^"+first+"$").Reply(200).BodyString(`{}`)
	gock.New(serverURL).Get(prefix+"/reloadtask/"+taskID).
		MatchParam("xrfkey", "^"+second+"$").Reply(200).BodyString(`{}`)

	_, err := c.ReadTask(context.Background(), prefix, taskID)
	require.NoError(t, err)
	_, err = c.ReadTask(context.Background(), prefix, taskID)
	require.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestReadTask_LegacyPath(t *testing.T) {
	defer gock.Off()
	c, _ := newTestClient(t, Options{ReadPath: common.ReadPathLegacyTask})

	gock.New(serverURL).Get(prefix + "/task/" + taskID).Reply(200).BodyString(`{"name":"Reload"}`)

	resp, err := c.ReadTask(context.Background(), prefix, taskID)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Reload"}`, resp.Body)
}

func TestRequest_NonSuccessIsNotAnError(t *testing.T) {
	defer gock.Off()
	c, _ := newTestClient(t, Options{})

	gock.New(serverURL).Get(prefix + "/reloadtask/" + taskID).Reply(404).BodyString("task not found")

	resp, err := c.ReadTask(context.Background(), prefix, taskID)
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, 404, resp.StatusCode)
	assert.Equal(t, "Not Found", resp.StatusText)
	assert.Equal(t, "task not found", resp.Body)
}

func TestRequest_NetworkFailure(t *testing.T) {
	defer gock.Off()
	c, _ := newTestClient(t, Options{})

	gock.New(serverURL).Post(prefix + "/task/" + taskID + "/start").ReplyError(errors.New("connection refused"))

	resp, err := c.StartTask(context.Background(), prefix, taskID)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, common.IsCode(err, common.NetworkErr))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRequest_HeaderMerge(t *testing.T) {
	defer gock.Off()
	c, expected := newTestClient(t, Options{Headers: map[string]string{"X-Qlik-User": "UserDirectory=internal; UserId=sa"}})
	token := expected.Token()

	gock.New(serverURL).Get(prefix+"/about").
		MatchHeader(XrfHeader, "^"+token+"$").
		MatchHeader("Accept", "^text/plain$").
		MatchHeader("X-Qlik-User", "UserId=sa").
		MatchHeader("X-Trace", "^1$").
		Reply(200)

	_, err := c.Request(context.Background(), prefix, "/about", http.MethodGet, map[string]string{
		"accept":  "text/plain",
		"X-Trace": "1",
	})
	require.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestRequest_SendsSessionCookie(t *testing.T) {
	defer gock.Off()
	c, _ := newTestClient(t, Options{Session: common.SessionConfig{CookieName: "X-Qlik-Session", CookieValue: "abc123"}})

	gock.New(serverURL).Get(prefix+"/reloadtask/"+taskID).
		MatchHeader("Cookie", "X-Qlik-Session=abc123").
		Reply(200).BodyString(`{}`)

	_, err := c.ReadTask(context.Background(), prefix, taskID)
	require.NoError(t, err)
	assert.True(t, gock.IsDone())
}

func TestNew_MissingCACert(t *testing.T) {
	_, err := New(Options{ServerURL: serverURL, TLS: common.TLSConfig{CACert: "/does/not/exist.pem"}})
	assert.Error(t, err)
}
