package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertErr(t *testing.T) {
	e := ConvertErr(NewErrNo(TaskIDInvalid))
	assert.Equal(t, TaskIDInvalid, e.ErrCode)
	assert.Equal(t, errorMsg[TaskIDInvalid], e.ErrMsg)

	e = ConvertErr(errors.New("plain"))
	assert.Equal(t, ServiceErr, e.ErrCode)
	assert.Equal(t, "plain", e.ErrMsg)
}

func TestWrapErrNo(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("check: %w", WrapErrNo(NetworkErr, cause, "GET /reloadtask/x"))

	assert.True(t, IsCode(err, NetworkErr))
	assert.False(t, IsCode(err, RequestFailed))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "GET /reloadtask/x: connection refused")
	assert.False(t, IsCode(nil, NetworkErr))
}
