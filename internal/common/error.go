package common

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrNo struct {
	ErrCode int    `json:"err_code"`
	ErrMsg  string `json:"err_msg"`
	cause   error
}

const (
	SuccessCode = 0
	ServiceErr  = iota + 10000
	ConfigMissing
	TaskIDInvalid
	RequestFailed
	ParseFailed
	NetworkErr
)

var errorMsg = map[int]string{
	SuccessCode:   "success",
	ServiceErr:    "service error",
	ConfigMissing: "primary task id is not configured",
	TaskIDInvalid: "task id is not a valid GUID",
	RequestFailed: "control-plane request failed",
	ParseFailed:   "response body is not a JSON record",
	NetworkErr:    "network error",
}

func (e ErrNo) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("err_code=%d, err_msg=%s: %v", e.ErrCode, e.ErrMsg, e.cause)
	}
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func (e ErrNo) Unwrap() error {
	return e.cause
}

func NewErrNo(errCode int) error {
	return ErrNo{
		ErrCode: errCode,
		ErrMsg:  errorMsg[errCode],
	}
}

// WrapErrNo attaches cause to the error code. cause stays reachable through
// errors.Is / errors.As and errors.Cause.
func WrapErrNo(errCode int, cause error, msg string) error {
	return ErrNo{
		ErrCode: errCode,
		ErrMsg:  errorMsg[errCode],
		cause:   errors.Wrap(cause, msg),
	}
}

func ConvertErr(err error) ErrNo {
	e := ErrNo{}
	if errors.As(err, &e) {
		return e
	}
	e = ErrNo{
		ErrCode: ServiceErr,
		ErrMsg:  err.Error(),
	}
	return e
}

// IsCode reports whether err carries the given error code.
func IsCode(err error, errCode int) bool {
	if err == nil {
		return false
	}
	e := ErrNo{}
	return errors.As(err, &e) && e.ErrCode == errCode
}
