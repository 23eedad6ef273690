// Package errors 带业务错误码的 error，由 response.JSON 解码成接口响应
package errors

import (
	stderrors "errors"
	"fmt"

	"vaultdash/pkg/errors/ecode"
)

type codeError struct {
	code    int
	message string
	cause   error
}

func (e *codeError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

func (e *codeError) Unwrap() error {
	return e.cause
}

func (e *codeError) Code() int {
	return e.code
}

// WithCode 创建一个带错误码的 error
func WithCode(code int, format string, args ...interface{}) error {
	return &codeError{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap 给已有的 error 附加错误码和提示信息，err 为 nil 时返回 nil
func Wrap(err error, code int, message string) error {
	if err == nil {
		return nil
	}
	return &codeError{code: code, message: message, cause: err}
}

// DecodeErr 解析出错误码和提示信息，nil 视为成功，普通 error 视为 Unknown
func DecodeErr(err error) (int, string) {
	if err == nil {
		return ecode.Success, ecode.Text(ecode.Success)
	}
	var ce *codeError
	if stderrors.As(err, &ce) {
		msg := ce.message
		if msg == "" {
			msg = ecode.Text(ce.code)
		}
		return ce.code, msg
	}
	return ecode.Unknown, err.Error()
}

func Code(err error) int {
	code, _ := DecodeErr(err)
	return code
}

func New(text string) error {
	return stderrors.New(text)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
