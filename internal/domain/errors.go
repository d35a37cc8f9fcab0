package domain

import "errors"

// 业务错误码，transport 层统一映射到响应码
type ErrCode int

const (
	CodeValidation ErrCode = iota + 1
	CodeNotFound
	CodeDuplicate
	CodeUnauthenticated
	CodeForbidden
	CodeInternal
)

type Error struct {
	Code   ErrCode
	Msg    string
	Fields map[string]string // 字段级校验信息（可空）
	Err    error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "domain error"
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(code ErrCode, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

func NewValidationError(msg string, fields map[string]string) *Error {
	return &Error{Code: CodeValidation, Msg: msg, Fields: fields}
}

// Is 判断 err 是否携带指定错误码
func Is(err error, code ErrCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
