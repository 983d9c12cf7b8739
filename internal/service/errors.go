package service

import "errors"

// 领域错误。update/delete 对"不存在"和"没权限"统一返回 ErrNotFound，
// 避免向非属主确认实体存在。
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrValidation         = errors.New("invalid input")
)
