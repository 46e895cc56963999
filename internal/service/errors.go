package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUnknownContributionKind = errors.New("未知的贡献类型")
	ErrRateLimitExceeded       = errors.New("操作过于频繁，请稍后再试")
	ErrPersistenceConflict     = errors.New("写入冲突，贡献未记录")
	ErrContributionNotFound    = errors.New("贡献记录不存在")
	ErrContributionRevoked     = errors.New("贡献记录已被撤销")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUnknownContributionKind: BadRequest,
	ErrRateLimitExceeded:       TooManyRequests,
	ErrPersistenceConflict:     Conflict,
	ErrContributionNotFound:    NotFound,
	ErrContributionRevoked:     BadRequest,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}
