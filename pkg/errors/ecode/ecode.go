package ecode

// 业务错误码，0 表示成功
const (
	Success           = 0
	Unknown           = 10000
	ValidateErr       = 10001
	NotFoundErr       = 10002
	RequireAuthErr    = 10003
	TooManyRequests   = 10004
	VaultUnavailable  = 20001
	TradesUnavailable = 20002
)

var messages = map[int]string{
	Success:           "success",
	Unknown:           "unknown error",
	ValidateErr:       "invalid parameter",
	NotFoundErr:       "not found",
	RequireAuthErr:    "authorization required",
	TooManyRequests:   "too many requests",
	VaultUnavailable:  "vault data is not available yet",
	TradesUnavailable: "trade metrics are not available",
}

// Text 返回错误码的默认提示信息
func Text(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[Unknown]
}
