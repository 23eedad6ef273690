package consts

import "time"

const (
	// RequestId 请求id名称
	RequestId = "request_id"
	// Language 请求使用的语言，由 query 参数 lang 或 Accept-Language 决定
	Language = "language"

	// redis 缓存 vault 原始数据的 key 前缀，后面拼接 vault 地址
	VaultDetailsPrefix = "Vault_Details_list:1:"
	// 默认 redis 过期时间
	RedisExpDefault = 30 * time.Second
)

const (
	LanguageHeader = "Accept-Language"

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
	LabelLayout  = "02/01/2006"
)
