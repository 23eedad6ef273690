// Package i18n 提供看板的 EN/FR 文案，缺失的 key 依次回退到英文和 key 本身
package i18n

import (
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
)

const (
	English = "en"
	French  = "fr"
)

var (
	once sync.Once
	uni  *ut.UniversalTranslator
)

func load() {
	once.Do(func() {
		enLocale := en.New()
		uni = ut.New(enLocale, enLocale, fr.New())
		for lang, table := range tables {
			trans, _ := uni.GetTranslator(lang)
			for key, text := range table {
				// 文案是静态表，Add 只会在 key 重复时报错
				_ = trans.Add(key, text, true)
			}
		}
	})
}

// Supported 是否为支持的语言
func Supported(lang string) bool {
	_, ok := tables[normalize(lang)]
	return ok
}

// T 翻译 key，params 依次替换 {0}、{1}...，参数不足时缺的占位符替换为空串
func T(lang, key string, params ...string) string {
	load()
	for _, l := range []string{normalize(lang), English} {
		text, ok := tables[l][key]
		if !ok {
			continue
		}
		trans, found := uni.FindTranslator(l)
		if !found || trans.Locale() != l {
			continue
		}
		// universal-translator 按占位符下标直接取 params，不能少传
		if n := placeholderCount(text); len(params) < n {
			padded := make([]string, n)
			copy(padded, params)
			params = padded
		}
		if out, err := trans.T(key, params...); err == nil && out != "" {
			return out
		}
	}
	return key
}

var placeholder = regexp.MustCompile(`\{(\d+)\}`)

// placeholderCount 返回 T 至少需要的参数个数：最大的 N+1 与占位符出现次数取大
func placeholderCount(text string) int {
	matches := placeholder.FindAllStringSubmatch(text, -1)
	n := len(matches)
	for _, m := range matches {
		if i, err := strconv.Atoi(m[1]); err == nil && i+1 > n {
			n = i + 1
		}
	}
	return n
}

// Labels 返回某个语言的完整文案表，缺失的 key 用英文补齐；
// 带占位符的文案原样返回，由前端替换 {0}
func Labels(lang string) map[string]string {
	lang = normalize(lang)
	out := make(map[string]string, len(tables[English]))
	for key, text := range tables[English] {
		if localized, ok := tables[lang][key]; ok {
			text = localized
		}
		if placeholderCount(text) > 0 {
			out[key] = text
			continue
		}
		out[key] = T(lang, key)
	}
	return out
}

func normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}
