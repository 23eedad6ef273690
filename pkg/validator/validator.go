package validator

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/fr"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	frTranslations "github.com/go-playground/validator/v10/translations/fr"
)

var (
	once     sync.Once
	uni      *ut.UniversalTranslator
	fallback = "en"
)

// LazyInitGinValidator 给 gin 的 binding 校验器注册 en/fr 错误提示，只执行一次
func LazyInitGinValidator(language string) {
	once.Do(func() {
		if language != "" {
			fallback = strings.ToLower(language)
		}
		enLocale := en.New()
		uni = ut.New(enLocale, enLocale, fr.New())

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// 提示信息里使用 form 标签名而不是结构体字段名
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
		if trans, found := uni.GetTranslator("en"); found {
			_ = enTranslations.RegisterDefaultTranslations(v, trans)
		}
		if trans, found := uni.GetTranslator("fr"); found {
			_ = frTranslations.RegisterDefaultTranslations(v, trans)
		}
	})
}

// Translate 把校验错误翻译成指定语言，多个字段用 "; " 连接，非校验错误原样返回
func Translate(err error, language string) string {
	if err == nil {
		return ""
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || uni == nil {
		return err.Error()
	}
	trans, found := uni.FindTranslator(strings.ToLower(language), fallback)
	if !found {
		return err.Error()
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Translate(trans))
	}
	return strings.Join(msgs, "; ")
}
