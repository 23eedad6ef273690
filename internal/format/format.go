// Package format 把看板上的数字渲染成展示用字符串。
//
// 缺失或非数字显示为 "-"，无穷大以及 >= 999999 的值显示为 "∞"，
// 可选指标缺失时显示 "N/A"。千分位和小数点按请求语言处理。
package format

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	Missing     = "-"
	Infinity    = "∞"
	NegInfinity = "-∞"
	NA          = "N/A"

	infinityThreshold = 999999
)

type Formatter struct {
	printer *message.Printer
}

// New 按 BCP 47 标签（如 "en"、"fr"）创建 Formatter，无法识别的标签按英文处理
func New(lang string) *Formatter {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Formatter{printer: message.NewPrinter(tag)}
}

var english = New("en")

func (f *Formatter) Number(v float64, decimals int) string {
	switch {
	case math.IsNaN(v):
		return Missing
	case math.IsInf(v, 1):
		return Infinity
	case math.IsInf(v, -1):
		return NegInfinity
	case v >= infinityThreshold:
		return Infinity
	case v == 0:
		return "0"
	}
	if decimals < 0 {
		decimals = 0
	}
	return f.printer.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// Percent 保留一位小数
func (f *Formatter) Percent(v float64) string {
	switch {
	case math.IsNaN(v):
		return Missing
	case math.IsInf(v, 1):
		return Infinity + "%"
	case math.IsInf(v, -1):
		return NegInfinity + "%"
	}
	return f.Number(v, 1) + "%"
}

// SignedPercent 与 Percent 相同，正数带 "+"
func (f *Formatter) SignedPercent(v float64) string {
	s := f.Percent(v)
	if v > 0 && !strings.HasPrefix(s, Infinity) {
		return "+" + s
	}
	return s
}

// Duration 以小时为单位保留一位小数，不换算成天
func (f *Formatter) Duration(hours float64) string {
	if math.IsNaN(hours) {
		return Missing
	}
	return f.Number(hours, 1) + "h"
}

// USD 固定两位小数，0 也显示为 $0.00
func (f *Formatter) USD(v float64) string {
	if v == 0 {
		return "$" + f.printer.Sprintf("%.2f", 0.0)
	}
	s := f.Number(v, 2)
	if s == Missing || s == Infinity || s == NegInfinity {
		return s
	}
	if strings.HasPrefix(s, "-") {
		return "-$" + s[1:]
	}
	return "$" + s
}

func (f *Formatter) OptionalPercent(v *float64) string {
	if v == nil {
		return NA
	}
	return f.SignedPercent(*v)
}

func (f *Formatter) OptionalNumber(v *float64, decimals int) string {
	if v == nil {
		return NA
	}
	return f.Number(*v, decimals)
}

func Number(v float64, decimals int) string { return english.Number(v, decimals) }
func Percent(v float64) string              { return english.Percent(v) }
func Duration(hours float64) string         { return english.Duration(hours) }
func OptionalPercent(v *float64) string     { return english.OptionalPercent(v) }
