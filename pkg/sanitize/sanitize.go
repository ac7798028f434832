// Package sanitize 提供输入净化与敏感信息脱敏工具。
package sanitize

import (
	"regexp"
	"strings"
)

// 输入中需要剔除的 HTML/JS 特殊字符。
var specialChars = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "", "&", "", "\x00", "")

// 错误信息中可能出现的密钥、令牌等敏感内容的模式。
var secretPatterns = []*regexp.Regexp{
	regexp.MustCompile(`AIza[a-zA-Z0-9_-]*`),
	regexp.MustCompile(`sk-[a-zA-Z0-9]*`),
	regexp.MustCompile(`Bearer\s+[a-zA-Z0-9_-]+`),
	regexp.MustCompile(`(?i)api[_-]?key[:\s=]+[a-zA-Z0-9_-]+`),
	regexp.MustCompile(`(?i)token[:\s=]+[a-zA-Z0-9_-]+`),
	regexp.MustCompile(`(?i)password[:\s=]+\S+`),
	regexp.MustCompile(`(?i)secret[:\s=]+\S+`),
}

// maxInputRunes 是净化后输入的最大长度。
const maxInputRunes = 100

// Input 去掉首尾空白、HTML 特殊字符和 null 字节，并限制最大长度。
// 所有进入提示词的用户输入都必须先经过这里。
func Input(s string) string {
	s = specialChars.Replace(strings.TrimSpace(s))
	if runes := []rune(s); len(runes) > maxInputRunes {
		s = string(runes[:maxInputRunes])
	}
	return s
}

// ErrorMessage 在错误信息跨进程边界（日志或响应）之前抹掉密钥、令牌等敏感内容。
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, p := range secretPatterns {
		msg = p.ReplaceAllString(msg, "[REDACTED]")
	}
	return msg
}
