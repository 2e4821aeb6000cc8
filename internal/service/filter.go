package service

import (
	"fmt"
	"strings"
	"sync"
	"unicode"
)

// ContentFilter 话题文本检查与整形：敏感词拦截、中西文混排补空格。
// 词表来自配置，可热更新
type ContentFilter struct {
	mu       sync.RWMutex
	banWords []string
}

// NewContentFilter 创建内容过滤器
func NewContentFilter(banWords []string) *ContentFilter {
	f := &ContentFilter{}
	f.SetBanWords(banWords)
	return f
}

// SetBanWords 替换敏感词表（配置热更新入口）
func (f *ContentFilter) SetBanWords(banWords []string) {
	words := make([]string, 0, len(banWords))
	for _, w := range banWords {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}

	f.mu.Lock()
	f.banWords = words
	f.mu.Unlock()
}

// Validate 逐个检查配置的敏感词，命中几个就报几条，不短路
func (f *ContentFilter) Validate(body string) []Violation {
	f.mu.RLock()
	words := f.banWords
	f.mu.RUnlock()

	var violations []Violation
	for _, w := range words {
		if strings.Contains(body, w) {
			violations = append(violations, Violation{
				Field:   "body",
				Message: fmt.Sprintf("敏感词 %q 禁止发布！", w),
			})
		}
	}
	return violations
}

// NormalizeSpacing 在中日韩文字与相邻英文字母、数字之间补一个空格。
// 幂等：已经补过空格的串再跑一遍不变
func (f *ContentFilter) NormalizeSpacing(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 8)

	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]
			if (isCJK(prev) && isLatinOrDigit(r)) || (isLatinOrDigit(prev) && isCJK(r)) {
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r)
}

func isLatinOrDigit(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
