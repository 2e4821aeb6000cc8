package service

import "strings"

// Violation 一次被拒绝变更中的单条违规信息
type Violation struct {
	Field   string `json:"field"` // 违规归属字段；话题级限制归到 "topic"
	Message string `json:"message"`
}

// ValidationError 校验类失败：变更被整体拒绝，不产生任何落库副作用
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "；")
}
