// package flags
// errors.go
// 定义标志子系统的错误分类体系。
//
// 错误分为三类，对应三个互不重叠的失败场景：
//  1. DuplicateFlagError —— 定义期冲突（同名/同短名重复注册），属于编程错误，
//     定义入口（Define*）直接 panic，不提供恢复路径；
//  2. UnrecognizedFlagError —— 解析期遇到未注册的 --name，对本次 Parse 调用致命；
//  3. IllegalFlagValueError —— 值转换失败或校验器拒绝，对本次赋值操作致命，
//     标志旧值保持不变（不存在部分变更）。
//
// 校验器拒绝产生的 IllegalFlagValueError 消息中必须包含字面量
// "Flag validation failed"，测试体系依赖该子串做断言。
package flags

import (
	"fmt"
	"strings"
)

// DuplicateFlagError 表示同一个名字（或短名）下已经注册了另一个标志
type DuplicateFlagError struct {
	// FlagName 冲突的标志名（规范名或短名）
	FlagName string
}

func (e *DuplicateFlagError) Error() string {
	return fmt.Sprintf("the flag --%s is defined twice", e.FlagName)
}

// UnrecognizedFlagError 表示命令行中出现了未注册的标志
type UnrecognizedFlagError struct {
	// FlagName 无法识别的标志名（已剥掉前导连字符）
	FlagName string
	// Token 原始命令行令牌，供上层格式化错误消息
	Token string
}

func (e *UnrecognizedFlagError) Error() string {
	return fmt.Sprintf("unknown command line flag '%s'", e.FlagName)
}

// IllegalFlagValueError 表示某个标志的单次赋值被拒绝：
// 要么文本无法转换成目标类型，要么候选值未通过校验器。
// 被拒绝时标志保持拒绝前的值。
type IllegalFlagValueError struct {
	// FlagNames 涉及的标志名；单标志场景只有一个元素，
	// 多标志校验器拒绝时为整个作用域
	FlagNames []string
	// Value 被拒绝的输入（文本或值的字符串表示）
	Value string
	// Err 底层原因（解析错误或校验器返回的错误）
	Err error
}

func (e *IllegalFlagValueError) Error() string {
	names := strings.Join(e.FlagNames, ", ")
	if e.Value != "" {
		return fmt.Sprintf("flag --%s=%s: %v", names, e.Value, e.Err)
	}
	return fmt.Sprintf("flag --%s: %v", names, e.Err)
}

func (e *IllegalFlagValueError) Unwrap() error { return e.Err }

// newParseError 包装一次类型转换失败
func newParseError(name, value string, err error) *IllegalFlagValueError {
	return &IllegalFlagValueError{FlagNames: []string{name}, Value: value, Err: err}
}

// newValidationError 包装一次校验器拒绝，消息携带固定子串 "Flag validation failed"
func newValidationError(names []string, value string, reason error) *IllegalFlagValueError {
	return &IllegalFlagValueError{
		FlagNames: names,
		Value:     value,
		Err:       fmt.Errorf("Flag validation failed: %v", reason),
	}
}
