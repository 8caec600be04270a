// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.
//
// package flags
// flag.go
// Flag 是配置的最小可变单元：把一对 Parser/Serializer 绑定到名字、默认值、
// 帮助文本和当前值上。
//
// 状态模型：
//   - (value, present, usingDefault) 三元组打包在一条不可变记录里，提交时
//     整体换指针（atomic.Pointer），并发读者永远看到一致的三元组，不存在
//     "值换了、present 还没加"的中间态；
//   - 变更路径（Parse/Set/SetDefault）由互斥锁串行化，遵循
//     先校验候选值、校验通过才提交 的纪律——校验器拒绝时旧值原样保留；
//   - present 只统计命令行路径（Parse），直接赋值不会增加，借此区分
//     "被显式设置成默认值文本" 和 "从未被设置"。
//
// MultiFlag 语义通过 merge 回调实现：首次出现替换默认值，后续出现逐个累积。

package flags

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/maxiaolu1981/cretem/flagcore/errors"
)

// noHelpText 帮助文本为空时的占位显示串
const noHelpText = "(no help available)"

// Flag 是注册表持有的标志视图。实现只有本包的 TypedFlag，
// 接口里的非导出方法阻止外部实现，保证注册表独占所有权。
type Flag interface {
	// Name 返回规范名（长名）
	Name() string
	// ShortName 返回短名别名，未设置时为空串
	ShortName() string
	// Help 返回规范化后的帮助文本（非空）
	Help() string
	// Type 返回解析器的类型名
	Type() string
	// IsBoolFlag 标记布尔标志：解析时不消耗后续令牌，支持 --no<name> 取反
	IsBoolFlag() bool
	// Present 返回该标志在命令行上出现的次数
	Present() int
	// UsingDefault 返回当前值是否仍是声明的默认值（从未被显式设置过）
	UsingDefault() bool
	// Get 返回当前值（切片类返回副本）
	Get() any
	// DefaultAny 返回解析后的默认值
	DefaultAny() any
	// DefaultUnparsed 返回默认值的原始形态：以文本给出的默认返回文本，
	// 以原生值给出的默认返回原生值
	DefaultUnparsed() any
	// Parse 按命令行语义赋值：解析、校验、提交，present 加一
	Parse(argument string) error
	// SetAny 按赋值语义设置：接受原生类型或字符串，其它类型报错并指明类型名
	SetAny(value any) error
	// SetDefault 重新解析并替换默认值；当前值仍处于默认态时一并前移
	SetDefault(text string) error
	// Serialize 输出当前值文本，满足 Parse(Serialize()) 不改变值的往返律
	Serialize() string
	// SerializeArgs 输出可直接回喂 Parse 的命令行令牌（多值标志逐元素展开）
	SerializeArgs() []string
	// ValidatorCount 返回挂在该标志上的校验器个数
	ValidatorCount() int

	captureState() func()
	appendAnyValidator(fn func(any) error)
	validateCurrent() error
}

// flagState 一次提交的完整赋值记录，提交后不可变
type flagState[T any] struct {
	value        T
	present      int
	usingDefault bool
}

// TypedFlag 是 Flag 的泛型实现
type TypedFlag[T any] struct {
	name       string
	shortName  string
	help       string
	parser     Parser[T]
	serializer Serializer[T]

	mu  sync.Mutex
	cur atomic.Pointer[flagState[T]]

	defValue    T
	defText     string
	defFromText bool

	validators []func(T) error

	boolFlag bool
	// merge 非空时为 Multi 标志：首次出现替换默认值，后续出现累积
	merge func(old, add T) T
	// explode 非空时逐元素序列化（Multi 标志一行一个元素）
	explode func(T) []string
	// copyFn 值的深拷贝，切片类标志必须设置；nil 表示值语义直接复制
	copyFn func(T) T
}

// NewFlag 以原生默认值构造标志。shortName 可为空。
func NewFlag[T any](parser Parser[T], serializer Serializer[T], name, shortName string, defaultValue T, help string) *TypedFlag[T] {
	f := &TypedFlag[T]{
		name:       name,
		shortName:  shortName,
		help:       normalizeHelp(help),
		parser:     parser,
		serializer: serializer,
		defValue:   defaultValue,
		defText:    serializer.Serialize(defaultValue),
	}
	f.cur.Store(&flagState[T]{value: f.copy(defaultValue), usingDefault: true})
	return f
}

// NewFlagWithDefaultText 以文本默认值构造标志，文本立即通过解析器转换；
// 序列化在标志从未被设置时回退到这份原始文本。
func NewFlagWithDefaultText[T any](parser Parser[T], serializer Serializer[T], name, shortName, defaultText, help string) (*TypedFlag[T], error) {
	v, err := parser.Parse(defaultText)
	if err != nil {
		return nil, newParseError(name, defaultText, err)
	}
	f := NewFlag(parser, serializer, name, shortName, v, help)
	f.defText = defaultText
	f.defFromText = true
	return f, nil
}

func normalizeHelp(help string) string {
	if strings.TrimSpace(help) == "" {
		return noHelpText
	}
	return help
}

func (f *TypedFlag[T]) copy(v T) T {
	if f.copyFn != nil {
		return f.copyFn(v)
	}
	return v
}

// Name 实现 Flag 接口
func (f *TypedFlag[T]) Name() string { return f.name }

// ShortName 实现 Flag 接口
func (f *TypedFlag[T]) ShortName() string { return f.shortName }

// Help 实现 Flag 接口
func (f *TypedFlag[T]) Help() string { return f.help }

// Type 实现 Flag 接口
func (f *TypedFlag[T]) Type() string { return f.parser.Type() }

// IsBoolFlag 实现 Flag 接口
func (f *TypedFlag[T]) IsBoolFlag() bool { return f.boolFlag }

// MarkBoolFlag 将标志标记为布尔风格：命令行上允许省略取值（--name 等价于
// --name=true），且支持 --noname 否定形式。应在注册前调用。
func (f *TypedFlag[T]) MarkBoolFlag() { f.boolFlag = true }

// Present 实现 Flag 接口
func (f *TypedFlag[T]) Present() int { return f.cur.Load().present }

// UsingDefault 实现 Flag 接口
func (f *TypedFlag[T]) UsingDefault() bool { return f.cur.Load().usingDefault }

// Value 返回当前的类型化值（切片类返回副本），读路径无锁
func (f *TypedFlag[T]) Value() T { return f.copy(f.cur.Load().value) }

// Get 实现 Flag 接口
func (f *TypedFlag[T]) Get() any { return f.Value() }

// Default 返回解析后的类型化默认值
func (f *TypedFlag[T]) Default() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.copy(f.defValue)
}

// DefaultAny 实现 Flag 接口
func (f *TypedFlag[T]) DefaultAny() any { return f.Default() }

// DefaultUnparsed 实现 Flag 接口
func (f *TypedFlag[T]) DefaultUnparsed() any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.defFromText {
		return f.defText
	}
	return f.copy(f.defValue)
}

// Parse 实现 Flag 接口。失败时（解析或校验）标志保持原值。
func (f *TypedFlag[T]) Parse(argument string) error {
	v, err := f.parser.Parse(argument)
	if err != nil {
		return newParseError(f.name, argument, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.cur.Load()
	nv := v
	if f.merge != nil && st.present > 0 {
		nv = f.merge(f.copy(st.value), v)
	}
	if err := f.runValidators(nv); err != nil {
		return newValidationError([]string{f.name}, argument, err)
	}
	f.cur.Store(&flagState[T]{value: f.copy(nv), present: st.present + 1, usingDefault: false})
	return nil
}

// Set 按赋值语义设置类型化值：校验通过才提交，present 不变
func (f *TypedFlag[T]) Set(v T) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.setLocked(v)
}

func (f *TypedFlag[T]) setLocked(v T) error {
	if err := f.runValidators(v); err != nil {
		return newValidationError([]string{f.name}, fmt.Sprint(v), err)
	}
	st := f.cur.Load()
	f.cur.Store(&flagState[T]{value: f.copy(v), present: st.present, usingDefault: false})
	return nil
}

// SetAny 实现 Flag 接口
func (f *TypedFlag[T]) SetAny(value any) error {
	switch v := value.(type) {
	case T:
		return f.Set(v)
	case string:
		parsed, err := f.parser.Parse(v)
		if err != nil {
			return newParseError(f.name, v, err)
		}
		return f.Set(parsed)
	default:
		return errors.Errorf("flag --%s: unsupported value type %T (expect %s or string)", f.name, value, f.parser.Type())
	}
}

// SetDefault 实现 Flag 接口。这是默认值和当前值唯一的耦合点：
// 标志仍处于默认态时，当前值跟随新默认值一起前移。
func (f *TypedFlag[T]) SetDefault(text string) error {
	v, err := f.parser.Parse(text)
	if err != nil {
		return newParseError(f.name, text, err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.cur.Load()
	if st.usingDefault {
		if err := f.runValidators(v); err != nil {
			return newValidationError([]string{f.name}, text, err)
		}
		f.cur.Store(&flagState[T]{value: f.copy(v), present: st.present, usingDefault: true})
	}
	f.defValue = v
	f.defText = text
	f.defFromText = true
	return nil
}

// Serialize 实现 Flag 接口
func (f *TypedFlag[T]) Serialize() string {
	st := f.cur.Load()
	if st.usingDefault {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.defText
	}
	return f.serializer.Serialize(st.value)
}

// SerializeArgs 实现 Flag 接口
func (f *TypedFlag[T]) SerializeArgs() []string {
	st := f.cur.Load()
	if f.boolFlag {
		// 布尔风格标志优先用 --name/--noname 形式；非布尔取值（如三态标志的
		// 额外状态）退回 --name=value 形式。
		switch s := f.serializer.Serialize(st.value); s {
		case "true":
			return []string{"--" + f.name}
		case "false":
			return []string{"--no" + f.name}
		default:
			return []string{"--" + f.name + "=" + s}
		}
	}
	if f.explode != nil {
		elems := f.explode(st.value)
		args := make([]string, len(elems))
		for i, e := range elems {
			args[i] = "--" + f.name + "=" + e
		}
		return args
	}
	return []string{"--" + f.name + "=" + f.Serialize()}
}

// ValidatorCount 实现 Flag 接口
func (f *TypedFlag[T]) ValidatorCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.validators)
}

// AppendValidator 为标志追加一个类型化校验器并立即用当前值验证。
// 验证失败时校验器保持已挂载状态（与既有行为一致），错误返回给调用方。
func (f *TypedFlag[T]) AppendValidator(fn func(T) error) error {
	f.mu.Lock()
	f.validators = append(f.validators, fn)
	f.mu.Unlock()
	return f.validateCurrent()
}

func (f *TypedFlag[T]) appendAnyValidator(fn func(any) error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.validators = append(f.validators, func(v T) error { return fn(v) })
}

// runValidators 按登记顺序对候选值运行本标志的全部校验器，caller 持锁
func (f *TypedFlag[T]) runValidators(candidate T) error {
	for _, fn := range f.validators {
		if err := fn(candidate); err != nil {
			return err
		}
	}
	return nil
}

// validateCurrent 用当前值重放本标志的校验器
func (f *TypedFlag[T]) validateCurrent() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.cur.Load()
	if err := f.runValidators(st.value); err != nil {
		return newValidationError([]string{f.name}, fmt.Sprint(st.value), err)
	}
	return nil
}

// captureState 捕获标志全部可变状态的深拷贝，返回的闭包把状态精确回滚。
// 闭包可重复调用，值与校验器列表在恢复时再拷贝一次，避免共享。
func (f *TypedFlag[T]) captureState() func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.cur.Load()
	savedValue := f.copy(st.value)
	savedPresent := st.present
	savedUsingDefault := st.usingDefault
	savedDefValue := f.copy(f.defValue)
	savedDefText := f.defText
	savedDefFromText := f.defFromText
	savedValidators := append([]func(T) error(nil), f.validators...)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.defValue = savedDefValue
		f.defText = savedDefText
		f.defFromText = savedDefFromText
		f.validators = append([]func(T) error(nil), savedValidators...)
		f.cur.Store(&flagState[T]{
			value:        f.copy(savedValue),
			present:      savedPresent,
			usingDefault: savedUsingDefault,
		})
	}
}
