// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.
//
// package flags
// define.go
// 类型化定义入口。每个 Define* 做三件事：构造解析器/序列化器、
// 构造 TypedFlag、注册进注册表，然后交回一个 Holder[T]。
// 定义期出错（重名、默认值非法）一律 panic —— 标志定义发生在包
// 初始化阶段，属于编程错误，没有可恢复路径。
//
// Holder 是业务代码读值的唯一通道：Value() 返回原生类型，不需要
// 任何断言；Set 走注册表事务语义，多标志校验器照常触发。

package flags

import (
	"fmt"
	"sort"
)

// Holder 一个已注册标志的类型化句柄
type Holder[T any] struct {
	fl *TypedFlag[T]
	r  *Registry
}

// Name 返回标志名
func (h *Holder[T]) Name() string { return h.fl.Name() }

// Value 返回标志当前值（原生类型）
func (h *Holder[T]) Value() T { return h.fl.Value() }

// Default 返回标志的默认值
func (h *Holder[T]) Default() T { return h.fl.Default() }

// Present 返回该标志在命令行上出现的次数
func (h *Holder[T]) Present() int { return h.fl.Present() }

// UsingDefault 返回标志是否仍处于默认态
func (h *Holder[T]) UsingDefault() bool { return h.fl.UsingDefault() }

// Set 以赋值语义写入新值，经注册表事务（多标志校验器参与裁决）
func (h *Holder[T]) Set(value T) error {
	return h.r.Apply(Assignment{Name: h.fl.Name(), Value: value})
}

// RegisterValidator 给底层标志追加类型化校验器，并立即用当前值验证
func (h *Holder[T]) RegisterValidator(fn func(value T) error) error {
	return h.fl.AppendValidator(fn)
}

// Flag 暴露底层标志对象（帮助文本、序列化等低层操作用）
func (h *Holder[T]) Flag() Flag { return h.fl }

// Define 注册一个任意类型的标志。parser/serializer 成对提供；
// 大多数调用方应该用下面的具体类型入口。
func Define[T any](r *Registry, name string, defaultValue T, help string, parser Parser[T], serializer Serializer[T]) *Holder[T] {
	return defineFlag(r, NewFlag(parser, serializer, name, "", defaultValue, help))
}

func defineFlag[T any](r *Registry, fl *TypedFlag[T]) *Holder[T] {
	if err := r.Register(fl, withModule(callerModule(3))); err != nil {
		panic(fmt.Sprintf("defining flag --%s: %v", fl.Name(), err))
	}
	return &Holder[T]{fl: fl, r: r}
}

// DefineString 注册字符串标志
func DefineString(r *Registry, name, defaultValue, help string) *Holder[string] {
	return defineFlag(r, NewFlag(NewStringParser(), NewStringSerializer(), name, "", defaultValue, help))
}

// DefineBool 注册布尔标志（解析器接受 true/t/1/yes/y 与对应否定形式，
// 命令行上支持 --name 和 --noname 两种写法）
func DefineBool(r *Registry, name string, defaultValue bool, help string) *Holder[bool] {
	fl := NewFlag(NewBoolParser(), NewBoolSerializer(), name, "", defaultValue, help)
	fl.MarkBoolFlag()
	return defineFlag(r, fl)
}

// DefineInt 注册整数标志。strconv 按 0 进制解析：0x/0o/0b 前缀按
// 对应进制处理，科学计数法（1e2）不接受。
func DefineInt(r *Registry, name string, defaultValue int, help string) *Holder[int] {
	return defineFlag(r, NewFlag(NewIntParser(), NewIntSerializer(), name, "", defaultValue, help))
}

// DefineFloat64 注册浮点标志
func DefineFloat64(r *Registry, name string, defaultValue float64, help string) *Holder[float64] {
	return defineFlag(r, NewFlag(NewFloat64Parser(), NewFloat64Serializer(), name, "", defaultValue, help))
}

// DefineEnum 注册字符串枚举标志。values 是合法取值全集；
// caseSensitive 为假时输入按不区分大小写匹配并折算成 values 里的写法。
// 帮助文本自动带上 "<a|b|c>: " 前缀。
func DefineEnum(r *Registry, name, defaultValue string, values []string, caseSensitive bool, help string) *Holder[string] {
	parser, err := NewEnumParser(values, caseSensitive)
	if err != nil {
		panic(fmt.Sprintf("defining flag --%s: %v", name, err))
	}
	// 默认值同样必须落在取值全集里，且折算成规范写法
	canonical, err := parser.Parse(defaultValue)
	if err != nil {
		panic(fmt.Sprintf("defining flag --%s: default %v", name, err))
	}
	help = parser.helpSuffix() + ": " + normalizeHelp(help)
	return defineFlag(r, NewFlag(parser, NewStringSerializer(), name, "", canonical, help))
}

// DefineEnumClass 注册映射枚举标志：命令行文本经 members 映射成任意
// 原生值。lowercaseSerialization 控制序列化时输出小写名还是原始名。
func DefineEnumClass[T comparable](r *Registry, name string, defaultValue T, members map[string]T, lowercaseSerialization bool, help string) *Holder[T] {
	parser, err := NewEnumClassParser(members, false)
	if err != nil {
		panic(fmt.Sprintf("defining flag --%s: %v", name, err))
	}
	// 默认值必须是某个成员的映射结果，否则序列化后无法再解析回来
	member := false
	for _, v := range members {
		if v == defaultValue {
			member = true
			break
		}
	}
	if !member {
		panic(fmt.Sprintf("defining flag --%s: default value %v is not one of %s", name, defaultValue, parser.helpSuffix()))
	}
	help = parser.helpSuffix() + ": " + normalizeHelp(help)
	serializer := NewEnumClassSerializer(parser, lowercaseSerialization)
	return defineFlag(r, NewFlag(parser, serializer, name, "", defaultValue, help))
}

// DefineStringList 注册逗号分隔的字符串列表标志。
// 一次命令行出现给出整个列表；再次出现整体替换。
func DefineStringList(r *Registry, name string, defaultValue []string, help string) *Holder[[]string] {
	parser := NewListParser(NewStringParser(), ",")
	serializer := NewListSerializer(NewStringSerializer(), ",")
	fl := NewFlag(parser, serializer, name, "", defaultValue, help)
	fl.copyFn = copySlice[string]
	return defineFlag(r, fl)
}

// DefineMultiString 注册可重复的字符串标志：每次命令行出现追加一个元素
func DefineMultiString(r *Registry, name string, defaultValue []string, help string) *Holder[[]string] {
	parser := NewListParser(NewStringParser(), ",")
	serializer := NewListSerializer(NewStringSerializer(), ",")
	fl := NewFlag(parser, serializer, name, "", defaultValue, help)
	configureMulti(fl, NewStringSerializer())
	return defineFlag(r, fl)
}

// DefineMultiInt 注册可重复的整数标志：每次命令行出现追加一个元素
func DefineMultiInt(r *Registry, name string, defaultValue []int, help string) *Holder[[]int] {
	parser := NewListParser(NewIntParser(), ",")
	serializer := NewListSerializer(NewIntSerializer(), ",")
	fl := NewFlag(parser, serializer, name, "", defaultValue, help)
	configureMulti(fl, NewIntSerializer())
	return defineFlag(r, fl)
}

// configureMulti 把列表标志改装成累积语义：
// 解析时新元素拼接到现值之后，序列化回命令行时每个元素独立一条 --name=elem
func configureMulti[E any](fl *TypedFlag[[]E], elem Serializer[E]) {
	fl.copyFn = copySlice[E]
	fl.merge = func(old, add []E) []E {
		out := make([]E, 0, len(old)+len(add))
		out = append(out, old...)
		return append(out, add...)
	}
	fl.explode = func(value []E) []string {
		elems := make([]string, len(value))
		for i, e := range value {
			elems[i] = elem.Serialize(e)
		}
		return elems
	}
}

func copySlice[E any](s []E) []E {
	if s == nil {
		return nil
	}
	return append([]E(nil), s...)
}

// GetTyped 按名字取标志的类型化当前值；类型不匹配时报错而不是 panic
func GetTyped[T any](r *Registry, name string) (T, error) {
	var zero T
	f, err := r.Lookup(name)
	if err != nil {
		return zero, err
	}
	v, ok := f.Get().(T)
	if !ok {
		return zero, fmt.Errorf("flag --%s holds %T, not %T", f.Name(), f.Get(), zero)
	}
	return v, nil
}

// GetString 按名字取字符串标志的当前值
func (r *Registry) GetString(name string) (string, error) { return GetTyped[string](r, name) }

// GetBool 按名字取布尔标志的当前值
func (r *Registry) GetBool(name string) (bool, error) { return GetTyped[bool](r, name) }

// GetInt 按名字取整型标志的当前值
func (r *Registry) GetInt(name string) (int, error) { return GetTyped[int](r, name) }

// GetFloat64 按名字取浮点标志的当前值
func (r *Registry) GetFloat64(name string) (float64, error) { return GetTyped[float64](r, name) }

// GetStringList 按名字取字符串切片标志的当前值
func (r *Registry) GetStringList(name string) ([]string, error) {
	return GetTyped[[]string](r, name)
}

// SortedNames 返回字母序的标志名列表（帮助文本渲染用）
func (r *Registry) SortedNames() []string {
	names := r.FlagNames()
	sort.Strings(names)
	return names
}

// DefineWithDefaultText 注册一个默认值以原始文本形式给出的标志，
// 文本到首次读取前都不必可解析（配合后续 SetDefault 纠正）。
func DefineWithDefaultText[T any](r *Registry, name, defaultText, help string, parser Parser[T], serializer Serializer[T]) (*Holder[T], error) {
	fl, err := NewFlagWithDefaultText(parser, serializer, name, "", defaultText, help)
	if err != nil {
		return nil, err
	}
	if err := r.Register(fl, withModule(callerModule(2))); err != nil {
		return nil, err
	}
	return &Holder[T]{fl: fl, r: r}, nil
}
