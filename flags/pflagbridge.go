// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.
//
// package flags
// pflagbridge.go
// 与 spf13/pflag 的互操作层，基于 pflag 库扩展，
// 让注册表里的标志出现在既有的 pflag.FlagSet（cobra 命令等）里，
// 解析动作回流到本注册表，保持单一事实来源。
//
// 核心功能包括：
// 1. 值适配：把任意标志包装成 pflag.Value，Set 走标志自己的解析与校验；
// 2. 标志名规范化：将含下划线 "_" 的标志名自动转换为连字符 "-"，
//    并支持对旧格式的警告提示；
// 3. 调试辅助：打印所有解析后的参数及其值，便于验证参数配置正确性。

package flags

import (
	goflag "flag"
	"strings"

	"github.com/spf13/pflag"
)

// pflagValue 把注册表标志适配成 pflag.Value。
// Set 调用标志的 Parse，因此 present 计数、校验器和 usingDefault
// 语义与直接走注册表完全一致。
type pflagValue struct {
	f Flag
}

func (v pflagValue) String() string { return v.f.Serialize() }

func (v pflagValue) Set(s string) error { return v.f.Parse(s) }

func (v pflagValue) Type() string { return v.f.Type() }

// boolPFlagValue 布尔标志额外实现 IsBoolFlag，让 pflag 按布尔语义
// 处理裸 --name（不消耗后续参数）
type boolPFlagValue struct {
	pflagValue
}

func (v boolPFlagValue) IsBoolFlag() bool { return true }

// AddToPFlagSet 把注册表的全部标志按注册顺序挂进 pflag.FlagSet。
// 短名只有单字符时才作为 pflag shorthand 传递（pflag 的硬性限制），
// 更长的短名仍可通过本注册表自己的 Parse 使用。
func (r *Registry) AddToPFlagSet(fs *pflag.FlagSet) {
	r.VisitAll(func(f Flag) {
		shorthand := f.ShortName()
		if len(shorthand) > 1 {
			shorthand = ""
		}
		var value pflag.Value
		if f.IsBoolFlag() {
			value = boolPFlagValue{pflagValue{f: f}}
		} else {
			value = pflagValue{f: f}
		}
		pf := fs.VarPF(value, f.Name(), shorthand, f.Help())
		pf.DefValue = f.Serialize()
		if f.IsBoolFlag() {
			pf.NoOptDefVal = "true"
		}
	})
}

// WordSepNormalizeFunc 用于规范化命令行标志的名称，把 "_" 分隔符
// 转换为 "-" 分隔符。例如 "log_level" 转换为 "log-level"，
// 符合 Unix 命令行参数的命名习惯。
func WordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if strings.Contains(name, "_") {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	}
	return pflag.NormalizedName(name)
}

// WarnWordSepNormalizeFunc 与 WordSepNormalizeFunc 功能相同，
// 但对包含 "_" 的标志名发出弃用警告
func WarnWordSepNormalizeFunc(f *pflag.FlagSet, name string) pflag.NormalizedName {
	if strings.Contains(name, "_") {
		nname := strings.ReplaceAll(name, "_", "-")
		warnf("%s is DEPRECATED and will be removed in a future version. Use %s instead.", name, nname)
		return pflag.NormalizedName(nname)
	}
	return pflag.NormalizedName(name)
}

// InitFlags 初始化一个 pflag 标志集：设置标志名规范化、合并标准库
// flag.CommandLine、再把本注册表的标志挂进去
func (r *Registry) InitFlags(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(WordSepNormalizeFunc)
	fs.AddGoFlagSet(goflag.CommandLine)
	r.AddToPFlagSet(fs)
}

// PrintFlags 打印标志集中所有标志及其值（调试用）
func PrintFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(flag *pflag.Flag) {
		debugf("FLAG: --%s=%q", flag.Name, flag.Value)
	})
}
