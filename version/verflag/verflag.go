// Copyright (c) 2025 马晓璐
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Package verflag
// verflag.go
// 提供版本信息相关的命令行标志（flag）处理功能，
// 支持通过命令行参数（如 --version）触发版本信息的打印并退出程序，
// 支持普通文本和原始JSON两种输出格式，依赖版本信息包和标志注册表实现。
package verflag

import (
	"fmt"
	"os"
	"strconv"

	"github.com/maxiaolu1981/cretem/flagcore/flags"
	"github.com/maxiaolu1981/cretem/flagcore/version"
)

// versionValue 自定义命令行标志类型，用于表示版本标志的三种状态
type versionValue int

// 定义版本标志的三种状态常量
const (
	VersionFalse versionValue = 0 // 未指定版本标志（默认）
	VersionTrue  versionValue = 1 // 指定 --version（打印普通版本信息）
	VersionRaw   versionValue = 2 // 指定 --version=raw（打印原始JSON格式版本信息）
)

// strRawVersion 用于标识原始格式的字符串常量
const strRawVersion string = "raw"

// versionParser 实现 flags.Parser[versionValue]，解析命令行传入的标志值
// 支持三种输入：
// - "raw" → VersionRaw（原始格式）
// - 布尔真值（true/1 等） → VersionTrue（普通格式）
// - 布尔假值（false/0 等） → VersionFalse（不打印）
type versionParser struct{}

// Parse 实现 flags.Parser 接口
func (versionParser) Parse(input string) (versionValue, error) {
	if input == strRawVersion {
		return VersionRaw, nil
	}
	boolVal, err := strconv.ParseBool(input)
	if err != nil {
		return VersionFalse, fmt.Errorf("取值应为布尔值或 %q，实际为 %q", strRawVersion, input)
	}
	if boolVal {
		return VersionTrue, nil
	}
	return VersionFalse, nil
}

// Type 实现 flags.Parser 接口，返回标志的类型名称
func (versionParser) Type() string { return "version" }

// serializeVersion 把标志值转换回可重新解析的文本表示
func serializeVersion(v versionValue) string {
	if v == VersionRaw {
		return strRawVersion
	}
	// 布尔值形式（true/false）
	return strconv.FormatBool(v == VersionTrue)
}

// Version 在指定注册表中定义一个版本标志并返回其句柄
// 标志被标记为布尔风格，因此 --version 等价于 --version=true
// 参数：
//   - r: 目标标志注册表
//   - name: 标志名称（如"version"）
//   - value: 默认值
//   - usage: 标志的帮助信息
func Version(r *flags.Registry, name string, value versionValue, usage string) *flags.TypedFlag[versionValue] {
	fl := flags.NewFlag[versionValue](versionParser{}, flags.SerializerFunc[versionValue](serializeVersion), name, "", value, usage)
	fl.MarkBoolFlag()
	if err := r.Register(fl); err != nil {
		panic(err)
	}
	return fl
}

// 定义全局版本标志的名称和默认实例
const versionFlagName = "version"

var versionFlag = Version(flags.CommandLine, versionFlagName, VersionFalse, "打印版本信息并退出。")

// AddToRegistry 将全局版本标志注册到另一个注册表，确保多组件共享同一个版本标志
func AddToRegistry(r *flags.Registry) error {
	return r.Register(versionFlag)
}

// PrintAndExitIfRequested 检查版本标志状态，若已指定则打印版本信息并退出程序
// 流程：
// 1. 若标志为VersionRaw → 打印JSON格式的原始版本信息
// 2. 若标志为VersionTrue → 打印人类可读的版本信息
// 3. 打印完成后调用os.Exit(0)退出程序
func PrintAndExitIfRequested() {
	switch versionFlag.Value() {
	case VersionRaw:
		fmt.Printf("%s\n", version.Get().ToJSON()) // 原始格式（适合机器解析）
		os.Exit(0)
	case VersionTrue:
		fmt.Printf("%s\n", version.Get()) // 普通文本格式（适合人类阅读）
		os.Exit(0)
	}
}
