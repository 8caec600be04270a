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

package flags

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// 同名重复注册被拒绝；AllowOverride 显式放行
func TestRegistryDuplicateDefinition(t *testing.T) {
	r := NewRegistry()
	DefineString(r, "name", "a", "")

	err := r.Register(NewFlag(NewStringParser(), NewStringSerializer(), "name", "", "b", ""))
	var dup *DuplicateFlagError
	if !errors.As(err, &dup) {
		t.Fatalf("重名注册应返回 DuplicateFlagError，实际 %v", err)
	}
	if dup.FlagName != "name" {
		t.Errorf("错误应携带冲突的标志名，实际 %q", dup.FlagName)
	}

	if err := r.Register(NewFlag(NewStringParser(), NewStringSerializer(), "name", "", "b", ""), AllowOverride()); err != nil {
		t.Fatalf("AllowOverride 下覆盖注册不应失败: %v", err)
	}
	v, _ := r.Get("name")
	if v != "b" {
		t.Errorf("覆盖后默认值应为 b，实际 %v", v)
	}
}

// 基本解析：--name=value、--name value、布尔裸写、位置参数
func TestRegistryParseForms(t *testing.T) {
	r := NewRegistry()
	host := DefineString(r, "host", "localhost", "")
	port := DefineInt(r, "port", 80, "")
	verbose := DefineBool(r, "verbose", false, "")

	positional, err := r.Parse([]string{"--host=db.local", "--port", "8080", "input.txt", "--verbose", "output.txt"})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}

	if host.Value() != "db.local" {
		t.Errorf("host 期望 db.local，实际 %q", host.Value())
	}
	if port.Value() != 8080 {
		t.Errorf("port 期望 8080，实际 %d", port.Value())
	}
	if !verbose.Value() {
		t.Error("裸写 --verbose 应解析为 true")
	}
	if len(positional) != 2 || positional[0] != "input.txt" || positional[1] != "output.txt" {
		t.Errorf("位置参数错误: %v", positional)
	}
	if !r.Parsed() {
		t.Error("成功解析后 Parsed 应为真")
	}
}

// 布尔标志从不消耗后续令牌；--noname 取反
func TestRegistryBoolSemantics(t *testing.T) {
	r := NewRegistry()
	debug := DefineBool(r, "debug", true, "")

	positional, err := r.Parse([]string{"--debug", "false"})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if !debug.Value() {
		t.Error("裸写 --debug 应为 true，后面的 false 是位置参数")
	}
	if len(positional) != 1 || positional[0] != "false" {
		t.Errorf("\"false\" 应成为位置参数: %v", positional)
	}

	if _, err := r.Parse([]string{"--nodebug"}); err != nil {
		t.Fatalf("取反形式解析失败: %v", err)
	}
	if debug.Value() {
		t.Error("--nodebug 应将值置为 false")
	}
}

// 名字以 no 开头的标志优先精确匹配
func TestRegistryNoPrefixExactMatchWins(t *testing.T) {
	r := NewRegistry()
	notify := DefineBool(r, "notify", false, "")
	tify := DefineBool(r, "tify", true, "")

	if _, err := r.Parse([]string{"--notify"}); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if !notify.Value() {
		t.Error("--notify 应命中精确名 notify 并置真")
	}
	if !tify.Value() {
		t.Error("tify 不应被 --notify 影响")
	}
}

// 普通标志重复出现：最后一次生效，present 按出现次数累加
func TestRegistryLastOccurrenceWins(t *testing.T) {
	r := NewRegistry()
	level := DefineString(r, "level", "info", "")

	if _, err := r.Parse([]string{"--level=debug", "--level=warn", "--level=error"}); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if level.Value() != "error" {
		t.Errorf("最后一次出现应生效，实际 %q", level.Value())
	}
	if level.Present() != 3 {
		t.Errorf("present 应为 3，实际 %d", level.Present())
	}
}

// Multi 标志逐次累积；序列化逐元素展开后可精确往返
func TestRegistryMultiFlagAccumulates(t *testing.T) {
	r := NewRegistry()
	tags := DefineMultiString(r, "tag", nil, "")

	if _, err := r.Parse([]string{"--tag=a", "--tag=b", "--tag=c,d"}); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	got := tags.Value()
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("期望 %v，实际 %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("期望 %v，实际 %v", want, got)
		}
	}
	if tags.Present() != 3 {
		t.Errorf("present 应为出现次数 3，实际 %d", tags.Present())
	}

	args := tags.Flag().SerializeArgs()
	if len(args) != 4 || args[0] != "--tag=a" || args[3] != "--tag=d" {
		t.Errorf("Multi 标志应逐元素序列化: %v", args)
	}
}

// 未注册标志：解析整体失败并且不留任何部分生效
func TestRegistryUnknownFlagAtomicity(t *testing.T) {
	r := NewRegistry()
	host := DefineString(r, "host", "localhost", "")

	_, err := r.Parse([]string{"--host=db.local", "--bogus=1"})
	var unknown *UnrecognizedFlagError
	if !errors.As(err, &unknown) {
		t.Fatalf("应返回 UnrecognizedFlagError，实际 %v", err)
	}
	if unknown.FlagName != "bogus" {
		t.Errorf("错误应携带未知标志名，实际 %q", unknown.FlagName)
	}
	if host.Value() != "localhost" {
		t.Errorf("失败的解析不应留下部分生效：host=%q", host.Value())
	}
	if host.Present() != 0 {
		t.Errorf("失败的解析不应累计 present：%d", host.Present())
	}
	if r.Parsed() {
		t.Error("失败后 Parsed 不应置位")
	}
}

// 值转换失败同样整体回滚
func TestRegistryParseErrorRollsBack(t *testing.T) {
	r := NewRegistry()
	port := DefineInt(r, "port", 80, "")
	host := DefineString(r, "host", "localhost", "")

	_, err := r.Parse([]string{"--host=db.local", "--port=not-a-number"})
	var illegal *IllegalFlagValueError
	if !errors.As(err, &illegal) {
		t.Fatalf("应返回 IllegalFlagValueError，实际 %v", err)
	}
	if host.Value() != "localhost" || port.Value() != 80 {
		t.Errorf("回滚不彻底: host=%q port=%d", host.Value(), port.Value())
	}
}

// "--" 之后全部是位置参数；负数令牌不当成标志
func TestRegistrySeparatorAndNegativeNumbers(t *testing.T) {
	r := NewRegistry()
	DefineInt(r, "n", 0, "")

	positional, err := r.Parse([]string{"--n=1", "-3", "--", "--n=2", "-x"})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	want := []string{"-3", "--n=2", "-x"}
	if len(positional) != len(want) {
		t.Fatalf("位置参数错误: %v", positional)
	}
	for i := range want {
		if positional[i] != want[i] {
			t.Fatalf("位置参数错误: %v", positional)
		}
	}
	if v, _ := r.Get("n"); v != 1 {
		t.Errorf("-- 之后的 --n=2 不应生效，实际 %v", v)
	}
}

// 短名：-s 与 --long 指向同一标志，短名冲突在注册期拒绝
func TestRegistryShortNames(t *testing.T) {
	r := NewRegistry()
	f := NewFlag(NewStringParser(), NewStringSerializer(), "output", "o", "-", "")
	if err := r.Register(f); err != nil {
		t.Fatalf("注册失败: %v", err)
	}

	if _, err := r.Parse([]string{"-o=result.txt"}); err != nil {
		t.Fatalf("短名解析失败: %v", err)
	}
	if v, _ := r.Get("output"); v != "result.txt" {
		t.Errorf("短名赋值未生效: %v", v)
	}

	err := r.Register(NewFlag(NewStringParser(), NewStringSerializer(), "other", "o", "", ""))
	var dup *DuplicateFlagError
	if !errors.As(err, &dup) {
		t.Fatalf("短名冲突应返回 DuplicateFlagError，实际 %v", err)
	}
}

// 序列化整个注册表再回喂，精确重建非默认状态
func TestRegistryFlagsIntoStringRoundTrip(t *testing.T) {
	build := func() *Registry {
		r := NewRegistry()
		DefineString(r, "host", "localhost", "")
		DefineInt(r, "port", 80, "")
		DefineBool(r, "tls", false, "")
		DefineMultiString(r, "tag", nil, "")
		DefineString(r, "spacey", "", "")
		return r
	}

	src := build()
	if _, err := src.Parse([]string{"--port=443", "--tls", "--tag=a", "--tag=b", "--spacey=hello world"}); err != nil {
		t.Fatalf("解析失败: %v", err)
	}

	text := src.FlagsIntoString()
	if strings.Contains(text, "--host") {
		t.Error("默认态的标志不应出现在序列化输出里")
	}

	dst := build()
	if err := dst.ParseFlagsFromString(text); err != nil {
		t.Fatalf("回喂失败: %v\n%s", err, text)
	}
	for _, name := range []string{"port", "tls", "spacey"} {
		a, _ := src.Get(name)
		b, _ := dst.Get(name)
		if fmt.Sprint(a) != fmt.Sprint(b) {
			t.Errorf("往返后 %s 不一致: %v != %v", name, a, b)
		}
	}
	tags, _ := dst.Get("tag")
	if fmt.Sprint(tags) != "[a b]" {
		t.Errorf("Multi 标志往返失败: %v", tags)
	}
	if v, _ := dst.Get("spacey"); v != "hello world" {
		t.Errorf("值里的空格应原样往返: %v", v)
	}
}

// Apply 批量赋值：重复目标在任何变更前拒绝，失败全量回滚
func TestRegistryApplyAllOrNothing(t *testing.T) {
	r := NewRegistry()
	a := DefineInt(r, "a", 1, "")
	b := DefineInt(r, "b", 2, "")

	err := r.Apply(
		Assignment{Name: "a", Value: 10},
		Assignment{Name: "a", Value: 20},
	)
	if err == nil {
		t.Fatal("重复目标应被拒绝")
	}
	if a.Value() != 1 {
		t.Errorf("拒绝发生在任何变更之前，a 应保持 1，实际 %d", a.Value())
	}

	err = r.Apply(
		Assignment{Name: "a", Value: 10},
		Assignment{Name: "b", Value: "oops", Parsed: true},
	)
	if err == nil {
		t.Fatal("非法值应使整个批量失败")
	}
	if a.Value() != 1 || b.Value() != 2 {
		t.Errorf("批量失败应全量回滚: a=%d b=%d", a.Value(), b.Value())
	}
}

// SetDefault 经注册表：默认态的标志当前值跟随前移
func TestRegistrySetDefault(t *testing.T) {
	r := NewRegistry()
	timeout := DefineInt(r, "timeout", 30, "")

	if err := r.SetDefault("timeout", "60"); err != nil {
		t.Fatalf("SetDefault 失败: %v", err)
	}
	if timeout.Value() != 60 || !timeout.UsingDefault() {
		t.Errorf("默认态标志应跟随新默认值: value=%d usingDefault=%v", timeout.Value(), timeout.UsingDefault())
	}
}

// 快照恢复：值、parsed、期间定义的新标志、追加的校验器全部回卷
func TestRegistrySnapshotRestore(t *testing.T) {
	r := NewRegistry()
	host := DefineString(r, "host", "localhost", "")

	snap := r.SaveFlagValues()

	if _, err := r.Parse([]string{"--host=db.local"}); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	DefineInt(r, "later", 0, "")
	if err := r.RegisterValidator("host", func(any) error { return nil }); err != nil {
		t.Fatalf("注册校验器失败: %v", err)
	}

	snap.Restore()

	if host.Value() != "localhost" || host.Present() != 0 {
		t.Errorf("值未恢复: %q present=%d", host.Value(), host.Present())
	}
	if r.HasFlag("later") {
		t.Error("快照后定义的标志应被摘除")
	}
	if r.Parsed() {
		t.Error("parsed 状态应恢复")
	}
	if host.Flag().ValidatorCount() != 0 {
		t.Error("快照后追加的校验器应被丢弃")
	}

	// 快照可重复恢复
	if _, err := r.Parse([]string{"--host=again"}); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	snap.Restore()
	if host.Value() != "localhost" {
		t.Error("快照应支持重复恢复")
	}
}

// SaveFlags 只回卷标志状态，不摘除新标志
func TestRegistrySaveFlagsScoped(t *testing.T) {
	r := NewRegistry()
	a := DefineInt(r, "a", 1, "")
	b := DefineInt(r, "b", 2, "")

	restore, err := r.SaveFlags("a")
	if err != nil {
		t.Fatalf("SaveFlags 失败: %v", err)
	}
	if err := r.Set("a", 10); err != nil {
		t.Fatal(err)
	}
	if err := r.Set("b", 20); err != nil {
		t.Fatal(err)
	}
	DefineInt(r, "later", 0, "")

	restore()
	if a.Value() != 1 {
		t.Errorf("a 应恢复为 1，实际 %d", a.Value())
	}
	if b.Value() != 20 {
		t.Errorf("作用域外的 b 不应被恢复，实际 %d", b.Value())
	}
	if !r.HasFlag("later") {
		t.Error("SaveFlags 不触碰注册表结构，新标志应保留")
	}
}

// key flags：显式声明返回声明集合，否则回退为模块定义的全部标志
func TestRegistryKeyFlags(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewFlag(NewIntParser(), NewIntSerializer(), "one", "", 1, ""), withModule("mod/a")); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(NewFlag(NewIntParser(), NewIntSerializer(), "two", "", 2, ""), withModule("mod/a")); err != nil {
		t.Fatal(err)
	}

	got := r.KeyFlagsForModule("mod/a")
	if len(got) != 2 {
		t.Fatalf("无显式声明时应回退为模块全部标志: %v", got)
	}

	if err := r.DeclareKeyFlagForModule("mod/a", "two"); err != nil {
		t.Fatal(err)
	}
	got = r.KeyFlagsForModule("mod/a")
	if len(got) != 1 || got[0] != "two" {
		t.Errorf("显式声明后应只返回声明集合: %v", got)
	}
}

// Unregister 摘除标志后名字可复用
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()
	DefineString(r, "temp", "x", "")
	r.Unregister("temp")

	if r.HasFlag("temp") {
		t.Fatal("摘除后不应再能查到")
	}
	DefineString(r, "temp", "y", "")
	if v, _ := r.Get("temp"); v != "y" {
		t.Errorf("摘除后名字应可复用: %v", v)
	}
}

// DumpJSON 输出可供诊断的完整视图
func TestRegistryDumpJSON(t *testing.T) {
	r := NewRegistry()
	DefineInt(r, "port", 80, "")
	if _, err := r.Parse([]string{"--port=443"}); err != nil {
		t.Fatal(err)
	}

	out, err := r.DumpJSON()
	if err != nil {
		t.Fatalf("DumpJSON 失败: %v", err)
	}
	for _, substr := range []string{`"port"`, `"value": 443`, `"default": 80`, `"present": 1`} {
		if !strings.Contains(out, substr) {
			t.Errorf("输出缺少 %s:\n%s", substr, out)
		}
	}
}

// GetTyped：类型匹配返回原生值，不匹配报错而不是 panic
func TestRegistryGetTyped(t *testing.T) {
	r := NewRegistry()
	DefineInt(r, "port", 80, "")

	v, err := GetTyped[int](r, "port")
	if err != nil || v != 80 {
		t.Errorf("GetTyped[int] 应返回 80，实际 %d（err=%v）", v, err)
	}
	if _, err := GetTyped[string](r, "port"); err == nil {
		t.Error("类型不匹配应报错")
	}
}

// 枚举定义：帮助文本带合法值前缀；非法默认值在定义期 panic
func TestDefineEnum(t *testing.T) {
	r := NewRegistry()
	fruit := DefineEnum(r, "fruit", "apple", []string{"apple", "banana"}, false, "选择水果")

	help := fruit.Flag().Help()
	if !strings.HasPrefix(help, "<apple|banana>: ") {
		t.Errorf("枚举帮助文本应带合法值前缀，实际 %q", help)
	}

	if _, err := r.Parse([]string{"--fruit=BANANA"}); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if fruit.Value() != "banana" {
		t.Errorf("应折算成规范写法: %q", fruit.Value())
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("空候选集合应在定义期 panic")
			}
		}()
		DefineEnum(r, "broken", "", nil, false, "")
	}()
}

// 默认值不在取值全集里的枚举标志应在定义期被拒绝，而不是等到序列化再解析时才失败
func TestDefineEnumDefaultValidation(t *testing.T) {
	t.Run("枚举默认值越界panic", func(t *testing.T) {
		r := NewRegistry()
		defer func() {
			msg, ok := recover().(string)
			if !ok {
				t.Fatal("越界默认值应在定义期 panic")
			}
			if !strings.Contains(msg, "purple") {
				t.Errorf("panic 信息应点名越界默认值，实际 %q", msg)
			}
		}()
		DefineEnum(r, "color", "purple", []string{"red", "green"}, false, "颜色")
	})

	t.Run("枚举默认值折算成规范写法", func(t *testing.T) {
		r := NewRegistry()
		color := DefineEnum(r, "color", "RED", []string{"red", "green"}, false, "颜色")
		if color.Value() != "red" {
			t.Errorf("不区分大小写时默认值应折算成全集里的写法，实际 %q", color.Value())
		}
		// 序列化结果必须能被同一标志重新解析（幂等律）
		if err := color.Flag().Parse(color.Flag().Serialize()); err != nil {
			t.Fatalf("默认值序列化后重新解析失败: %v", err)
		}
	})

	t.Run("映射枚举默认值越界panic", func(t *testing.T) {
		type weight int
		r := NewRegistry()
		defer func() {
			if recover() == nil {
				t.Fatal("不属于任何成员的默认值应在定义期 panic")
			}
		}()
		DefineEnumClass(r, "weight", weight(99), map[string]weight{"LIGHT": 1, "HEAVY": 2}, false, "重量档位")
	})

	t.Run("映射枚举合法默认值通过", func(t *testing.T) {
		type weight int
		r := NewRegistry()
		w := DefineEnumClass(r, "weight", weight(2), map[string]weight{"LIGHT": 1, "HEAVY": 2}, false, "重量档位")
		if w.Value() != 2 {
			t.Errorf("默认值错误，实际 %v", w.Value())
		}
		if err := w.Flag().Parse(w.Flag().Serialize()); err != nil {
			t.Fatalf("默认值序列化后重新解析失败: %v", err)
		}
	})
}
