// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.
//
// package flags
// registry.go
// Registry 是按名字（和短名别名）索引的标志集合，负责：
//   - 注册与冲突检查（同名/同短名 → DuplicateFlagError，除非显式允许覆盖）；
//   - 命令行解析：切分 argv、逐标志赋值、批量触发多标志校验器；
//   - 整集序列化：把非默认标志输出成可重新解析的 --name=value 行；
//   - key-flag 登记（按定义模块分组，纯帮助文本用途）；
//   - 全量快照/恢复（测试体系 flagsaver 的唯一依赖面）。
//
// 事务纪律：一次 Parse / Apply 批量里任何一步失败（未知标志、转换失败、
// 校验器拒绝），本次批量触碰过的所有标志一律回滚到批量开始前的状态，
// 不允许留下部分生效的注册表。Parsed() 只在整个解析成功后置位。
//
// 并发模型：注册和解析发生在进程启动期主 goroutine；稳态运行期支持并发
// 读（标志提交是单指针交换），不保证并发写。

package flags

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/maxiaolu1981/cretem/flagcore/errors"
	"github.com/maxiaolu1981/cretem/flagcore/json"
	"github.com/maxiaolu1981/cretem/flagcore/util/sets"
)

// multiValidator 注册表级校验器：scope 内任一标志被触碰的批量结束后调用一次，
// 入参是 scope 内全部标志的当前值
type multiValidator struct {
	scope []string
	fn    func(values map[string]any) error
}

// Registry 进程内的标志注册表。零值不可用，必须经 NewRegistry 构造。
type Registry struct {
	mu sync.RWMutex

	flags      map[string]Flag
	order      []string          // 注册顺序，序列化输出的确定性来源
	shortNames map[string]string // 短名 -> 规范名

	flagsByModule map[string][]string    // 模块 -> 该模块定义的标志（定义顺序）
	keyFlags      map[string]sets.String // 模块 -> 显式声明的 key flags

	validators []multiValidator

	parsed bool
}

// NewRegistry 构造一个空注册表
func NewRegistry() *Registry {
	return &Registry{
		flags:         make(map[string]Flag),
		shortNames:    make(map[string]string),
		flagsByModule: make(map[string][]string),
		keyFlags:      make(map[string]sets.String),
	}
}

// CommandLine 包级默认注册表，供单可执行程序的常规用法；
// 测试应构造自己的 Registry，避免跨用例泄漏。
var CommandLine = NewRegistry()

// registerOptions Register 的可选项
type registerOptions struct {
	allowOverride bool
	module        string
}

// RegisterOption 注册行为调节器
type RegisterOption func(*registerOptions)

// AllowOverride 允许同名重定义：旧标志被整体替换而不是报 DuplicateFlagError
func AllowOverride() RegisterOption {
	return func(o *registerOptions) { o.allowOverride = true }
}

// withModule 指定定义方模块（Define* 入口自动填充调用方包路径）
func withModule(m string) RegisterOption {
	return func(o *registerOptions) { o.module = m }
}

// callerModule 取调用方的包路径作为模块标识
func callerModule(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	name := fn.Name() // 形如 github.com/x/y/pkg.Caller 或 pkg.init.func1
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return name
	}
	return name[:slash+1+dot]
}

// Register 把标志插入注册表。名字和短名都必须全表唯一；
// 冲突时返回 *DuplicateFlagError，除非 AllowOverride。
func (r *Registry) Register(f Flag, opts ...RegisterOption) error {
	o := registerOptions{module: callerModule(2)}
	for _, opt := range opts {
		opt(&o)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	name := f.Name()
	if name == "" {
		return errors.New("flag name must not be empty")
	}
	old, exists := r.flags[name]
	if exists && !o.allowOverride {
		return &DuplicateFlagError{FlagName: name}
	}
	if short := f.ShortName(); short != "" {
		if canonical, ok := r.shortNames[short]; ok && canonical != name {
			return &DuplicateFlagError{FlagName: short}
		}
	}
	if exists {
		// 覆盖：摘掉旧标志的短名映射，保留原注册位置
		if oldShort := old.ShortName(); oldShort != "" {
			delete(r.shortNames, oldShort)
		}
	} else {
		r.order = append(r.order, name)
		r.flagsByModule[o.module] = append(r.flagsByModule[o.module], name)
	}
	r.flags[name] = f
	if short := f.ShortName(); short != "" {
		r.shortNames[short] = name
	}
	return nil
}

// Unregister 从注册表摘除标志（测试清理 ad hoc 标志用），标志不存在时无操作
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.flags[name]
	if !ok {
		return
	}
	delete(r.flags, name)
	if short := f.ShortName(); short != "" {
		delete(r.shortNames, short)
	}
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for m, names := range r.flagsByModule {
		for i, n := range names {
			if n == name {
				r.flagsByModule[m] = append(names[:i], names[i+1:]...)
				break
			}
		}
	}
	for _, kf := range r.keyFlags {
		kf.Delete(name)
	}
}

// Lookup 按规范名或短名查找标志
func (r *Registry) Lookup(name string) (Flag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookupLocked(name)
}

func (r *Registry) lookupLocked(name string) (Flag, error) {
	if f, ok := r.flags[name]; ok {
		return f, nil
	}
	if canonical, ok := r.shortNames[name]; ok {
		return r.flags[canonical], nil
	}
	return nil, &UnrecognizedFlagError{FlagName: name, Token: "--" + name}
}

// MustLookup 与 Lookup 相同，但标志不存在时 panic（编程错误）
func (r *Registry) MustLookup(name string) Flag {
	f, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return f
}

// HasFlag 返回名字（或短名）是否已注册
func (r *Registry) HasFlag(name string) bool {
	_, err := r.Lookup(name)
	return err == nil
}

// Get 返回标志的当前值
func (r *Registry) Get(name string) (any, error) {
	f, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return f.Get(), nil
}

// Len 返回注册的标志个数
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flags)
}

// FlagNames 返回注册顺序的标志名副本
func (r *Registry) FlagNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// VisitAll 按注册顺序遍历所有标志
func (r *Registry) VisitAll(fn func(Flag)) {
	r.mu.RLock()
	ordered := make([]Flag, 0, len(r.order))
	for _, name := range r.order {
		ordered = append(ordered, r.flags[name])
	}
	r.mu.RUnlock()
	for _, f := range ordered {
		fn(f)
	}
}

// Parsed 返回注册表是否已经成功处理过一次完整命令行
func (r *Registry) Parsed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.parsed
}

// Set 按赋值语义设置标志并触发作用域内的多标志校验器；
// 校验失败时本次赋值整体回滚
func (r *Registry) Set(name string, value any) error {
	return r.Apply(Assignment{Name: name, Value: value})
}

// SetAsParsed 按命令行语义设置标志（present 加一、usingDefault 置假）
// 并触发作用域内的多标志校验器
func (r *Registry) SetAsParsed(name, value string) error {
	return r.Apply(Assignment{Name: name, Value: value, Parsed: true})
}

// SetDefault 重设标志默认值（标志仍在默认态时当前值一并前移），
// 并触发作用域内的多标志校验器
func (r *Registry) SetDefault(name, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := r.lookupLocked(name)
	if err != nil {
		return err
	}
	undo := f.captureState()
	if err := f.SetDefault(text); err != nil {
		return err
	}
	if err := r.runMultiValidatorsLocked(sets.NewString(f.Name())); err != nil {
		undo()
		return err
	}
	return nil
}

// Assignment 一次批量赋值中的单个目标。
// Parsed 为真时 Value 必须是字符串，按命令行解析语义进入标志；
// 为假时 Value 以原生值（或字符串）直接赋值，present 不变。
type Assignment struct {
	Name   string
	Value  any
	Parsed bool
}

// Apply 原子地应用一组赋值：先做全量准入检查（目标存在、无重复目标），
// 然后逐个赋值，最后对触碰集合运行多标志校验器。
// 任何一步失败，本次已应用的赋值全部回滚后返回错误——全有或全无。
func (r *Registry) Apply(assignments ...Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// 准入：重复目标在任何变更发生前拒绝
	seen := sets.NewString()
	targets := make([]Flag, len(assignments))
	for i, a := range assignments {
		f, err := r.lookupLocked(a.Name)
		if err != nil {
			return err
		}
		if seen.Has(f.Name()) {
			return errors.Errorf("flag --%s is specified twice in the same call", f.Name())
		}
		seen.Insert(f.Name())
		targets[i] = f
	}

	touched := sets.NewString()
	undos := make([]func(), 0, len(assignments))
	rollback := func() {
		for i := len(undos) - 1; i >= 0; i-- {
			undos[i]()
		}
	}

	for i, a := range assignments {
		f := targets[i]
		undos = append(undos, f.captureState())
		touched.Insert(f.Name())
		var err error
		if a.Parsed {
			s, ok := a.Value.(string)
			if !ok {
				err = errors.Errorf("flag --%s: parsed assignment needs a string value, got %T", f.Name(), a.Value)
			} else {
				err = f.Parse(s)
			}
		} else {
			err = f.SetAny(a.Value)
		}
		if err != nil {
			rollback()
			return err
		}
	}

	if err := r.runMultiValidatorsLocked(touched); err != nil {
		rollback()
		return err
	}
	return nil
}

// Parse 解析一组命令行参数（不含程序名），返回位置参数。
//
// 支持的形式：--name=value、--name value、--name（布尔真）、--no<name>
// （布尔假）、-s/-s=v/-s v（短名）、--（其后全部视为位置参数）、
// --flagfile=path（从文件读入更多令牌）。
// 非标志令牌收进位置参数后继续扫描（GNU 风格permute）；"-" 开头但紧跟
// 数字的令牌视为位置参数（负数）。
//
// 普通标志重复出现时最后一次生效、present 每次累加；Multi 标志逐次累积。
// 任何失败都会把本次触碰过的标志全部回滚，并原样返回错误。
func (r *Registry) Parse(args []string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var positional []string
	touched := sets.NewString()
	var undos []func()
	touch := func(f Flag) {
		if !touched.Has(f.Name()) {
			touched.Insert(f.Name())
			undos = append(undos, f.captureState())
		}
	}
	rollback := func() {
		for i := len(undos) - 1; i >= 0; i-- {
			undos[i]()
		}
	}

	tokens := append([]string(nil), args...)
	seenFlagFiles := sets.NewString()

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok == "--" {
			positional = append(positional, tokens[i+1:]...)
			break
		}
		name, value, hasValue, isFlag := splitFlagToken(tok)
		if !isFlag {
			positional = append(positional, tok)
			continue
		}
		if name == flagfileFlagName {
			if !hasValue {
				if i+1 >= len(tokens) {
					rollback()
					return nil, newParseError(flagfileFlagName, "", errors.New("flag needs an argument"))
				}
				i++
				value = tokens[i]
			}
			extra, err := expandFlagFile(value, seenFlagFiles)
			if err != nil {
				rollback()
				return nil, err
			}
			// 展开的令牌插到当前位置之后，和内联写在命令行上等价
			rest := append([]string(nil), tokens[i+1:]...)
			tokens = append(append(tokens[:i+1], extra...), rest...)
			continue
		}

		f, negated, err := r.resolveLocked(name)
		if err != nil {
			rollback()
			return nil, err
		}
		switch {
		case negated:
			value, hasValue = "false", true
		case !hasValue && f.IsBoolFlag():
			// 布尔标志从不消耗后续令牌，裸写即为真
			value = "true"
		case !hasValue:
			if i+1 >= len(tokens) {
				rollback()
				return nil, newParseError(f.Name(), "", errors.New("flag needs an argument"))
			}
			i++
			value = tokens[i]
		}
		touch(f)
		if err := f.Parse(value); err != nil {
			rollback()
			return nil, err
		}
	}

	if err := r.runMultiValidatorsLocked(touched); err != nil {
		rollback()
		return nil, err
	}
	r.parsed = true
	return positional, nil
}

// resolveLocked 把令牌里的名字解析成标志。
// 精确名 → 短名 → 布尔取反（--no<name>）依次尝试；negated 标记取反命中。
func (r *Registry) resolveLocked(name string) (f Flag, negated bool, err error) {
	if f, ok := r.flags[name]; ok {
		return f, false, nil
	}
	if canonical, ok := r.shortNames[name]; ok {
		return r.flags[canonical], false, nil
	}
	if strings.HasPrefix(name, "no") {
		if f, ok := r.flags[name[2:]]; ok && f.IsBoolFlag() {
			return f, true, nil
		}
	}
	return nil, false, &UnrecognizedFlagError{FlagName: name, Token: "--" + name}
}

// SplitToken 把单个命令行令牌拆成 (名字, 值, 是否带值, 是否标志)，
// 供需要预扫描 argv 的上层（测试入口等）复用本包的令牌语法
func SplitToken(tok string) (name, value string, hasValue, isFlag bool) {
	return splitFlagToken(tok)
}

// splitFlagToken 把单个令牌拆成 (名字, 值, 是否带值, 是否标志)。
// 非标志令牌：不以 '-' 开头、单独的 "-"、以及 "-3"/"-3.14" 这类负数。
func splitFlagToken(tok string) (name, value string, hasValue, isFlag bool) {
	if !strings.HasPrefix(tok, "-") || tok == "-" {
		return "", "", false, false
	}
	body := strings.TrimPrefix(tok, "-")
	body = strings.TrimPrefix(body, "-")
	if body == "" {
		return "", "", false, false
	}
	if r := rune(body[0]); unicode.IsDigit(r) || r == '.' {
		return "", "", false, false
	}
	if eq := strings.IndexByte(body, '='); eq >= 0 {
		return body[:eq], body[eq+1:], true, true
	}
	return body, "", false, true
}

// FlagsIntoString 把所有非默认标志序列化成一行一个的 --name=value 文本，
// 按注册顺序输出。把这段文本按行切开回喂 Parse 能精确重建当前状态。
func (r *Registry) FlagsIntoString() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var sb strings.Builder
	for _, name := range r.order {
		f := r.flags[name]
		if f.UsingDefault() {
			continue
		}
		for _, arg := range f.SerializeArgs() {
			sb.WriteString(arg)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// ParseFlagsFromString 解析 FlagsIntoString 产出的文本（一行一个令牌）。
// 空行跳过；值里的空格原样保留。
func (r *Registry) ParseFlagsFromString(s string) error {
	var tokens []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		tokens = append(tokens, line)
	}
	_, err := r.Parse(tokens)
	return err
}

// DeclareKeyFlag 把标志显式声明为调用方模块的 key flag（帮助文本分组用）
func (r *Registry) DeclareKeyFlag(name string) error {
	return r.DeclareKeyFlagForModule(callerModule(2), name)
}

// DeclareKeyFlagForModule 把标志显式声明为指定模块的 key flag
func (r *Registry) DeclareKeyFlagForModule(module, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := r.lookupLocked(name)
	if err != nil {
		return err
	}
	kf, ok := r.keyFlags[module]
	if !ok {
		kf = sets.NewString()
		r.keyFlags[module] = kf
	}
	kf.Insert(f.Name())
	return nil
}

// KeyFlagsForModule 返回模块的 key flags：有显式声明时返回声明集合（字母序），
// 否则回退为该模块定义的全部标志（定义顺序）。纯帮助文本用途。
func (r *Registry) KeyFlagsForModule(module string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if kf, ok := r.keyFlags[module]; ok && kf.Len() > 0 {
		return kf.List()
	}
	return append([]string(nil), r.flagsByModule[module]...)
}

// flagDump 单个标志的调试视图
type flagDump struct {
	Value        any    `json:"value"`
	Default      any    `json:"default"`
	Type         string `json:"type"`
	Present      int    `json:"present"`
	UsingDefault bool   `json:"usingDefault"`
}

// DumpJSON 输出整个注册表的 JSON 调试视图（按名字排序），仅供诊断打印
func (r *Registry) DumpJSON() (string, error) {
	r.mu.RLock()
	dump := make(map[string]flagDump, len(r.flags))
	for name, f := range r.flags {
		dump[name] = flagDump{
			Value:        f.Get(),
			Default:      f.DefaultAny(),
			Type:         f.Type(),
			Present:      f.Present(),
			UsingDefault: f.UsingDefault(),
		}
	}
	r.mu.RUnlock()
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshal registry dump")
	}
	return string(data), nil
}

// String 返回人类可读的概览：名字排序的 "name=value" 列表
func (r *Registry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.flags))
	for name := range r.flags {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%s", name, r.flags[name].Serialize())
	}
	return strings.Join(parts, " ")
}
