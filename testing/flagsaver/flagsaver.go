// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.
//
// package flagsaver
// 测试用的标志状态保护层：用例在注册表上随意改值，结束后一把恢复。
//
// 三种用法：
//   - Save + defer restore()：裸事务，用例自己改值；
//   - Override(r, 覆盖...)：先存档再批量覆盖，返回恢复函数；
//   - Do(r, fn, 覆盖...)：覆盖下运行回调，回调返回（或 panic）后自动恢复。
//
// 恢复是全量的：覆盖过的值、用例期间定义的新标志、追加的校验器、
// parsed 状态全部回到存档时刻。覆盖列表里同一个标志出现两次是用例
// 写错了，在任何值被改动之前整体拒绝。
package flagsaver

import (
	"github.com/maxiaolu1981/cretem/flagcore/errors"
	"github.com/maxiaolu1981/cretem/flagcore/flags"
	"github.com/maxiaolu1981/cretem/flagcore/util/sets"
)

// FlagOverride 一个待覆盖的标志目标
type FlagOverride struct {
	name   string
	value  any
	parsed bool
}

// Set 以赋值语义覆盖：present 不变，value 是原生值或可解析文本
func Set(name string, value any) FlagOverride {
	return FlagOverride{name: name, value: value}
}

// AsParsed 以命令行语义覆盖：present 加一，value 按标志的解析器转换
func AsParsed(name, value string) FlagOverride {
	return FlagOverride{name: name, value: value, parsed: true}
}

// FromHolder 以赋值语义覆盖一个类型化句柄指向的标志
func FromHolder[T any](h *flags.Holder[T], value T) FlagOverride {
	return FlagOverride{name: h.Name(), value: value}
}

// Save 存档整个注册表，返回恢复函数。典型用法：
//
//	defer flagsaver.Save(r)()
func Save(r *flags.Registry) (restore func()) {
	snap := r.SaveFlagValues()
	return snap.Restore
}

// Apply 把覆盖列表应用到注册表（不存档）。
// 同一标志出现两次、目标不存在、值非法都会整体拒绝，注册表保持原状。
func Apply(r *flags.Registry, overrides ...FlagOverride) error {
	seen := sets.NewString()
	assignments := make([]flags.Assignment, len(overrides))
	for i, ov := range overrides {
		f, err := r.Lookup(ov.name)
		if err != nil {
			return err
		}
		if seen.Has(f.Name()) {
			return errors.Errorf("flag --%s is specified twice in the override list", f.Name())
		}
		seen.Insert(f.Name())
		assignments[i] = flags.Assignment{Name: ov.name, Value: ov.value, Parsed: ov.parsed}
	}
	return r.Apply(assignments...)
}

// Override 存档注册表、应用覆盖列表，返回恢复函数。
// 覆盖失败时不产生任何变更，返回错误。
func Override(r *flags.Registry, overrides ...FlagOverride) (restore func(), err error) {
	snap := r.SaveFlagValues()
	if err := Apply(r, overrides...); err != nil {
		return nil, err
	}
	return snap.Restore, nil
}

// Do 在覆盖生效的环境里运行 fn，fn 返回后（包括 panic 传播路径）恢复注册表
func Do(r *flags.Registry, fn func(), overrides ...FlagOverride) error {
	restore, err := Override(r, overrides...)
	if err != nil {
		return err
	}
	defer restore()
	fn()
	return nil
}
