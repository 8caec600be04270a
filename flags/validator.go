// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.
//
// package flags
// validator.go
// 校验器引擎。单标志校验器挂在标志自身，值变更（解析、赋值、换默认值）
// 前拦截；多标志校验器挂在注册表，批量赋值结束后对作用域快照统一裁决。
// 两类校验器注册即生效：注册动作本身会用当前值立即验证一次，
// 当前值不合法时注册调用返回错误（校验器保持挂载，与后续赋值行为一致）。

package flags

import (
	"github.com/maxiaolu1981/cretem/flagcore/errors"
	"github.com/maxiaolu1981/cretem/flagcore/util/sets"
)

// RegisterValidator 给标志追加单标志校验器。
// fn 收到标志的当前候选值（原生类型），返回 nil 表示接受；
// 返回的错误文本会进入 "Flag validation failed: ..." 消息。
func (r *Registry) RegisterValidator(name string, fn func(value any) error) error {
	if fn == nil {
		return errors.New("validator function must not be nil")
	}
	f, err := r.Lookup(name)
	if err != nil {
		return err
	}
	f.appendAnyValidator(fn)
	return f.validateCurrent()
}

// RegisterMultiFlagsValidator 注册跨标志约束。names 必须全部已注册；
// 批量赋值触碰到其中任一标志时，fn 以 {名字: 当前值} 映射被调用一次。
// 注册时立即用当前值验证，失败则返回校验错误（校验器保持挂载）。
func (r *Registry) RegisterMultiFlagsValidator(fn func(values map[string]any) error, names ...string) error {
	if fn == nil {
		return errors.New("validator function must not be nil")
	}
	if len(names) == 0 {
		return errors.New("multi-flags validator needs at least one flag name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	canonical := make([]string, len(names))
	for i, name := range names {
		f, err := r.lookupLocked(name)
		if err != nil {
			return err
		}
		canonical[i] = f.Name()
	}
	r.validators = append(r.validators, multiValidator{scope: canonical, fn: fn})
	return r.runValidatorLocked(r.validators[len(r.validators)-1])
}

// runMultiValidatorsLocked 对触碰集合命中的每个多标志校验器各运行一次
func (r *Registry) runMultiValidatorsLocked(touched sets.String) error {
	if touched.Len() == 0 {
		return nil
	}
	for _, v := range r.validators {
		if !touched.HasAny(v.scope...) {
			continue
		}
		if err := r.runValidatorLocked(v); err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) runValidatorLocked(v multiValidator) error {
	values := make(map[string]any, len(v.scope))
	for _, name := range v.scope {
		values[name] = r.flags[name].Get()
	}
	if err := v.fn(values); err != nil {
		return newValidationError(v.scope, "", err)
	}
	return nil
}
