// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.
//
// package parameterized
// 参数化测试的薄胶水：把一份测试逻辑在一组参数记录上逐条展开成独立的
// 子测试（t.Run），每条记录有确定、互不相同的子测试名。
//
// 记录名的生成规则：
//   - Named/NamedCase 显式命名的记录用显式名；
//   - 其余记录用参数值的字符串表示；多条记录落到同一个名字时，
//     在名字后追加 "#序号" 保证唯一（t.Run 本身也会去重，
//     这里先行消歧是为了让失败输出里的名字稳定可读）。
package parameterized

import (
	"fmt"
	"strings"
	"testing"
)

// TestCase 一条参数记录。Name 为空时由参数值推导。
type TestCase[A any] struct {
	Name string
	Args A
}

// Case 构造一条匿名记录
func Case[A any](args A) TestCase[A] {
	return TestCase[A]{Args: args}
}

// Named 构造一条显式命名的记录
func Named[A any](name string, args A) TestCase[A] {
	return TestCase[A]{Name: name, Args: args}
}

// Cases 把一组参数值包装成匿名记录列表
func Cases[A any](args ...A) []TestCase[A] {
	cases := make([]TestCase[A], len(args))
	for i, a := range args {
		cases[i] = TestCase[A]{Args: a}
	}
	return cases
}

// Run 把每条记录展开成一个子测试
func Run[A any](t *testing.T, cases []TestCase[A], fn func(t *testing.T, args A)) {
	t.Helper()
	names := assignNames(cases)
	for i, tc := range cases {
		args := tc.Args
		t.Run(names[i], func(t *testing.T) {
			fn(t, args)
		})
	}
}

// assignNames 给每条记录分配唯一的子测试名
func assignNames[A any](cases []TestCase[A]) []string {
	names := make([]string, len(cases))
	used := make(map[string]int, len(cases))
	for i, tc := range cases {
		name := tc.Name
		if name == "" {
			name = caseName(tc.Args)
		}
		if n, dup := used[name]; dup {
			used[name] = n + 1
			name = fmt.Sprintf("%s#%d", name, n)
		} else {
			used[name] = 1
		}
		names[i] = name
	}
	return names
}

// caseName 由参数值推导记录名，空白折叠成下划线避免子测试名被转义
func caseName(args any) string {
	name := fmt.Sprintf("%v", args)
	name = strings.TrimSpace(name)
	if name == "" {
		return "empty"
	}
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' {
			return '_'
		}
		return r
	}, name)
}
