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

package verflag

import (
	"testing"

	"github.com/maxiaolu1981/cretem/flagcore/flags"
	"github.com/stretchr/testify/assert"
)

// newVersionRegistry 在独立注册表中定义版本标志，避免污染全局 CommandLine
func newVersionRegistry(t *testing.T) (*flags.Registry, *flags.TypedFlag[versionValue]) {
	t.Helper()
	r := flags.NewRegistry()
	fl := Version(r, versionFlagName, VersionFalse, "打印版本信息并退出。")
	return r, fl
}

// TestVersionFlagParse 验证版本标志的三种状态解析
func TestVersionFlagParse(t *testing.T) {
	t.Run("默认值为不打印", func(t *testing.T) {
		_, fl := newVersionRegistry(t)
		assert.Equal(t, VersionFalse, fl.Value())
		assert.Equal(t, 0, fl.Present())
	})

	t.Run("无取值等价于true", func(t *testing.T) {
		r, fl := newVersionRegistry(t)
		_, err := r.Parse([]string{"--version"})
		assert.NoError(t, err)
		assert.Equal(t, VersionTrue, fl.Value())
		assert.Equal(t, 1, fl.Present())
	})

	t.Run("raw取值", func(t *testing.T) {
		r, fl := newVersionRegistry(t)
		_, err := r.Parse([]string{"--version=raw"})
		assert.NoError(t, err)
		assert.Equal(t, VersionRaw, fl.Value())
	})

	t.Run("否定形式", func(t *testing.T) {
		r, fl := newVersionRegistry(t)
		_, err := r.Parse([]string{"--noversion"})
		assert.NoError(t, err)
		assert.Equal(t, VersionFalse, fl.Value())
		assert.Equal(t, 1, fl.Present())
	})

	t.Run("非法取值报错", func(t *testing.T) {
		r, fl := newVersionRegistry(t)
		_, err := r.Parse([]string{"--version=bogus"})
		assert.Error(t, err)
		assert.Equal(t, VersionFalse, fl.Value(), "解析失败后应保持默认值")
	})
}

// TestVersionFlagSerialize 验证三种状态的序列化文本可往返解析
func TestVersionFlagSerialize(t *testing.T) {
	cases := []struct {
		name     string
		args     []string
		expected string
	}{
		{"true序列化为布尔形式", []string{"--version"}, "--version"},
		{"false序列化为否定形式", []string{"--version=false"}, "--noversion"},
		{"raw序列化为显式取值", []string{"--version=raw"}, "--version=raw"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, fl := newVersionRegistry(t)
			_, err := r.Parse(tc.args)
			assert.NoError(t, err)
			assert.Equal(t, []string{tc.expected}, fl.SerializeArgs())
		})
	}
}

// TestAddToRegistry 验证全局版本标志可被多个注册表共享
func TestAddToRegistry(t *testing.T) {
	r := flags.NewRegistry()
	assert.NoError(t, AddToRegistry(r))

	// 同名重复注册应报错
	err := AddToRegistry(r)
	assert.Error(t, err)
}
