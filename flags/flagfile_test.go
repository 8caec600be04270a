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
	"os"
	"path/filepath"
	"testing"
)

func writeFlagFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入 flagfile 失败: %v", err)
	}
	return path
}

// 基本展开：一行一个令牌，注释和空行跳过，与命令行其余部分合并解析
func TestFlagFileExpansion(t *testing.T) {
	dir := t.TempDir()
	path := writeFlagFile(t, dir, "base.flags", `
# 生产环境配置
--host=db.local

--port=5432
`)

	r := NewRegistry()
	host := DefineString(r, "host", "localhost", "")
	port := DefineInt(r, "port", 80, "")
	DefineBool(r, "tls", false, "")

	positional, err := r.Parse([]string{"--flagfile=" + path, "--tls", "extra"})
	if err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if host.Value() != "db.local" || port.Value() != 5432 {
		t.Errorf("文件内标志未生效: host=%q port=%d", host.Value(), port.Value())
	}
	if len(positional) != 1 || positional[0] != "extra" {
		t.Errorf("位置参数错误: %v", positional)
	}
}

// 命令行上靠后的赋值覆盖文件里的赋值（展开等价于内联）
func TestFlagFileLaterOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFlagFile(t, dir, "base.flags", "--port=1000\n")

	r := NewRegistry()
	port := DefineInt(r, "port", 80, "")

	if _, err := r.Parse([]string{"--flagfile=" + path, "--port=2000"}); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if port.Value() != 2000 {
		t.Errorf("命令行靠后的赋值应覆盖文件: %d", port.Value())
	}
	if port.Present() != 2 {
		t.Errorf("两处出现都应计数: %d", port.Present())
	}
}

// 嵌套 flagfile 逐层展开
func TestFlagFileNesting(t *testing.T) {
	dir := t.TempDir()
	inner := writeFlagFile(t, dir, "inner.flags", "--b=2\n")
	outer := writeFlagFile(t, dir, "outer.flags", "--a=1\n--flagfile="+inner+"\n")

	r := NewRegistry()
	a := DefineInt(r, "a", 0, "")
	b := DefineInt(r, "b", 0, "")

	if _, err := r.Parse([]string{"--flagfile=" + outer}); err != nil {
		t.Fatalf("解析失败: %v", err)
	}
	if a.Value() != 1 || b.Value() != 2 {
		t.Errorf("嵌套展开失败: a=%d b=%d", a.Value(), b.Value())
	}
}

// 循环引用被截断并报错，不会死循环
func TestFlagFileCycleDetection(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.flags")
	pathB := filepath.Join(dir, "b.flags")
	writeFlagFile(t, dir, "a.flags", "--flagfile="+pathB+"\n")
	writeFlagFile(t, dir, "b.flags", "--flagfile="+pathA+"\n")

	r := NewRegistry()
	DefineInt(r, "x", 0, "")

	_, err := r.Parse([]string{"--flagfile=" + pathA})
	if err == nil {
		t.Fatal("循环引用应报错")
	}
}

// 文件不存在：解析整体失败并回滚已生效的赋值
func TestFlagFileMissing(t *testing.T) {
	r := NewRegistry()
	host := DefineString(r, "host", "localhost", "")

	_, err := r.Parse([]string{"--host=changed", "--flagfile=/nonexistent/path.flags"})
	if err == nil {
		t.Fatal("文件不存在应报错")
	}
	if host.Value() != "localhost" {
		t.Errorf("失败应回滚已生效的赋值: %q", host.Value())
	}
}
