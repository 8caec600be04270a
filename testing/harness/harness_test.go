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

package harness

import (
	"fmt"
	"hash/fnv"
	"testing"

	"github.com/maxiaolu1981/cretem/flagcore/flags"
)

// Isolate：用例内的改动在用例结束时经 t.Cleanup 撤销
func TestIsolate(t *testing.T) {
	r := flags.NewRegistry()
	name := flags.DefineString(r, "name", "default", "")

	t.Run("inner", func(t *testing.T) {
		Isolate(t, r)
		if err := r.Set("name", "mutated"); err != nil {
			t.Fatal(err)
		}
		flags.DefineInt(r, "scratch", 0, "")
	})

	if name.Value() != "default" {
		t.Errorf("子测试的改动应被撤销: %q", name.Value())
	}
	if r.HasFlag("scratch") {
		t.Error("子测试定义的标志应被摘除")
	}
}

// restoreShards 把 InShard 的判定来源恢复到测试前的状态
func restoreShards(t *testing.T) {
	t.Helper()
	saved := currentShards()
	t.Cleanup(func() {
		shardMu.Lock()
		activeShards = saved
		shardMu.Unlock()
	})
}

// 分片标志：越界组合被多标志校验器拒绝
func TestShardFlagsValidation(t *testing.T) {
	r := flags.NewRegistry()
	restoreShards(t)

	RegisterShardFlags(r)

	if _, err := r.Parse([]string{"--test.shard-index=2", "--test.total-shards=4"}); err != nil {
		t.Fatalf("合法分片参数不应失败: %v", err)
	}
	if _, err := r.Parse([]string{"--test.shard-index=4", "--test.total-shards=4"}); err == nil {
		t.Error("索引越界应被拒绝")
	}
	if _, err := r.Parse([]string{"--test.total-shards=0", "--test.shard-index=0"}); err == nil {
		t.Error("总分片数小于 1 应被拒绝")
	}
}

// InShard：未启用分片恒真；启用后按名字哈希稳定分派且覆盖完整
func TestInShardPartition(t *testing.T) {
	r := flags.NewRegistry()
	restoreShards(t)
	RegisterShardFlags(r)

	if !InShard("anything") {
		t.Error("未启用分片时应恒真")
	}

	const shards = 3
	if _, err := r.Parse([]string{fmt.Sprintf("--test.total-shards=%d", shards)}); err != nil {
		t.Fatal(err)
	}

	// 每个用例名恰好落在一个分片，分派与名字哈希一致
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("case-%d", i)
		hits := 0
		for idx := 0; idx < shards; idx++ {
			if err := r.SetAsParsed("test.shard-index", fmt.Sprintf("%d", idx)); err != nil {
				t.Fatal(err)
			}
			if InShard(name) {
				hits++
				h := fnv.New32a()
				h.Write([]byte(name))
				if int(h.Sum32())%shards != idx {
					t.Errorf("用例 %s 的分派与哈希不一致", name)
				}
			}
		}
		if hits != 1 {
			t.Errorf("用例 %s 应恰好落在一个分片，实际 %d 个", name, hits)
		}
	}
}

// 分片标志按注册表注册：换一个注册表调用要在新注册表上完成注册并切换
// InShard 的判定来源，而不是沿用首个注册表的句柄
func TestRegisterShardFlagsPerRegistry(t *testing.T) {
	restoreShards(t)
	// CI 可能注入分片环境变量，这里清空避免干扰默认值断言
	t.Setenv(shardIndexEnv, "")
	t.Setenv(totalShardsEnv, "")

	r1 := flags.NewRegistry()
	RegisterShardFlags(r1)
	// 同一注册表重复调用无副作用（重复定义会 panic，这里不应触发）
	RegisterShardFlags(r1)

	r2 := flags.NewRegistry()
	RegisterShardFlags(r2)
	if !r2.HasFlag(shardIndexFlag) || !r2.HasFlag(totalShardsFlag) {
		t.Fatal("新注册表上应注册分片标志")
	}
	if _, err := r2.Parse([]string{"--test.shard-index=1", "--test.total-shards=2"}); err != nil {
		t.Fatalf("新注册表解析分片标志失败: %v", err)
	}
	if total := shardTotal(); total != 2 {
		t.Errorf("分片总数应来自最近注册的注册表，实际 %d", total)
	}
	if idx := shardIdx(); idx != 1 {
		t.Errorf("分片索引应来自最近注册的注册表，实际 %d", idx)
	}

	// 切回 r1：判定来源跟随最近一次注册调用
	RegisterShardFlags(r1)
	if total := shardTotal(); total != 1 {
		t.Errorf("切回未解析的注册表后应回到默认总分片数 1，实际 %d", total)
	}
}

// remainingArgs 过滤 go test 自己的标志，保留注册表标志和位置参数
func TestRemainingArgsFiltering(t *testing.T) {
	cases := []struct {
		token string
		keep  bool
	}{
		{"--test.run=TestFoo", false},
		{"-test.v", false},
		{"--test.shard-index=1", true},
		{"--host=db.local", true},
		{"positional", true},
	}
	for _, c := range cases {
		name, _, _, isFlag := flags.SplitToken(c.token)
		filtered := isFlag && isGoTestFlag(name)
		if filtered == c.keep {
			t.Errorf("令牌 %q 的过滤结果错误（keep=%v）", c.token, c.keep)
		}
	}
}
