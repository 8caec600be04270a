// Copyright 2025 马晓璐 <15940995655@13..com>. All rights reserved.
// Use of this source code is governed by a MIT style
// license that can be found in the LICENSE file.
//
// package harness
// 测试入口胶水：让使用标志注册表的测试二进制在 TestMain 里一次性
// 完成命令行解析，并提供用例级的注册表隔离和分片执行支持。
//
// 分片：大体量测试套件可以切成 N 片并行跑。分片参数既可以走命令行
// （--test.shard-index/--test.total-shards），也可以走同名环境变量
// （TEST_SHARD_INDEX/TEST_TOTAL_SHARDS，CI 里常见），命令行优先。
// 用例归属哪一片由名字的 FNV 哈希决定，与执行顺序无关。
package harness

import (
	"fmt"
	"hash/fnv"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/maxiaolu1981/cretem/flagcore/flags"
	"github.com/maxiaolu1981/cretem/flagcore/log"
	"github.com/maxiaolu1981/cretem/flagcore/testing/flagsaver"
)

const (
	shardIndexFlag  = "test.shard-index"
	totalShardsFlag = "test.total-shards"

	shardIndexEnv  = "TEST_SHARD_INDEX"
	totalShardsEnv = "TEST_TOTAL_SHARDS"
)

// shardHolders 一个注册表上定义的分片标志句柄
type shardHolders struct {
	index *flags.Holder[int]
	total *flags.Holder[int]
}

var (
	shardMu sync.Mutex
	// shardsByRegistry 每个注册表只注册一次分片标志
	shardsByRegistry = map[*flags.Registry]*shardHolders{}
	// activeShards 最近一次 RegisterShardFlags 作用的注册表的句柄，
	// InShard 按它判定分片归属
	activeShards *shardHolders
)

// RegisterShardFlags 在注册表上定义分片标志。Main 会自动调用；
// 自带 TestMain 的测试二进制也可以单独使用。同一注册表重复调用无副作用，
// 换一个注册表调用会在新注册表上再注册一份并切换 InShard 的判定来源。
func RegisterShardFlags(r *flags.Registry) {
	shardMu.Lock()
	defer shardMu.Unlock()
	sh, ok := shardsByRegistry[r]
	if !ok {
		sh = &shardHolders{
			index: flags.DefineInt(r, shardIndexFlag, 0, "Zero-based index of this test shard."),
			total: flags.DefineInt(r, totalShardsFlag, 1, "Total number of test shards; 1 disables sharding."),
		}
		if err := r.RegisterMultiFlagsValidator(func(values map[string]any) error {
			idx := values[shardIndexFlag].(int)
			total := values[totalShardsFlag].(int)
			if total < 1 {
				return fmt.Errorf("total shards must be at least 1, got %d", total)
			}
			if idx < 0 || idx >= total {
				return fmt.Errorf("shard index %d out of range [0, %d)", idx, total)
			}
			return nil
		}, shardIndexFlag, totalShardsFlag); err != nil {
			panic(err)
		}
		shardsByRegistry[r] = sh
	}
	activeShards = sh
}

func currentShards() *shardHolders {
	shardMu.Lock()
	defer shardMu.Unlock()
	return activeShards
}

// Main 测试二进制的标准入口：解析命令行里的注册表标志后运行全部测试，
// 结束时刷新日志缓冲再退出。
//
//	func TestMain(m *testing.M) { harness.Main(m, flags.CommandLine) }
//
// testing 包自己的 -test.* 标志已经被 go test 吃掉，这里看到的
// os.Args 剩余部分只含注册表标志和位置参数；解析失败按用法错误退出。
func Main(m *testing.M, r *flags.Registry) {
	RegisterShardFlags(r)
	if _, err := r.Parse(remainingArgs()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	code := m.Run()
	log.Flush()
	os.Exit(code)
}

// remainingArgs 过滤掉 go test 注入的 -test.* 标志，留下注册表关心的部分
func remainingArgs() []string {
	var args []string
	skipValue := false
	for _, a := range os.Args[1:] {
		if skipValue {
			skipValue = false
			continue
		}
		name, _, hasValue, isFlag := flags.SplitToken(a)
		if isFlag && isGoTestFlag(name) {
			// -test.run foo 形式要连值一起跳过
			if !hasValue && !isGoTestBoolFlag(name) {
				skipValue = true
			}
			continue
		}
		args = append(args, a)
	}
	return args
}

func isGoTestFlag(name string) bool {
	return len(name) > 5 && name[:5] == "test." && name != shardIndexFlag && name != totalShardsFlag
}

func isGoTestBoolFlag(name string) bool {
	switch name {
	case "test.v", "test.short", "test.failfast", "test.paniconexit0", "test.fullpath":
		return true
	}
	return false
}

// Isolate 给单个用例一份隔离的注册表状态：用例内的任何标志改动、
// 新定义、校验器追加都在用例结束时自动撤销
func Isolate(t *testing.T, r *flags.Registry) {
	t.Helper()
	t.Cleanup(flagsaver.Save(r))
}

// InShard 判断名字是否落在当前分片。未启用分片（total<=1）时恒真。
func InShard(name string) bool {
	total := shardTotal()
	if total <= 1 {
		return true
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return int(h.Sum32())%total == shardIdx()
}

// RunInShard 只在名字落在当前分片时展开子测试，否则记 Skip
func RunInShard(t *testing.T, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if !InShard(name) {
			t.Skipf("assigned to another shard")
		}
		fn(t)
	})
}

func shardIdx() int {
	sh := currentShards()
	if sh != nil && sh.index.Present() > 0 {
		return sh.index.Value()
	}
	if v, err := strconv.Atoi(os.Getenv(shardIndexEnv)); err == nil {
		return v
	}
	if sh != nil {
		return sh.index.Value()
	}
	return 0
}

func shardTotal() int {
	sh := currentShards()
	if sh != nil && sh.total.Present() > 0 {
		return sh.total.Value()
	}
	if v, err := strconv.Atoi(os.Getenv(totalShardsEnv)); err == nil {
		return v
	}
	if sh != nil {
		return sh.total.Value()
	}
	return 1
}
