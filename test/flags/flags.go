package main

import (
	"fmt"
	"os"

	"github.com/maxiaolu1981/cretem/flagcore/errors"
	"github.com/maxiaolu1981/cretem/flagcore/flags"
	"github.com/maxiaolu1981/cretem/flagcore/log"
	"github.com/maxiaolu1981/cretem/flagcore/version/verflag"
)

// 演示 flags 包的典型用法：定义标志、注册日志标志、解析命令行并应用。
//
// 运行示例：
//
//	go run ./test/flags --server-port=9090 --debug --tag=a --tag=b --log.level=debug
//	go run ./test/flags --version
//	go run ./test/flags --version=raw
func main() {
	// 1. 定义业务标志（默认注册到 flags.CommandLine）
	r := flags.CommandLine
	var (
		port     = flags.DefineInt(r, "server-port", 8080, "服务器端口")
		debug    = flags.DefineBool(r, "debug", false, "启用调试模式")
		username = flags.DefineString(r, "user-name", "admin", "用户名")
		tags     = flags.DefineMultiString(r, "tag", nil, "资源标签，可重复指定")
		mode     = flags.DefineEnum(r, "mode", "standalone", []string{"standalone", "cluster"}, false, "运行模式")
	)

	// 2. 端口合法性校验：解析失败时整批参数回滚
	if err := port.RegisterValidator(func(v int) error {
		if v <= 0 || v > 65535 {
			return fmt.Errorf("端口必须在 1-65535 之间，实际为 %d", v)
		}
		return nil
	}); err != nil {
		fmt.Printf("注册校验器失败: %v\n", err)
		os.Exit(1)
	}

	// 3. 注册日志标志（log.level/log.v/log.format 等）
	logOpts := log.NewOptions()
	if err := logOpts.RegisterFlags(r); err != nil {
		fmt.Printf("注册日志标志失败: %v\n", err)
		os.Exit(1)
	}

	// 4. 解析命令行参数
	positionals, err := r.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("参数解析失败: %v\n", err)
		os.Exit(1)
	}

	// 5. 若指定了 --version 则打印版本信息并退出
	verflag.PrintAndExitIfRequested()

	// 6. 应用并校验日志配置
	logOpts.ApplyFlags()
	if errs := logOpts.Validate(); len(errs) != 0 {
		fmt.Printf("日志配置非法: %v\n", errors.NewAggregate(errs))
		os.Exit(1)
	}
	log.Init(logOpts)
	defer log.Flush()

	// 7. 业务逻辑
	fmt.Println("=== 应用配置 ===")
	fmt.Printf("服务器端口: %d\n", port.Value())
	fmt.Printf("调试模式: %v\n", debug.Value())
	fmt.Printf("用户名: %s\n", username.Value())
	fmt.Printf("标签: %v\n", tags.Value())
	fmt.Printf("运行模式: %s\n", mode.Value())
	fmt.Printf("位置参数: %v\n", positionals)

	log.Infow("标志解析完成", "port", port.Value(), "mode", mode.Value())
	if debug.Value() {
		log.Debugw("调试模式已开启")
	}

	// 8. 以注册时顺序导出全部非默认标志（可写入 flagfile 复现本次配置）
	fmt.Println("\n=== 当前标志快照 ===")
	fmt.Println(r.FlagsIntoString())
}
