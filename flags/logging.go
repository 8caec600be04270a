// package flags
// logging.go
// 标志子系统自身的诊断输出钩子。flags 包位于依赖图底层，不能引用
// 日志门面（日志包反过来在这里定义自己的标志），所以警告/调试输出
// 通过可注入的函数变量走出去，日志包在 init 里把真实实现挂进来。
// 未挂接时输出被丢弃。

package flags

// warnf 警告输出钩子，缺省丢弃
var warnf = func(format string, args ...any) {}

// debugf 调试输出钩子，缺省丢弃
var debugf = func(format string, args ...any) {}

// SetWarnLogger 挂接警告输出实现（nil 恢复为丢弃）
func SetWarnLogger(fn func(format string, args ...any)) {
	if fn == nil {
		fn = func(string, ...any) {}
	}
	warnf = fn
}

// SetDebugLogger 挂接调试输出实现（nil 恢复为丢弃）
func SetDebugLogger(fn func(format string, args ...any)) {
	if fn == nil {
		fn = func(string, ...any) {}
	}
	debugf = fn
}
