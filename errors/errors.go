// errors:errors.go
// 提供增强型错误处理功能，支持错误消息包装和堆栈跟踪记录。
//
// 该包在标准库 error 接口的基础上扩展了以下核心能力：
// 1. 自动记录错误发生时的堆栈跟踪，便于问题定位
// 2. 支持多层错误包装（嵌套错误），保留完整的错误链
// 3. 提供丰富的格式化输出（如 %+v 展示完整堆栈），提升调试效率
// 4. 与标准库 errors.Is/As/Unwrap 完全兼容
//
// 核心概念：
// - 基础错误（fundamental）：最底层错误，包含消息和初始堆栈
// - 错误包装（withStack/withMessage）：对原始错误添加堆栈或消息注解
// - 错误根因（Cause）：通过 Cause() 方法可获取错误链的最原始错误
//
// 使用示例：
//
//  1. 创建基础错误：
//     err := errors.New("标志未注册")
//
//  2. 包装错误并添加消息：
//     err = errors.Wrap(err, "解析命令行失败")
//
//  3. 打印完整错误信息（含堆栈）：
//     fmt.Printf("错误详情: %+v\n", err)
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
)

// fundamental 基础错误类型，包含错误消息和堆栈跟踪，无调用者信息
type fundamental struct {
	msg string
	*stack
}

// New 返回一个包含指定消息的错误，同时记录调用时的堆栈跟踪
func New(message string) error {
	return &fundamental{
		msg:   message,
		stack: callers(),
	}
}

// Errorf 根据格式说明符格式化错误消息，返回满足 error 接口的值，同时记录调用时的堆栈跟踪
func Errorf(format string, args ...interface{}) error {
	return &fundamental{
		msg:   fmt.Sprintf(format, args...),
		stack: callers(),
	}
}

// Error 实现 error 接口，返回错误消息
func (f *fundamental) Error() string { return f.msg }

// Format 实现 fmt.Formatter 接口，%+v 时额外打印堆栈跟踪
func (f *fundamental) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			io.WriteString(st, f.msg)
			f.stack.Format(st, verb)
			return
		}
		fallthrough
	case 's':
		io.WriteString(st, f.msg)
	case 'q':
		fmt.Fprintf(st, "%q", f.msg)
	}
}

// withStack 包含原始错误和堆栈跟踪的错误包装器
type withStack struct {
	error
	*stack
}

// WithStack 为错误添加调用时的堆栈跟踪注解，若 err 为 nil 则返回 nil
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	return &withStack{
		err,
		callers(),
	}
}

// Cause 返回原始错误
func (w *withStack) Cause() error { return w.error }

// Unwrap 支持标准库 errors.Is/As 的错误链遍历
func (w *withStack) Unwrap() error { return w.error }

// Format 实现 fmt.Formatter 接口，%+v 时先递归打印根错误，再打印当前堆栈
func (w *withStack) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			fmt.Fprintf(st, "%+v", w.Cause())
			w.stack.Format(st, verb)
			return
		}
		fallthrough
	case 's':
		io.WriteString(st, w.Error())
	case 'q':
		fmt.Fprintf(st, "%q", w.Error())
	}
}

// Wrap 为错误添加消息和堆栈跟踪注解，若 err 为 nil 则返回 nil
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	err = &withMessage{
		cause: err,
		msg:   message,
	}
	return &withStack{
		err,
		callers(),
	}
}

// Wrapf 为错误添加格式化消息和堆栈跟踪注解，若 err 为 nil 则返回 nil
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	err = &withMessage{
		cause: err,
		msg:   fmt.Sprintf(format, args...),
	}
	return &withStack{
		err,
		callers(),
	}
}

// withMessage 仅包含消息和根因的错误包装器
type withMessage struct {
	cause error
	msg   string
}

// WithMessage 为错误添加消息注解，若 err 为 nil 则返回 nil
func WithMessage(err error, message string) error {
	if err == nil {
		return nil
	}
	return &withMessage{
		cause: err,
		msg:   message,
	}
}

// WithMessagef 为错误添加格式化消息注解，若 err 为 nil 则返回 nil
func WithMessagef(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withMessage{
		cause: err,
		msg:   fmt.Sprintf(format, args...),
	}
}

// Error 实现 error 接口，返回错误消息
func (w *withMessage) Error() string { return w.msg }

// Cause 返回原始错误
func (w *withMessage) Cause() error { return w.cause }

// Unwrap 支持标准库 errors.Is/As 的错误链遍历
func (w *withMessage) Unwrap() error { return w.cause }

// Format 实现 fmt.Formatter 接口，%+v 时先递归打印根错误，再打印当前消息
func (w *withMessage) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			fmt.Fprintf(st, "%+v\n", w.Cause())
			io.WriteString(st, w.msg)
			return
		}
		fallthrough
	case 's', 'q':
		io.WriteString(st, w.Error())
	}
}

// Cause 返回错误的底层根因（如果可能）
// 循环解包错误：若错误实现 causer 接口，则递归获取其 Cause()，
// 直到获取到不实现 causer 接口的错误，返回该错误作为根因
func Cause(err error) error {
	type causer interface {
		Cause() error
	}
	for err != nil {
		cause, ok := err.(causer)
		if !ok {
			break
		}
		if cause.Cause() == nil {
			break
		}
		err = cause.Cause()
	}
	return err
}

// Is 等价于标准库 errors.Is，导出以便调用方只依赖本包
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As 等价于标准库 errors.As，导出以便调用方只依赖本包
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Unwrap 等价于标准库 errors.Unwrap，导出以便调用方只依赖本包
func Unwrap(err error) error { return stderrors.Unwrap(err) }
