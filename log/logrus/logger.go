// package logrus
// logger.go
// 提供logrus与zap日志库的集成功能，实现将logrus的日志输出重定向到zap日志实例。
// 核心功能包括：
//  1. 通过NewLogger函数构造一个logrus.Logger，其自身输出被丢弃，
//     全部日志条目经Hook转发到zap；
//  2. Hook负责级别映射（Trace/Debug→Debug，Info→Info，依此类推）
//     和结构化字段的透传。
//
// 适用于需要兼容logrus接口、底层统一走zap输出的组件（如distribution日志层）。
package logrus

import (
	"io"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

// NewLogger create the logrus logger by giving zap logger.
func NewLogger(zapLogger *zap.Logger) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.TraceLevel)
	logger.AddHook(newHook(zapLogger))
	return logger
}

type hook struct {
	logger *zap.Logger
}

func newHook(logger *zap.Logger) *hook {
	return &hook{logger: logger}
}

// Levels 订阅全部级别，由zap侧的级别开关决定最终是否输出
func (h *hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire 把一条logrus日志条目转发给zap，字段原样透传
func (h *hook) Fire(entry *logrus.Entry) error {
	fields := make([]zap.Field, 0, len(entry.Data))
	for key, value := range entry.Data {
		if key == logrus.ErrorKey {
			if err, ok := value.(error); ok {
				fields = append(fields, zap.Error(err))
				continue
			}
		}
		fields = append(fields, zap.Any(key, value))
	}

	switch entry.Level {
	case logrus.TraceLevel, logrus.DebugLevel:
		h.logger.Debug(entry.Message, fields...)
	case logrus.InfoLevel:
		h.logger.Info(entry.Message, fields...)
	case logrus.WarnLevel:
		h.logger.Warn(entry.Message, fields...)
	case logrus.ErrorLevel:
		h.logger.Error(entry.Message, fields...)
	case logrus.FatalLevel:
		h.logger.Fatal(entry.Message, fields...)
	case logrus.PanicLevel:
		h.logger.Panic(entry.Message, fields...)
	}

	return nil
}
