/*
log:distribution:logger_test.go
验证logrus兼容层：Print系列映射为Info级别、各级别方法落到zap对应级别、
WithError走logrus桥接钩子并携带错误字段。
*/

package distribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/maxiaolu1981/cretem/flagcore/errors"
)

func newObservedLogger() (*Logger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewLogger(zap.New(core)), recorded
}

// TestPrintSeriesMapsToInfo 验证标准库log风格的Print系列走Info级别
func TestPrintSeriesMapsToInfo(t *testing.T) {
	l, recorded := newObservedLogger()

	l.Print("print_msg")
	l.Println("println_msg")
	l.Printf("printf_%s", "msg")

	entries := recorded.All()
	assert.Len(t, entries, 3)
	for i, entry := range entries {
		assert.Equal(t, zapcore.InfoLevel, entry.Level, "第%d条Print日志应为info级别", i+1)
	}
	assert.Equal(t, "printf_msg", entries[2].Message)
}

// TestLevelMethods 验证各级别方法落到zap对应级别
func TestLevelMethods(t *testing.T) {
	l, recorded := newObservedLogger()

	l.Debugf("debug_%d", 1)
	l.Infof("info_%d", 2)
	l.Warnf("warn_%d", 3)
	l.Errorf("error_%d", 4)

	entries := recorded.All()
	assert.Len(t, entries, 4)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[3].Level)
}

// TestWithErrorGoesThroughHook 验证WithError经logrus桥接钩子转发并带错误字段
func TestWithErrorGoesThroughHook(t *testing.T) {
	l, recorded := newObservedLogger()

	cause := errors.New("磁盘已满")
	l.WithError(cause).Error("write_failed")

	entries := recorded.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "write_failed", entries[0].Message)
	assert.Equal(t, cause.Error(), entries[0].ContextMap()["error"])
}
