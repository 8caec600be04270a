// package flags
// parser.go
// 定义命令行文本与类型化值之间的无状态转换契约（Parser/Serializer），
// 以及 bool/int/float64/string 四种基础类型的实现。
//
// 设计要点：
// - Parser 必须纯函数化：同样的输入永远产生同样的输出，不携带可变状态；
// - 基础类型的构造函数返回行为等价的值（不可变配置结构体上的普通值相等，
//   不依赖单例身份）；
// - 往返律：parse(serialize(parse(x))) == parse(x)，注册表的序列化/再解析
//   完全依赖这条不变式；
// - 解析失败的错误消息要指明非法令牌和期望的形状，供 CLI 错误提示直接使用。

package flags

import (
	"strconv"
	"strings"

	"github.com/maxiaolu1981/cretem/flagcore/errors"
)

// Parser 把单个命令行文本转换为 T 类型的值。
// Parse 对合法输入幂等；对非法输入返回指明错误令牌和期望形状的错误。
// Type 返回类型名，用于帮助文本和 pflag 桥接。
type Parser[T any] interface {
	Parse(input string) (T, error)
	Type() string
}

// Serializer 是 Parser 的逆：把 T 类型的值转换回可被同一 Parser
// 重新解析出相等值的文本。
type Serializer[T any] interface {
	Serialize(value T) string
}

// SerializerFunc 函数适配器，便于用闭包实现 Serializer
type SerializerFunc[T any] func(T) string

// Serialize 实现 Serializer 接口
func (f SerializerFunc[T]) Serialize(v T) string { return f(v) }

// boolParser 解析布尔文本。接受 true/t/1/yes/y 与 false/f/0/no/n，大小写不敏感。
type boolParser struct{}

// NewBoolParser 返回布尔解析器。所有实例行为等价。
func NewBoolParser() Parser[bool] { return boolParser{} }

func (boolParser) Parse(input string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "true", "t", "1", "yes", "y":
		return true, nil
	case "false", "f", "0", "no", "n":
		return false, nil
	}
	return false, errors.Errorf("non-boolean value %q (expect true/false, 1/0, yes/no)", input)
}

func (boolParser) Type() string { return "bool" }

// boolSerializer 输出 "true"/"false"
type boolSerializer struct{}

// NewBoolSerializer 返回布尔序列化器
func NewBoolSerializer() Serializer[bool] { return boolSerializer{} }

func (boolSerializer) Serialize(v bool) string { return strconv.FormatBool(v) }

// intParser 解析十进制、0o 八进制或 0x 十六进制整数。
// 科学计数法（如 1e2）不是整数字面量，会被拒绝。
type intParser struct{}

// NewIntParser 返回整数解析器。所有实例行为等价。
func NewIntParser() Parser[int] { return intParser{} }

func (intParser) Parse(input string) (int, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(input), 0, strconv.IntSize)
	if err != nil {
		return 0, errors.Errorf("%q does not look like an integer (expect decimal, 0o octal or 0x hex digits)", input)
	}
	return int(v), nil
}

func (intParser) Type() string { return "int" }

// intSerializer 输出十进制数字串
type intSerializer struct{}

// NewIntSerializer 返回整数序列化器
func NewIntSerializer() Serializer[int] { return intSerializer{} }

func (intSerializer) Serialize(v int) string { return strconv.Itoa(v) }

// floatParser 解析浮点数，接受 strconv.ParseFloat 认可的全部形式
type floatParser struct{}

// NewFloat64Parser 返回浮点解析器。所有实例行为等价。
func NewFloat64Parser() Parser[float64] { return floatParser{} }

func (floatParser) Parse(input string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil {
		return 0, errors.Errorf("%q does not look like a floating point number", input)
	}
	return v, nil
}

func (floatParser) Type() string { return "float64" }

// floatSerializer 以最短无损形式（'g'）输出
type floatSerializer struct{}

// NewFloat64Serializer 返回浮点序列化器
func NewFloat64Serializer() Serializer[float64] { return floatSerializer{} }

func (floatSerializer) Serialize(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// stringParser 恒等转换，任何文本都是合法字符串
type stringParser struct{}

// NewStringParser 返回字符串解析器。所有实例行为等价。
func NewStringParser() Parser[string] { return stringParser{} }

func (stringParser) Parse(input string) (string, error) { return input, nil }

func (stringParser) Type() string { return "string" }

// stringSerializer 恒等输出
type stringSerializer struct{}

// NewStringSerializer 返回字符串序列化器
func NewStringSerializer() Serializer[string] { return stringSerializer{} }

func (stringSerializer) Serialize(v string) string { return v }
