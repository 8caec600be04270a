// package flags
// list.go
// 分隔符列表解析器：按可配置分隔符切分输入，逐元素委托内层解析器。
//
// 契约（与注册表序列化往返配套）：
//   - 只剥离整体输入的首尾空白，元素内部和元素两侧的空白一概保留；
//   - 空输入解析为空序列，而不是包含一个空串的单元素序列；
//   - 序列化用同一分隔符拼接，满足往返律。

package flags

import (
	"strings"
)

// ListParser 按 sep 切分后用 inner 解析每个元素
type ListParser[T any] struct {
	inner Parser[T]
	sep   string
}

// NewListParser 构造列表解析器，sep 为空时使用逗号
func NewListParser[T any](inner Parser[T], sep string) *ListParser[T] {
	if sep == "" {
		sep = ","
	}
	return &ListParser[T]{inner: inner, sep: sep}
}

// Parse 实现 Parser 接口。只做一次整体 TrimSpace，空输入返回空切片。
func (p *ListParser[T]) Parse(input string) ([]T, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return []T{}, nil
	}
	parts := strings.Split(input, p.sep)
	out := make([]T, 0, len(parts))
	for _, part := range parts {
		v, err := p.inner.Parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Type 实现 Parser 接口
func (p *ListParser[T]) Type() string {
	return p.inner.Type() + " list"
}

// NewListSerializer 构造列表序列化器：逐元素序列化后用 sep 拼接
func NewListSerializer[T any](inner Serializer[T], sep string) Serializer[[]T] {
	if sep == "" {
		sep = ","
	}
	return SerializerFunc[[]T](func(values []T) string {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = inner.Serialize(v)
		}
		return strings.Join(parts, sep)
	})
}
