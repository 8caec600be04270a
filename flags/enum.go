// package flags
// enum.go
// 封闭取值集合的两种解析器：
//   - EnumParser —— 固定字符串集合（candidate set），可选大小写敏感；
//   - EnumClassParser —— 封闭符号集合（名字 -> 任意可比较类型的成员表），
//     Go 没有枚举类型，成员表就是集合本身。
//
// 两者都在构造期完成合法性检查（空集合、大小写折叠冲突），
// 保证解析期不会再出现配置类失败。

package flags

import (
	"sort"
	"strings"

	"github.com/maxiaolu1981/cretem/flagcore/errors"
)

// EnumParser 在固定字符串集合中解析，返回集合内的规范写法
type EnumParser struct {
	values        []string
	caseSensitive bool
	// lowered 大小写不敏感模式下的折叠索引：小写 -> 规范写法
	lowered map[string]string
}

// NewEnumParser 构造字符串枚举解析器。
// values 为空立即报错（构造期校验）；大小写不敏感时，两个折叠后同名的
// 候选值同样立即报错，错误消息指明冲突的候选值。
func NewEnumParser(values []string, caseSensitive bool) (*EnumParser, error) {
	if len(values) == 0 {
		return nil, errors.New("enum values must not be empty")
	}
	p := &EnumParser{
		values:        append([]string(nil), values...),
		caseSensitive: caseSensitive,
	}
	if !caseSensitive {
		p.lowered = make(map[string]string, len(values))
		for _, v := range values {
			low := strings.ToLower(v)
			if _, ok := p.lowered[low]; ok {
				return nil, errors.Errorf("duplicate enum value %q (case insensitive)", v)
			}
			p.lowered[low] = v
		}
	}
	return p, nil
}

// Values 返回候选值列表（定义顺序的副本）
func (p *EnumParser) Values() []string {
	return append([]string(nil), p.values...)
}

// Parse 在候选集合中查找输入；命中返回规范写法，否则报错并列出合法值
func (p *EnumParser) Parse(input string) (string, error) {
	if p.caseSensitive {
		for _, v := range p.values {
			if v == input {
				return v, nil
			}
		}
	} else if v, ok := p.lowered[strings.ToLower(input)]; ok {
		return v, nil
	}
	return "", errors.Errorf("value should be one of <%s>, got %q", strings.Join(p.values, "|"), input)
}

// Type 实现 Parser 接口
func (p *EnumParser) Type() string { return "enum" }

// helpSuffix 供帮助文本自动追加合法值列表
func (p *EnumParser) helpSuffix() string {
	return "<" + strings.Join(p.values, "|") + ">"
}

// EnumClassParser 在封闭符号集合（名字 -> 成员值）中解析。
// T 为成员类型，要求可比较以支持序列化时的反向查找。
type EnumClassParser[T comparable] struct {
	members       map[string]T
	names         []string // 排序后的成员名，保证帮助文本和错误消息确定性
	caseSensitive bool
	lowered       map[string]string
}

// NewEnumClassParser 构造符号枚举解析器。
// 构造期校验：成员表为空立即报错；大小写不敏感时小写折叠后撞名的成员
// 立即报错，错误消息指明冲突成员（按名字排序后较靠后的那个）。
func NewEnumClassParser[T comparable](members map[string]T, caseSensitive bool) (*EnumClassParser[T], error) {
	if len(members) == 0 {
		return nil, errors.New("enum class members must not be empty")
	}
	p := &EnumClassParser[T]{
		members:       make(map[string]T, len(members)),
		caseSensitive: caseSensitive,
	}
	for name, v := range members {
		p.members[name] = v
		p.names = append(p.names, name)
	}
	sort.Strings(p.names)
	if !caseSensitive {
		p.lowered = make(map[string]string, len(members))
		for _, name := range p.names {
			low := strings.ToLower(name)
			if _, ok := p.lowered[low]; ok {
				return nil, errors.Errorf("duplicate enum member name %q (case insensitive)", name)
			}
			p.lowered[low] = name
		}
	}
	return p, nil
}

// Names 返回成员名列表（字母序副本）
func (p *EnumClassParser[T]) Names() []string {
	return append([]string(nil), p.names...)
}

// Parse 按名字（可选折叠大小写）查找成员值
func (p *EnumClassParser[T]) Parse(input string) (T, error) {
	name := input
	if !p.caseSensitive {
		canonical, ok := p.lowered[strings.ToLower(input)]
		if !ok {
			var zero T
			return zero, errors.Errorf("value should be one of <%s>, got %q", strings.Join(p.names, "|"), input)
		}
		name = canonical
	}
	v, ok := p.members[name]
	if !ok {
		var zero T
		return zero, errors.Errorf("value should be one of <%s>, got %q", strings.Join(p.names, "|"), input)
	}
	return v, nil
}

// Type 实现 Parser 接口
func (p *EnumClassParser[T]) Type() string { return "enum_class" }

func (p *EnumClassParser[T]) helpSuffix() string {
	return "<" + strings.Join(p.names, "|") + ">"
}

// NewEnumClassSerializer 构造符号枚举序列化器：按成员值反查名字。
// lowercase 为 true 时输出小写名字（与大小写不敏感的解析器配对使用）。
func NewEnumClassSerializer[T comparable](p *EnumClassParser[T], lowercase bool) Serializer[T] {
	byValue := make(map[T]string, len(p.members))
	// 按排序后的名字回填，成员值重复时的反查结果保持确定性
	for _, name := range p.names {
		v := p.members[name]
		if _, ok := byValue[v]; !ok {
			byValue[v] = name
		}
	}
	return SerializerFunc[T](func(v T) string {
		name := byValue[v]
		if lowercase {
			return strings.ToLower(name)
		}
		return name
	})
}
