// Package json 对 json-iterator 进行简单封装，导出与标准库 encoding/json 兼容的
// 序列化/反序列化函数和类型，提供统一的JSON处理接口，便于后续在不修改调用代码的
// 情况下扩展JSON功能（如切换回标准库或调整兼容配置）。

package json

import (
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
)

// RawMessage 导出为当前包的类型，等价于标准库的 json.RawMessage，
// 用于表示未解析的JSON原始字节数据（如延迟解析场景）
type RawMessage = json.RawMessage

// config 采用与标准库行为完全兼容的配置，避免序列化细节（如 map 键排序）产生差异
var config = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	// Marshal 将Go数据结构序列化为JSON字节流
	Marshal = config.Marshal

	// Unmarshal 将JSON字节流反序列化为Go数据结构
	Unmarshal = config.Unmarshal

	// MarshalIndent 生成带缩进的格式化JSON字符串
	MarshalIndent = config.MarshalIndent

	// NewDecoder 创建从输入流读取并解析JSON的解码器
	NewDecoder = config.NewDecoder

	// NewEncoder 创建向输出流写入JSON的编码器
	NewEncoder = config.NewEncoder
)
