/*
空结构体，不包含任何字段，不占用内存空间。
唯一用途是作为 map[T]Empty 中的值类型，用来实现内存高效的集合（Set）。
*/

package sets

// Empty is public since it is used by some internal API objects for conversions between external
// string arrays and internal sets, and conversion logic requires public types today.
type Empty struct{}
