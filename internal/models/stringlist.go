package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList 标签、相关链接、关键词等字段的统一形态
// 服务端可能返回数组、存着 JSON 数组的字符串、逗号分隔字符串或 null
type StringList []string

// ParseStringList 把任意原始字符串解析成列表，从不返回错误
func ParseStringList(raw string) StringList {
	s := strings.TrimSpace(raw)
	if s == "" || s == "null" || s == "[]" {
		return StringList{}
	}
	if strings.HasPrefix(s, "[") {
		var items []any
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			return fromAny(items)
		}
	}
	return splitList(s)
}

// splitList 按中英文逗号切分，去掉首尾引号和空白
func splitList(s string) StringList {
	s = strings.Trim(s, "[]")
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '，' })
	out := make(StringList, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"'`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func fromAny(items []any) StringList {
	out := make(StringList, 0, len(items))
	for _, it := range items {
		var v string
		switch t := it.(type) {
		case nil:
			continue
		case string:
			v = strings.TrimSpace(t)
		default:
			v = strings.TrimSpace(fmt.Sprint(t))
		}
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*l = StringList{}
	case data[0] == '[':
		var items []any
		if err := json.Unmarshal(data, &items); err != nil {
			*l = StringList{}
			return nil
		}
		*l = fromAny(items)
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*l = StringList{}
			return nil
		}
		*l = ParseStringList(s)
	default:
		*l = StringList{}
	}
	return nil
}

func (l StringList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Join 用于表单回填
func (l StringList) Join(sep string) string {
	return strings.Join(l, sep)
}

// JSONList 服务端有时把数组序列化成字符串再放进 JSON，这里两种都接受
// 解析失败时得到空列表
type JSONList[T any] []T

func (l *JSONList[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*l = JSONList[T]{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		data = []byte(strings.TrimSpace(s))
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil
	}
	*l = items
	return nil
}
