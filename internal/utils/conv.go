package utils

import (
	"strconv"
	"strings"
)

// StringToInt converts string to int, returns 0 if error
func StringToInt(s string) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return i
}

// StringToUint 路由参数里的 ID，非法时返回 0
func StringToUint(s string) uint {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// ParsePage 页码参数，缺省或非法为 1
func ParsePage(s string) int {
	if p := StringToInt(s); p > 0 {
		return p
	}
	return 1
}

// ParseLimit 每页条数，限制在 [1, max]
func ParseLimit(s string, def, max int) int {
	n := StringToInt(s)
	if n <= 0 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// SplitTags 表单里逗号分隔的标签
func SplitTags(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '，' || r == '\n' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
