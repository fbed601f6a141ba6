package utils

import (
	"fmt"
	"hash/fnv"
	"strings"
	"time"
	"unicode/utf8"
)

var avatarEmojis = []string{"📰", "🗞️", "📡", "🔭", "🧭", "🌏", "🦉", "🐼", "🦊", "🐨", "🐸", "🐯"}

// AvatarOrDefault 没有头像时按用户名挑一个固定的 emoji
func AvatarOrDefault(avatar, username string) string {
	if avatar != "" {
		return avatar
	}
	h := fnv.New32a()
	h.Write([]byte(username))
	return avatarEmojis[h.Sum32()%uint32(len(avatarEmojis))]
}

// IsImageURL 头像字段可能是 URL 也可能是 emoji
func IsImageURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") || strings.HasPrefix(s, "/")
}

// HotnessLabel 热度分值（0-10）转成展示文案
func HotnessLabel(score float64) string {
	switch {
	case score >= 8:
		return "🔥 爆"
	case score >= 5:
		return "🔥 热"
	case score >= 2:
		return "温"
	}
	return ""
}

// TimeAgo 相对时间
func TimeAgo(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	seconds := int(time.Since(t).Seconds())
	switch {
	case seconds < 60:
		return "刚刚"
	case seconds < 3600:
		return fmt.Sprintf("%d分钟前", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%d小时前", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%d天前", seconds/86400)
	case seconds < 31536000:
		return fmt.Sprintf("%d个月前", seconds/2592000)
	}
	return fmt.Sprintf("%d年前", seconds/31536000)
}

// Truncate 按字符截断
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}

// StripHTML 列表摘要去标签
func StripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	text := strings.NewReplacer(
		"&nbsp;", " ", "&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'",
	).Replace(b.String())
	return strings.Join(strings.Fields(text), " ")
}
