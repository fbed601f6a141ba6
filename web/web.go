// Package web 内嵌模板和静态资源，编译后单文件部署
package web

import "embed"

//go:embed templates static
var Files embed.FS
