// Package ui embeds the templates and static assets so the binary works the
// same regardless of its working directory.
package ui

import (
	"embed"
)

//go:embed templates static
var Files embed.FS
