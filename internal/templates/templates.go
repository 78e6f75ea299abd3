// Package templates embeds the transactional mail bodies.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
