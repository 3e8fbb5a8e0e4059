// Package templates holds the templates embedded into the binary.
package templates

import "embed"

//go:embed mocks/*.tmpl
var FS embed.FS
