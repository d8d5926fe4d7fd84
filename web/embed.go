// Package web embeds the static frontend served at the site root.
package web

import "embed"

//go:embed static
var StaticFS embed.FS
