// Package web embeds the game page template and its static assets so the
// server ships as a single binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*
var templatesFS embed.FS

//go:embed static/*
var staticFS embed.FS

// TemplatesFS returns the embedded page templates, rooted at templates/.
func TemplatesFS() fs.FS {
	sub, _ := fs.Sub(templatesFS, "templates")
	return sub
}

// StaticFS returns the embedded static assets, rooted at static/.
func StaticFS() fs.FS {
	sub, _ := fs.Sub(staticFS, "static")
	return sub
}
