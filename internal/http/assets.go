package http

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed public
var publicFS embed.FS

// PublicFS returns the embedded static asset tree rooted at the public
// directory, suitable for http.FileServer.
func PublicFS() fs.FS {
	sub, err := fs.Sub(publicFS, "public")
	if err != nil {
		// The directory is embedded at compile time; a missing root is a
		// build defect, not a runtime condition.
		panic(err)
	}
	return sub
}
