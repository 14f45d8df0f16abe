package web

import (
	"bytes"
	"embed"
	"io/fs"
	"net/http"
	"time"
)

// DistServer serves an embedded asset directory under a URL prefix.
// The sub-filesystem is resolved once at startup; a bad subdir panics.
func DistServer(fsys embed.FS, subdir, urlPrefix string) http.HandlerFunc {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		panic("failed to create sub-filesystem: " + err.Error())
	}

	server := http.StripPrefix(urlPrefix, http.FileServer(http.FS(sub)))
	return server.ServeHTTP
}

// PublicFile serves one embedded file at a fixed path, for root-level
// assets like robots.txt that live outside the dist tree.
func PublicFile(fsys embed.FS, subdir, filename string) http.HandlerFunc {
	path := subdir + "/" + filename

	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fsys.ReadFile(path)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, filename, time.Time{}, bytes.NewReader(data))
	}
}
