package api

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
)

// SPA serves files from dir and answers index.html for any path that is not a file.
// Unknown /api/ paths stay 404.
func SPA(dir string) http.Handler {
	root := os.DirFS(dir)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "api" || strings.HasPrefix(name, "api/") {
			http.NotFound(w, r)
			return
		}
		if info, err := fs.Stat(root, name); name == "" || err != nil || info.IsDir() {
			name = "index.html"
		}
		http.ServeFileFS(w, r, root, name)
	})
}
