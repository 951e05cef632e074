// Package site serves the built web UI as the fallback route.
package site

import (
	"context"
	"net/http"
	"os"

	"github.com/okian/matchdb/pkg/logger"
)

// Register serves dir at "/" when it is an existing directory, and reports
// whether it did. Directory paths resolve to their index.html.
func Register(ctx context.Context, mux *http.ServeMux, dir string, l logger.Logger) bool {
	if mux == nil {
		panic("mux is nil")
	}
	if l == nil {
		l = logger.Get().Named("site")
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		l.Info(ctx, "static UI directory not found; serving API only", logger.String("static_dir", dir))
		return false
	}

	mux.Handle("GET /", http.FileServer(http.Dir(dir)))
	l.Info(ctx, "serving static UI", logger.String("static_dir", dir))
	return true
}
