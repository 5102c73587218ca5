package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/huffaz-portal/internal/api/middleware"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

// WebHandler serves a pre-built single page bundle. Unknown page paths fall
// back to index.html so client-side routes resolve; unknown API paths are 404s.
type WebHandler struct {
	root string
}

func NewWebHandler(root string) *WebHandler {
	return &WebHandler{root: root}
}

func (h *WebHandler) Enabled() bool { return h != nil && h.root != "" }

func (h *WebHandler) Serve(c *gin.Context) {
	if !h.Enabled() || middleware.IsAPIPath(c.Request.URL.Path) ||
		c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		writeError(c, utils.E(utils.CodeNotFound, "WebHandler.Serve", "route not found", nil))
		return
	}

	clean := filepath.Clean("/" + strings.TrimPrefix(c.Request.URL.Path, "/"))
	full := filepath.Join(h.root, filepath.FromSlash(clean))
	if fi, err := os.Stat(full); err == nil && !fi.IsDir() {
		c.File(full)
		return
	}
	c.File(filepath.Join(h.root, "index.html"))
}
