package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the storefront files from root. Directory requests
// resolve to index.html; paths escaping the root are rejected.
func StaticHandler(root string) gin.HandlerFunc {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = root
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}

		requested := c.Request.URL.Path
		if strings.HasSuffix(requested, "/") {
			requested += "index.html"
		}

		cleaned := filepath.Clean("/" + requested)
		target := filepath.Join(absRoot, cleaned)
		if target != absRoot && !strings.HasPrefix(target, absRoot+string(filepath.Separator)) {
			c.String(http.StatusForbidden, "Forbidden")
			return
		}

		info, err := os.Stat(target)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		if info.IsDir() {
			index := filepath.Join(target, "index.html")
			if _, err := os.Stat(index); err != nil {
				c.String(http.StatusForbidden, "Forbidden")
				return
			}
			target = index
		}

		c.Header("Cache-Control", "no-cache")
		c.File(target)
	}
}
