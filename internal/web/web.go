// Package web embeds the static viewer page.
package web

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var index []byte

// Index returns the viewer page.
func Index() []byte {
	return index
}

// Handler serves the viewer page.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	}
}
