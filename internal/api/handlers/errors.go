package handlers

import (
	"net/http"

	"github.com/bhandras/rfext/internal/apierr"
	"github.com/gin-gonic/gin"
)

const (
	// HeaderExtensionToken carries the service token on map assignment and
	// the delegated token on command invocations.
	HeaderExtensionToken = "Rf-Extension-Token"
	// HeaderSessionID identifies the live UI session of a command invocation.
	HeaderSessionID = "Session-Id"
)

// writeError renders err in the error envelope with its class status.
func writeError(c *gin.Context, err error, exposeTraceback bool) {
	e := apierr.From(err)
	c.JSON(e.Status(), e.Variant(exposeTraceback))
}

// NoRoute answers unmatched routes with the routing failure body.
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, apierr.Routing("no route for %s %s", c.Request.Method, c.Request.URL.Path).Variant(false))
}
