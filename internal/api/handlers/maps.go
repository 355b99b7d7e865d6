package handlers

import (
	"net/http"

	"github.com/bhandras/rfext/internal/maps"
	"github.com/gin-gonic/gin"
)

type MapsHandler struct {
	lifecycle       *maps.Lifecycle
	exposeTraceback bool
}

func NewMapsHandler(lifecycle *maps.Lifecycle, exposeTraceback bool) *MapsHandler {
	return &MapsHandler{
		lifecycle:       lifecycle,
		exposeTraceback: exposeTraceback,
	}
}

// AssignMap handles POST /api/maps/:mapId
//
// The Rf-Extension-Token header holds the map's service token. The host
// sends it only this once.
func (h *MapsHandler) AssignMap(c *gin.Context) {
	mapID := c.Param("mapId")
	token := c.GetHeader(HeaderExtensionToken)

	if err := h.lifecycle.Assign(c.Request.Context(), mapID, token); err != nil {
		writeError(c, err, h.exposeTraceback)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// RemoveMap handles DELETE /api/maps/:mapId
func (h *MapsHandler) RemoveMap(c *gin.Context) {
	h.lifecycle.Remove(c.Request.Context(), c.Param("mapId"))
	c.JSON(http.StatusOK, gin.H{})
}
