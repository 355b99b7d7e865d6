package handlers

import (
	"github.com/bhandras/rfext/internal/command"
	"github.com/gin-gonic/gin"
)

type CommandHandler struct {
	dispatcher *command.Dispatcher
}

func NewCommandHandler(dispatcher *command.Dispatcher) *CommandHandler {
	return &CommandHandler{dispatcher: dispatcher}
}

// RunCommand handles POST /api/commands/:name
func (h *CommandHandler) RunCommand(c *gin.Context) {
	reply := h.dispatcher.Dispatch(c.Request.Context(), command.Params{
		Name:           c.Param("name"),
		DelegatedToken: c.GetHeader(HeaderExtensionToken),
		MapID:          c.Query("mapId"),
		UserID:         c.Query("userId"),
		SessionID:      c.GetHeader(HeaderSessionID),
		NodeID:         c.Query("nodeId"),
	})
	c.JSON(reply.Status, reply.Body)
}
