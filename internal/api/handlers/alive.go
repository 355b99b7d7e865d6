package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const aliveMessage = "I'm alive!"

// GetAlive handles GET / and GET /api/is-alive
func GetAlive(c *gin.Context) {
	c.String(http.StatusOK, aliveMessage)
}

// PostAlive handles POST / and POST /api/is-alive
func PostAlive(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": aliveMessage})
}
