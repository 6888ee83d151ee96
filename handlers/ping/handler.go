package ping

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary Ping the API
// @Description Liveness check
// @Tags ping
// @Produce json
// @Success 200 {object} map[string]string "message: pong"
// @Router /ping [get]
func HandlePing(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
