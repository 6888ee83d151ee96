package apperrors

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
)

// HandleHTTP traduit une erreur applicative en réponse JSON gin.
// Les erreurs non typées sortent en 500 avec un message générique pour ne
// pas exposer les détails internes.
func HandleHTTP(c *gin.Context, err error) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		c.JSON(appErr.HTTPCode, gin.H{"error": appErr.Message, "code": string(appErr.Code)})
		return
	}
	c.JSON(500, gin.H{"error": "Internal server error", "code": string(CodeInternal)})
}
