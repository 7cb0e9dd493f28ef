package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zoesbreath/baobab-server/internal/log"
)

// Envelope is the fixed response shape: HTTP status carries the primary
// signal, isSuccess mirrors it for the mobile client.
type Envelope struct {
	IsSuccess      bool   `json:"isSuccess"`
	Message        string `json:"message,omitempty"`
	Data           any    `json:"data,omitempty"`
	IsTokenExpired bool   `json:"isTokenExpired,omitempty"`
}

func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{IsSuccess: true, Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{IsSuccess: false, Message: message})
}

// failExpired distinguishes a matching-but-expired verification code so the
// client can offer "resend" instead of "retype".
func failExpired(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity,
		Envelope{IsSuccess: false, Message: message, IsTokenExpired: true})
}

// internalErr logs the cause and answers with the generic 500 envelope.
func internalErr(c *gin.Context, err error) {
	log.L().Error("internal error",
		zap.String("path", c.FullPath()), zap.Error(err))
	fail(c, http.StatusInternalServerError, "internal error")
}
