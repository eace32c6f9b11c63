package response

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "seller-panel.backend/internal/domain/errors"
	"seller-panel.backend/pkg/logger"
	"seller-panel.backend/pkg/utils"
)

// ErrorBody is the wire form of every failed request
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Paginated sends a list together with its pagination metadata
func Paginated(c *gin.Context, status int, key string, items interface{}, total int64, page, limit int) {
	params := utils.GetPaginationParams(page, limit)
	c.JSON(status, gin.H{
		key:          items,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// Error sends an error response. Only the AppError message reaches the client;
// wrapped causes are logged.
func Error(c *gin.Context, err error) {
	appErr, ok := domainerrors.AsAppError(err)
	if !ok {
		appErr = domainerrors.InternalError(err)
	}

	if appErr.Status >= 500 {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("code", appErr.Code),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(appErr.Status, ErrorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
		Field:   appErr.Field,
	})
}
