package utils

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"resourcehub/models"
)

// SuccessResponse sends a successful API response
func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreatedResponse sends a 201 created response
func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// PaginatedResponse sends a paginated response with list meta
func PaginatedResponse(c *gin.Context, message string, data interface{}, page, limit, total int) {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}

	c.JSON(http.StatusOK, models.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta: &models.Meta{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	})
}

// ErrorResponse sends an error API response
func ErrorResponse(c *gin.Context, statusCode int, message string, fieldErrors []string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Message: message,
		Errors:  fieldErrors,
	})
}

// RespondError translates a service error kind into the matching HTTP
// status. Unclassified errors become a 500.
func RespondError(c *gin.Context, err error) {
	switch {
	case IsValidation(err):
		var ve *ValidationError
		errors.As(err, &ve)
		ErrorResponse(c, http.StatusBadRequest, ve.Message, ve.Fields)
	case IsAuthentication(err):
		ErrorResponse(c, http.StatusUnauthorized, err.Error(), nil)
	case IsAuthorization(err):
		ErrorResponse(c, http.StatusForbidden, err.Error(), nil)
	case IsNotFound(err):
		ErrorResponse(c, http.StatusNotFound, err.Error(), nil)
	case IsConflict(err):
		ErrorResponse(c, http.StatusConflict, err.Error(), nil)
	case IsTimeout(err):
		ErrorResponse(c, http.StatusGatewayTimeout, err.Error(), nil)
	default:
		ErrorResponse(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

// BadRequestResponse sends a bad request response
func BadRequestResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, message, nil)
}

// UnauthorizedResponse sends an unauthorized response
func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized access"
	}
	ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

// AbortWithError aborts request with error response
func AbortWithError(c *gin.Context, statusCode int, message string) {
	ErrorResponse(c, statusCode, message, nil)
	c.Abort()
}

// GetUserFromContext gets user from gin context
func GetUserFromContext(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	userModel, ok := user.(*models.User)
	return userModel, ok
}

// GetUserIDFromContext gets user ID from gin context
func GetUserIDFromContext(c *gin.Context) (primitive.ObjectID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := userID.(primitive.ObjectID)
	return id, ok
}

// SetUserInContext sets user in gin context
func SetUserInContext(c *gin.Context, user *models.User) {
	c.Set("user", user)
	c.Set("user_id", user.ID)
}
