package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"gigflow_backend/internal/appErrors"
	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/validator"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// BindAndValidateJSON binds the JSON body into obj and validates it. On
// failure the error response has already been written and false is returned.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.WithError(err).Warn("Failed to bind JSON body", "path", c.Request.URL.Path)
		appErrors.HandleError(c, appErrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

// BindAndValidateQuery binds query parameters into obj and validates it.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		logger.WithError(err).Warn("Failed to bind query params", "path", c.Request.URL.Path)
		appErrors.HandleError(c, appErrors.NewBadRequestError("Invalid query parameters: "+err.Error()))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	err := h.validator.Validate(obj)
	if err == nil {
		return true
	}

	if vErr, ok := err.(*validator.ValidationError); ok {
		logger.Warn("Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
		appErrors.HandleError(c, appErrors.ValidationError(vErr.Errors))
	} else {
		logger.WithError(err).Error("Internal validator error", "path", c.Request.URL.Path)
		appErrors.HandleError(c, appErrors.InternalError(err))
	}
	return false
}

// HandleServiceError writes a service error as an HTTP response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	var appErr *appErrors.AppError
	if appErrors.As(err, &appErr) {
		logger.Warn("Service error",
			"code", string(appErr.Code),
			"message", appErr.Message,
			"path", c.Request.URL.Path,
		)
		appErrors.HandleError(c, appErr)
		return
	}

	logger.WithError(err).Error("Internal server error", "path", c.Request.URL.Path)
	appErrors.HandleError(c, appErrors.InternalError(err))
}

// GetAndAuthorizeUserID returns the authenticated requester id, writing a 401
// when it is missing.
func (h *BaseHandler) GetAndAuthorizeUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("userID")
	if !exists {
		appErrors.HandleError(c, appErrors.NewUnauthorizedError("User not authenticated"))
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		appErrors.HandleError(c, appErrors.NewUnauthorizedError("Invalid user ID in context"))
		return "", false
	}

	return userID, true
}

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func ParsePagination(c *gin.Context) (page int, pageSize int) {
	const defaultPage = 1
	const defaultPageSize = 20
	const maxPageSize = 100

	page = ParseQueryInt(c, "page", defaultPage)
	if page <= 0 {
		page = defaultPage
	}

	pageSize = ParseQueryInt(c, "page_size", defaultPageSize)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}
