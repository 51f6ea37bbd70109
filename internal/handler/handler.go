package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/yaseenferoz/virl-backend/internal/service"
)

// Handlers HTTP handler collection
type Handlers struct {
	Auth         *AuthHandler
	Customer     *CustomerHandler
	Collector    *CollectorHandler
	Vendor       *VendorHandler
	Shared       *SharedHandler
	Notification *NotificationHandler
}

// NewHandlers creates the handler collection.
func NewHandlers(svcs *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(svcs.Auth, svcs.Account),
		Customer:     NewCustomerHandler(svcs.Lifecycle, svcs.Account, svcs.Report),
		Collector:    NewCollectorHandler(svcs.Lifecycle, svcs.Account),
		Vendor:       NewVendorHandler(svcs.Lifecycle, svcs.Account, svcs.Catalog, svcs.Report),
		Shared:       NewSharedHandler(svcs.Catalog),
		Notification: NewNotificationHandler(svcs.Notification),
	}
}

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// RespondError maps a service error to the HTTP boundary. Unrecognized errors
// surface as a generic 500 without leaking internals.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrReportNotReady):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrAccountPending),
		errors.Is(err, service.ErrForbidden):
		Forbidden(c, err.Error())
	default:
		InternalError(c, "Server error")
	}
}
