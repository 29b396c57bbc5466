package handlers // Controller layer translates HTTP <-> service calls.

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"TodoAPI/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// errorStatus maps a domain error to its status code and client message.
var errorStatus = []struct {
	err    error
	status int
	detail string
}{
	{services.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
	{services.ErrInvalidEmail, http.StatusBadRequest, "Invalid email format"},
	{services.ErrPasswordTooLong, http.StatusBadRequest, "Password must be at most 72 bytes"},
	{services.ErrInvalidTitle, http.StatusBadRequest, "title is required"},
	{services.ErrEmptyMessage, http.StatusBadRequest, "Message is required"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{services.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{services.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
	{services.ErrConversationNotFound, http.StatusNotFound, "Conversation not found"},
	{services.ErrExportUnavailable, http.StatusServiceUnavailable, "Task export is not configured"},
}

// respondError writes {"detail": ...}. Unknown errors become a generic 500 and are attached
// to the context so RequestLogger records them.
func respondError(c *gin.Context, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.AbortWithStatusJSON(e.status, gin.H{"detail": e.detail})
			return
		}
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}

// respondBindError turns binding/validation failures into a 400 with a readable message.
func respondBindError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": bindErrorDetail(err)})
}

func bindErrorDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"detail": "Invalid " + name})
		return 0, false
	}
	return uint(n), true
}

// queryInt reads an optional integer query parameter; bad values fall back to def.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
