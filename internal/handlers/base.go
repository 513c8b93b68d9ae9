package handlers

import (
	"net/http"

	"skillswap/internal/apperr"
	"skillswap/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like flashes and dark mode
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	obj["Flashes"] = middleware.GetFlashes(c)
	if dark, ok := c.Get(middleware.DarkModeKey); ok {
		obj["DarkMode"] = dark
	} else {
		obj["DarkMode"] = false
	}
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// HtmxRedirect helper
func HtmxRedirect(c *gin.Context, path string) {
	c.Header("HX-Redirect", path)
	c.Status(http.StatusOK)
}

// statusOf maps an error kind to an HTTP status.
func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindOutOfRange, apperr.KindMalformedJSON, apperr.KindSchema:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// JSONError writes {"error": kind, "message": text}.
func JSONError(c *gin.Context, err error) {
	c.Error(err)
	c.AbortWithStatusJSON(statusOf(err), gin.H{
		"error":   apperr.KindOf(err),
		"message": apperr.MessageOf(err),
	})
}

// NotFound renders the error page for unknown routes.
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found")
}

// flashAndRedirect reports err (if any) on the next page and returns to the board.
func flashAndRedirect(c *gin.Context, err error) {
	if err != nil {
		c.Error(err)
		middleware.AddError(c, apperr.MessageOf(err))
	}
	if c.GetHeader("HX-Request") == "true" {
		HtmxRedirect(c, "/")
		return
	}
	c.Redirect(http.StatusFound, "/")
}
