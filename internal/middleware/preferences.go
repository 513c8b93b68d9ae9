package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// PreferenceLoader reads the stored dark-mode flag.
type PreferenceLoader interface {
	LoadPreference(ctx context.Context) bool
}

// LoadPreferences exposes the dark-mode flag to templates.
func LoadPreferences(prefs PreferenceLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(DarkModeKey, prefs.LoadPreference(c.Request.Context()))
		c.Next()
	}
}
