package handlers

import (
	"context"
	"net/http"

	"skillswap/internal/apperr"

	"github.com/gin-gonic/gin"
)

// PreferenceStore persists the dark-mode flag.
type PreferenceStore interface {
	LoadPreference(ctx context.Context) bool
	SavePreference(ctx context.Context, enabled bool) error
}

type PreferenceHandler struct {
	prefs PreferenceStore
}

func NewPreferenceHandler(prefs PreferenceStore) *PreferenceHandler {
	return &PreferenceHandler{prefs: prefs}
}

// ToggleDarkMode flips the flag and returns to the board.
func (h *PreferenceHandler) ToggleDarkMode(c *gin.Context) {
	ctx := c.Request.Context()
	enabled := !h.prefs.LoadPreference(ctx)
	if err := h.prefs.SavePreference(ctx, enabled); err != nil {
		flashAndRedirect(c, apperr.Internal("Failed to save preference", err))
		return
	}
	c.Redirect(http.StatusFound, "/")
}

type preferenceBody struct {
	DarkMode bool `json:"darkMode"`
}

func (h *PreferenceHandler) APIGet(c *gin.Context) {
	c.JSON(http.StatusOK, preferenceBody{DarkMode: h.prefs.LoadPreference(c.Request.Context())})
}

func (h *PreferenceHandler) APIUpdate(c *gin.Context) {
	var body preferenceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "MALFORMED_JSON", "message": err.Error()})
		return
	}
	if err := h.prefs.SavePreference(c.Request.Context(), body.DarkMode); err != nil {
		JSONError(c, apperr.Internal("Failed to save preference", err))
		return
	}
	c.JSON(http.StatusOK, body)
}
