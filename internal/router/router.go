package router

import (
	"skillswap/internal/handlers"

	"github.com/gin-gonic/gin"
)

// Handlers groups everything the routes dispatch to.
type Handlers struct {
	Board      *handlers.BoardHandler
	Rating     *handlers.RatingHandler
	Transfer   *handlers.TransferHandler
	Preference *handlers.PreferenceHandler
	Events     *handlers.EventsHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers) {
	// Page routes
	r.GET("/", h.Board.List)                               // board with search applied
	r.POST("/skills", h.Board.Create)                      // post a new skill
	r.POST("/skills/:id/delete", h.Board.Delete)           // remove a posting
	r.POST("/skills/:id/rate/:value", h.Rating.Rate)       // star click, returns the rating fragment
	r.GET("/export", h.Transfer.Export)                    // download skills_export.json
	r.POST("/import", h.Transfer.Import)                   // replace the board from an upload
	r.POST("/preferences/dark-mode", h.Preference.ToggleDarkMode)

	// Live updates
	r.GET("/events", h.Events.Stream)

	// JSON API
	api := r.Group("/api")
	{
		api.GET("/skills", h.Board.APIList)
		api.POST("/skills", h.Board.APICreate)
		api.GET("/skills/:id", h.Board.APIGet)
		api.DELETE("/skills/:id", h.Board.APIDelete)
		api.POST("/skills/:id/rating", h.Rating.APIRate)
		api.POST("/import", h.Transfer.APIImport)
		api.GET("/preferences", h.Preference.APIGet)
		api.PUT("/preferences", h.Preference.APIUpdate)
	}

	r.NoRoute(handlers.NotFound)
}
