package router

import (
	"net/http"

	"skillswap/internal/config"
	"skillswap/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const sessionName = "skillswap_session"

// NewEngine builds the gin engine with sessions, flashes, the dark-mode
// preference and every route registered.
func NewEngine(cfg *config.Config, logger *zap.Logger, prefs middleware.PreferenceLoader, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))

	r.HTMLRender = LoadTemplates(cfg.TemplatesDir)

	r.Use(middleware.LoadFlash())
	r.Use(middleware.LoadPreferences(prefs))

	RegisterRoutes(r, h)
	return r
}

// Handler wraps the engine with CORS when FRONTEND_URLS names any origins.
func Handler(cfg *config.Config, engine *gin.Engine) http.Handler {
	if len(cfg.FrontendURLs) == 0 {
		return engine
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.FrontendURLs,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(engine)
}
