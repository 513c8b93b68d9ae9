package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	FlashErrorKey   = "flash_error"
	FlashSuccessKey = "flash_success"
	FlashesKey      = "flashes"
	DarkModeKey     = "dark_mode"
)

// Flashes are one-shot notices carried across a redirect.
type Flashes struct {
	Errors    []string
	Successes []string
}

// AddError queues an error notice for the next rendered page.
func AddError(c *gin.Context, msg string) {
	session := sessions.Default(c)
	session.AddFlash(msg, FlashErrorKey)
	saveSession(c, session)
}

// AddSuccess queues a success notice for the next rendered page.
func AddSuccess(c *gin.Context, msg string) {
	session := sessions.Default(c)
	session.AddFlash(msg, FlashSuccessKey)
	saveSession(c, session)
}

// LoadFlash moves pending notices from the session into the context.
func LoadFlash() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		errs := session.Flashes(FlashErrorKey)
		oks := session.Flashes(FlashSuccessKey)

		if len(errs) > 0 || len(oks) > 0 {
			flashes := Flashes{
				Errors:    toStrings(errs),
				Successes: toStrings(oks),
			}
			c.Set(FlashesKey, flashes)
			saveSession(c, session)
		}
		c.Next()
	}
}

// GetFlashes returns the notices loaded for this request.
func GetFlashes(c *gin.Context) Flashes {
	if v, ok := c.Get(FlashesKey); ok {
		if f, ok := v.(Flashes); ok {
			return f
		}
	}
	return Flashes{}
}

// saveSession records a failed save on the request so Logger reports it.
func saveSession(c *gin.Context, session sessions.Session) {
	if err := session.Save(); err != nil {
		c.Error(err)
	}
}

func toStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
