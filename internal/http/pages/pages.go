package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agenda_backend/internal/http/handlers"
	"agenda_backend/internal/http/middleware"
	"agenda_backend/internal/service"
)

// Pages serves the server-rendered HTML frontend. It reuses the API
// handler's repositories and services; authentication rides on the access
// token cookie instead of the Authorization header.
type Pages struct {
	h *handlers.Handler
}

func New(h *handlers.Handler) *Pages {
	return &Pages{h: h}
}

// RequireAuth is the browser flavour of the JWT middleware: instead of a
// 401 it redirects to the login page.
func (p *Pages) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(middleware.AccessTokenCookie)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		userID, sessionID, err := service.ParseJWT(token)
		if err != nil {
			// try a silent refresh off the refresh cookie
			if !p.refreshCookies(c) {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
			token, _ = c.Cookie(middleware.AccessTokenCookie)
			userID, sessionID, err = service.ParseJWT(token)
			if err != nil {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
		}

		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.SessionIDKey, sessionID)
		c.Next()
	}
}

const refreshTokenCookie = "refresh_token"

func (p *Pages) refreshCookies(c *gin.Context) bool {
	refresh, err := c.Cookie(refreshTokenCookie)
	if err != nil || refresh == "" {
		return false
	}

	tokens, err := p.h.Auth.Refresh(c.Request.Context(), refresh)
	if err != nil {
		return false
	}

	p.setAuthCookies(c, tokens)
	return true
}

func (p *Pages) setAuthCookies(c *gin.Context, tokens *service.TokenPair) {
	// cookie max ages are deliberately generous; the JWT carries its own
	// expiry and the refresh token is validated server side
	c.SetCookie(middleware.AccessTokenCookie, tokens.AccessToken, 86400, "/", "", false, true)
	c.SetCookie(refreshTokenCookie, tokens.RefreshToken, 30*86400, "/", "", false, true)
}

func (p *Pages) clearAuthCookies(c *gin.Context) {
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", false, true)
	c.SetCookie(refreshTokenCookie, "", -1, "/", "", false, true)
}
