package pages

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agenda_backend/internal/http/middleware"
)

func (p *Pages) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Email": ""})
}

func (p *Pages) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")

	_, tokens, err := p.h.Auth.Login(c.Request.Context(), email, password, c.ClientIP())
	if err != nil {
		c.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Error": "Invalid email or password",
			"Email": email,
		})
		return
	}

	p.setAuthCookies(c, tokens)
	c.Redirect(http.StatusFound, "/tasks")
}

func (p *Pages) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Email": "", "Username": ""})
}

func (p *Pages) Register(c *gin.Context) {
	email := c.PostForm("email")
	username := c.PostForm("username")
	password := c.PostForm("password")

	if email == "" || username == "" || len(password) < 8 {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Error":    "All fields are required; password must be at least 8 characters",
			"Email":    email,
			"Username": username,
		})
		return
	}

	if _, err := p.h.Auth.Register(c.Request.Context(), email, username, password); err != nil {
		c.HTML(http.StatusConflict, "register.html", gin.H{
			"Error":    "Could not register: email may already be in use",
			"Email":    email,
			"Username": username,
		})
		return
	}

	// log the fresh account straight in
	_, tokens, err := p.h.Auth.Login(c.Request.Context(), email, password, c.ClientIP())
	if err != nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	p.setAuthCookies(c, tokens)
	c.Redirect(http.StatusFound, "/tasks")
}

func (p *Pages) Logout(c *gin.Context) {
	if sessionID := c.GetString(middleware.SessionIDKey); sessionID != "" {
		_ = p.h.Auth.Logout(c.Request.Context(), sessionID)
	}
	p.clearAuthCookies(c)
	c.Redirect(http.StatusFound, "/login")
}
