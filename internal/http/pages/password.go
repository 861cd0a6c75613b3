package pages

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agenda_backend/internal/service"
)

func (p *Pages) PasswordForm(c *gin.Context) {
	c.HTML(http.StatusOK, "password_form.html", gin.H{})
}

func (p *Pages) ChangePassword(c *gin.Context) {
	userID := pageUserID(c)

	oldPassword := c.PostForm("old_password")
	newPassword := c.PostForm("new_password")
	if len(newPassword) < 8 {
		c.HTML(http.StatusBadRequest, "password_form.html", gin.H{
			"Error": "New password must be at least 8 characters",
		})
		return
	}

	err := p.h.Auth.ChangePassword(c.Request.Context(), userID, oldPassword, newPassword)
	if err != nil {
		msg := "Failed to change password"
		if errors.Is(err, service.ErrInvalidCredentials) {
			msg = "Current password does not match"
		}
		c.HTML(http.StatusBadRequest, "password_form.html", gin.H{"Error": msg})
		return
	}

	// all sessions are gone now, including this one
	p.clearAuthCookies(c)
	c.Redirect(http.StatusFound, "/login")
}

func (p *Pages) ResetRequestForm(c *gin.Context) {
	c.HTML(http.StatusOK, "reset_request.html", gin.H{"Email": ""})
}

func (p *Pages) ResetRequest(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		c.HTML(http.StatusBadRequest, "reset_request.html", gin.H{
			"Error": "Email is required",
			"Email": email,
		})
		return
	}

	token, err := p.h.Auth.RequestReset(c.Request.Context(), email)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "reset_request.html", gin.H{
			"Error": "Failed to request reset",
			"Email": email,
		})
		return
	}

	// without a mailer the token is shown directly; the message is the
	// same whether or not the account exists
	c.HTML(http.StatusOK, "reset_request.html", gin.H{
		"Email":     "",
		"Requested": true,
		"Token":     token,
	})
}

func (p *Pages) ResetConfirmForm(c *gin.Context) {
	c.HTML(http.StatusOK, "reset_confirm.html", gin.H{"Token": c.Query("token")})
}

func (p *Pages) ResetConfirm(c *gin.Context) {
	token := c.PostForm("token")
	newPassword := c.PostForm("new_password")

	if token == "" || len(newPassword) < 8 {
		c.HTML(http.StatusBadRequest, "reset_confirm.html", gin.H{
			"Error": "Token and a password of at least 8 characters are required",
			"Token": token,
		})
		return
	}

	if err := p.h.Auth.ConfirmReset(c.Request.Context(), token, newPassword); err != nil {
		c.HTML(http.StatusBadRequest, "reset_confirm.html", gin.H{
			"Error": "Reset token invalid or expired",
			"Token": token,
		})
		return
	}

	c.Redirect(http.StatusFound, "/login")
}
