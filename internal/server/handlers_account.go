package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/example/synapz/internal/auth"
	"github.com/example/synapz/internal/service"
)

func (s *Server) bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		s.respondError(c, fmt.Errorf("%w: invalid request body", service.ErrInvalidInput))
		return false
	}
	return true
}

func (s *Server) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.CookieName, token, maxAge, "/", "", s.cfg.SecureCookie, true)
}

func (s *Server) register(c *gin.Context) {
	var in service.RegisterInput
	if !s.bindJSON(c, &in) {
		return
	}
	sess, err := s.Accounts.Register(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.setSessionCookie(c, sess.Token, int(s.Tokens.TTL().Seconds()))
	c.JSON(http.StatusCreated, sess)
}

func (s *Server) login(c *gin.Context) {
	var in service.LoginInput
	if !s.bindJSON(c, &in) {
		return
	}
	sess, err := s.Accounts.Login(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.setSessionCookie(c, sess.Token, int(s.Tokens.TTL().Seconds()))
	respondOK(c, sess)
}

func (s *Server) logout(c *gin.Context) {
	s.setSessionCookie(c, "", -1)
	respondOK(c, gin.H{"success": true})
}

func (s *Server) me(c *gin.Context) {
	profile, err := s.Accounts.Profile(c.Request.Context(), userID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user": profile.User, "level_info": profile.LevelInfo, "badges": profile.Badges})
}

func (s *Server) profile(c *gin.Context) {
	profile, err := s.Accounts.Profile(c.Request.Context(), userID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, profile)
}

func (s *Server) updateNotifications(c *gin.Context) {
	var in service.NotificationInput
	if !s.bindJSON(c, &in) {
		return
	}
	user, err := s.Accounts.UpdateNotifications(c.Request.Context(), userID(c), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user": user})
}
