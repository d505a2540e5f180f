package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/example/synapz/internal/service"
	"github.com/example/synapz/pkg/models"
)

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) listFacts(c *gin.Context) {
	page, err := s.Facts.List(c.Request.Context(), service.ListFactsInput{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Category: c.Query("category"),
	}, userID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, page)
}

func (s *Server) createFact(c *gin.Context) {
	var in models.FactInput
	if !s.bindJSON(c, &in) {
		return
	}
	created, err := s.Facts.Create(c.Request.Context(), userID(c), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) toggleSave(c *gin.Context) {
	res, err := s.Facts.ToggleSave(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, res)
}

func (s *Server) listSaved(c *gin.Context) {
	saved, err := s.Facts.ListSaved(c.Request.Context(), userID(c), c.Query("search"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"facts": saved, "total": len(saved)})
}

func (s *Server) listActivity(c *gin.Context) {
	acts, err := s.Activity.List(c.Request.Context(), userID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"activities": acts})
}

func (s *Server) recordActivity(c *gin.Context) {
	var in service.RecordActivityInput
	if !s.bindJSON(c, &in) {
		return
	}
	res, err := s.Activity.Record(c.Request.Context(), userID(c), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, res)
}
