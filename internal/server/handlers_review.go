package server

import (
	"github.com/gin-gonic/gin"

	"github.com/example/synapz/internal/service"
)

func (s *Server) reviewQueue(c *gin.Context) {
	q, err := s.Reviews.Queue(c.Request.Context(), userID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, q)
}

func (s *Server) submitReview(c *gin.Context) {
	var in service.ReviewInput
	if !s.bindJSON(c, &in) {
		return
	}
	res, err := s.Reviews.Submit(c.Request.Context(), userID(c), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, res)
}
