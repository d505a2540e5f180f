package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/example/synapz/internal/excel"
	"github.com/example/synapz/internal/service"
)

const maxUploadSize = 10 << 20

func (s *Server) generateUsage(c *gin.Context) {
	respondOK(c, gin.H{
		"name": "Synapz AI Fact Generator",
		"usage": gin.H{
			"method": "POST",
			"headers": gin.H{
				"Content-Type":    "application/json",
				adminSecretHeader: "your-admin-secret",
			},
			"body": gin.H{
				"topic": "string (required) - The topic to generate facts about",
				"count": "number (optional, default: 5, max: 20) - Number of facts to generate",
			},
		},
		"categories": service.Categories,
		"example": gin.H{
			"request":  gin.H{"topic": "Space", "count": 5},
			"response": gin.H{"inserted": 5, "facts": []any{}},
		},
	})
}

func (s *Server) generate(c *gin.Context) {
	var in service.GenerateInput
	if !s.bindJSON(c, &in) {
		return
	}
	res, err := s.Admin.Generate(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, res)
}

func (s *Server) seedStatus(c *gin.Context) {
	status, err := s.Admin.Status(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, status)
}

// seed accepts a JSON batch or a multipart spreadsheet upload in the "file" field
func (s *Server) seed(c *gin.Context) {
	var in service.SeedInput
	var importErrors []string

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
		fh, err := c.FormFile("file")
		if err != nil {
			s.respondError(c, fmt.Errorf("%w: file upload is required", service.ErrInvalidInput))
			return
		}
		f, err := fh.Open()
		if err != nil {
			s.respondError(c, err)
			return
		}
		defer f.Close()

		imported, err := excel.Import(f, fh.Filename, excel.DefaultImportConfig())
		if err != nil {
			s.respondError(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
			return
		}
		in.Facts = imported.Facts
		importErrors = imported.Errors
	} else if !s.bindJSON(c, &in) {
		return
	}

	res, err := s.Admin.Seed(c.Request.Context(), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if len(importErrors) > 0 {
		res.Errors = append(importErrors, res.Errors...)
	}
	respondOK(c, res)
}
