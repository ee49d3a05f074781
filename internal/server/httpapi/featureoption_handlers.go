package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whoestate/backend/internal/server/featureoptions"
)

func (s *Server) listFeatureOptions(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		list, err := s.featureOptions.ListByCategory(c.Request.Context(), category)
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
		return
	}

	list, err := s.featureOptions.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type createFeatureOptionRequest struct {
	Category string `json:"category" binding:"required"`
	Value    string `json:"value" binding:"required"`
}

func (s *Server) createFeatureOption(c *gin.Context) {
	var req createFeatureOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "category and value are required"})
		return
	}

	created, err := s.featureOptions.Create(c.Request.Context(), &featureoptions.FeatureOption{
		Category: req.Category,
		Value:    req.Value,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) deleteFeatureOption(c *gin.Context) {
	if err := s.featureOptions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
