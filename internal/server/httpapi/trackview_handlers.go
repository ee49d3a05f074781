package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type recordViewRequest struct {
	PropertyID string `json:"propertyId" binding:"required"`
}

func (s *Server) recordView(c *gin.Context) {
	var req recordViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "propertyId is required"})
		return
	}

	tv, err := s.trackViews.Record(c.Request.Context(), currentUserID(c), req.PropertyID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tv)
}

func (s *Server) listViewsByUser(c *gin.Context) {
	list, err := s.trackViews.ListByUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) listViewsByProperty(c *gin.Context) {
	list, err := s.trackViews.ListByProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) countViews(c *gin.Context) {
	n, err := s.trackViews.CountForProperty(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}
