package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whoestate/backend/internal/server/intakes"
)

type createIntakeRequest struct {
	NameSurname string `json:"namesurname" binding:"required"`
	Phone       int64  `json:"phone"`
	Description string `json:"description" binding:"required"`
}

func (s *Server) createIntake(c *gin.Context) {
	var req createIntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name and description are required"})
		return
	}

	created, err := s.intakes.Create(c.Request.Context(), &intakes.ClientIntake{
		NameSurname: req.NameSurname,
		Phone:       req.Phone,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listIntakes(c *gin.Context) {
	list, err := s.intakes.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getIntake(c *gin.Context) {
	in, err := s.intakes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

func (s *Server) deleteIntake(c *gin.Context) {
	if err := s.intakes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
