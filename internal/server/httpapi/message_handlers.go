package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whoestate/backend/internal/server/messages"
)

type createMessageRequest struct {
	Name    string `json:"name" binding:"required"`
	Surname string `json:"surname"`
	Email   string `json:"email" binding:"required,email"`
	Phone   int64  `json:"phone"`
	Message string `json:"message" binding:"required"`
}

func (s *Server) createMessage(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "name, email and message are required"})
		return
	}

	created, err := s.messages.Create(c.Request.Context(), &messages.Message{
		Name:    req.Name,
		Surname: req.Surname,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listMessages(c *gin.Context) {
	list, err := s.messages.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getMessage(c *gin.Context) {
	m, err := s.messages.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (s *Server) markMessageRead(c *gin.Context) {
	if err := s.messages.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

func (s *Server) deleteMessage(c *gin.Context) {
	if err := s.messages.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
