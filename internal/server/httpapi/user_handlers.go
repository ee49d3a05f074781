package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/whoestate/backend/internal/common"
	"github.com/whoestate/backend/internal/server/users"
)

type createUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Name        string `json:"name" binding:"required"`
	Surname     string `json:"surname" binding:"required"`
	PhoneNumber int64  `json:"phonenumber"`
	Image       string `json:"image"`
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "email, name and surname are required"})
		return
	}

	profile, err := s.users.Create(c.Request.Context(), users.CreateInput{
		Email:       req.Email,
		Name:        req.Name,
		Surname:     req.Surname,
		PhoneNumber: req.PhoneNumber,
		Image:       req.Image,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}

func (s *Server) listUsers(c *gin.Context) {
	profiles, err := s.users.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (s *Server) getUser(c *gin.Context) {
	profile, err := s.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) currentProfile(c *gin.Context) {
	profile, err := s.users.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

type updateUserRequest struct {
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Name        *string `json:"name,omitempty"`
	Surname     *string `json:"surname,omitempty"`
	PhoneNumber *int64  `json:"phonenumber,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// updateUser: members may edit their own profile, admins anyone's.
func (s *Server) updateUser(c *gin.Context) {
	id := c.Param("id")
	role, _ := c.Get(ctxRole)
	if id != currentUserID(c) && role != common.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "insufficient permissions"})
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid profile update"})
		return
	}

	profile, err := s.users.Update(c.Request.Context(), id, &users.ProfileUpdate{
		Email:       req.Email,
		Name:        req.Name,
		Surname:     req.Surname,
		PhoneNumber: req.PhoneNumber,
		Image:       req.Image,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (s *Server) deleteUser(c *gin.Context) {
	if err := s.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
