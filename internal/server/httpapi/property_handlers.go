package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/whoestate/backend/internal/server/properties"
)

func (s *Server) listProperties(c *gin.Context) {
	list, err := s.properties.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) getProperty(c *gin.Context) {
	p, err := s.properties.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) lastSixProperties(c *gin.Context) {
	list, err := s.properties.LastSix(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) countProperties(c *gin.Context) {
	n, err := s.properties.Count(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func int64Query(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &n, true
}

func (s *Server) queryProperties(c *gin.Context) {
	q := &properties.Query{
		City:         c.Query("city"),
		District:     c.Query("district"),
		Neighborhood: c.Query("neighborhood"),
		PropertyType: c.Query("propertyType"),
		ListingType:  c.Query("listingType"),
		SubType:      c.Query("subType"),
	}

	var ok bool
	if q.MinPrice, ok = int64Query(c, "minPrice"); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "minPrice must be a number"})
		return
	}
	if q.MaxPrice, ok = int64Query(c, "maxPrice"); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "maxPrice must be a number"})
		return
	}
	if q.MinNet, ok = int64Query(c, "minNet"); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "minNet must be a number"})
		return
	}
	if q.MaxNet, ok = int64Query(c, "maxNet"); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "maxNet must be a number"})
		return
	}

	list, err := s.properties.Query(c.Request.Context(), q)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createProperty(c *gin.Context) {
	var p properties.Property
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid listing"})
		return
	}
	if p.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "title is required"})
		return
	}

	created, err := s.properties.Create(c.Request.Context(), currentUserID(c), &p)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) updateProperty(c *gin.Context) {
	var p properties.Property
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid listing"})
		return
	}

	updated, err := s.properties.Update(c.Request.Context(), c.Param("id"), &p)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteProperty(c *gin.Context) {
	if err := s.properties.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
