package sandbox

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
)

func (s *Server) ownedProfile(user, id string) int {
	return slices.IndexFunc(s.profiles, func(p profile) bool { return p.ID == id && p.OwnerID == user })
}

func (s *Server) listProfiles(c *gin.Context) {
	user := c.GetString(userIDKey)
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []profile{}
	for _, p := range s.profiles {
		if p.OwnerID == user {
			out = append(out, p)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getProfile(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.ownedProfile(c.GetString(userIDKey), c.Param("id"))
	if i < 0 {
		errorJSON(c, http.StatusNotFound, "Profile not found")
		return
	}
	c.JSON(http.StatusOK, s.profiles[i])
}

func (s *Server) createProfile(c *gin.Context) {
	var p profile
	if err := c.ShouldBindJSON(&p); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.nextID("p")
	p.OwnerID = c.GetString(userIDKey)
	s.profiles = append(s.profiles, p)
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProfile(c *gin.Context) {
	var p profile
	if err := c.ShouldBindJSON(&p); err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}
	user := c.GetString(userIDKey)
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.ownedProfile(user, c.Param("id"))
	if i < 0 {
		errorJSON(c, http.StatusNotFound, "Profile not found")
		return
	}
	p.ID, p.OwnerID = s.profiles[i].ID, user
	s.profiles[i] = p
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProfile(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.ownedProfile(c.GetString(userIDKey), c.Param("id"))
	if i < 0 {
		errorJSON(c, http.StatusNotFound, "Profile not found")
		return
	}
	s.profiles = slices.Delete(s.profiles, i, i+1)
	c.Status(http.StatusNoContent)
}
