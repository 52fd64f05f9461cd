package sandbox

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Articles carry a nested counts object, activities flat counters; clients
// must accept both.
func articleJSON(a *article) gin.H {
	return gin.H{
		"id":         a.id,
		"authorId":   a.authorID,
		"authorName": a.authorName,
		"title":      a.title,
		"summary":    a.summary,
		"content":    a.content,
		"category":   a.category,
		"tags":       a.tags,
		"createdAt":  a.createdAt.UTC().Format(time.RFC3339),
		"counts":     gin.H{"likes": a.likes, "favorites": a.favorites, "comments": a.comments},
	}
}

func activityJSON(a *activity) gin.H {
	return gin.H{
		"id":              a.id,
		"authorId":        a.authorID,
		"author":          gin.H{"id": a.authorID, "name": a.authorName},
		"title":           a.title,
		"description":     a.description,
		"category":        a.category,
		"difficulty":      a.difficulty,
		"durationMinutes": a.durationMinutes,
		"materials":       a.materials,
		"createdAt":       a.createdAt.UTC().Format(time.RFC3339),
		"likesCount":      a.likes,
		"favoritesCount":  a.favorites,
		"commentsCount":   a.comments,
	}
}

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

func (s *Server) listArticles(c *gin.Context) {
	category, search := c.Query("category"), c.Query("search")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []gin.H{}
	for _, a := range s.articles {
		if category != "" && a.category != category {
			continue
		}
		if !matches(search, a.title, a.summary, strings.Join(a.tags, " ")) {
			continue
		}
		out = append(out, articleJSON(a))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getArticle(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.findArticle(c.Param("id"))
	if a == nil {
		errorJSON(c, http.StatusNotFound, "Article not found")
		return
	}
	c.JSON(http.StatusOK, articleJSON(a))
}

func (s *Server) listActivities(c *gin.Context) {
	category, difficulty, search := c.Query("category"), c.Query("difficulty"), c.Query("search")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []gin.H{}
	for _, a := range s.activities {
		if category != "" && a.category != category {
			continue
		}
		if difficulty != "" && a.difficulty != difficulty {
			continue
		}
		if !matches(search, a.title, a.description) {
			continue
		}
		out = append(out, activityJSON(a))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) getActivity(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.findActivity(c.Param("id"))
	if a == nil {
		errorJSON(c, http.StatusNotFound, "Activity not found")
		return
	}
	c.JSON(http.StatusOK, activityJSON(a))
}

func (s *Server) findArticle(id string) *article {
	i := slices.IndexFunc(s.articles, func(a *article) bool { return a.id == id })
	if i < 0 {
		return nil
	}
	return s.articles[i]
}

func (s *Server) findActivity(id string) *activity {
	i := slices.IndexFunc(s.activities, func(a *activity) bool { return a.id == id })
	if i < 0 {
		return nil
	}
	return s.activities[i]
}

// DeleteArticle removes an article while leaving interaction records pointing
// at it, as a server that nulls the foreign key on delete would.
func (s *Server) DeleteArticle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = slices.DeleteFunc(s.articles, func(a *article) bool { return a.id == id })
	for _, recs := range []*[]record{&s.likes, &s.favorites} {
		for i := range *recs {
			if (*recs)[i].articleID == id {
				(*recs)[i].articleID = ""
			}
		}
	}
}

func itoa(n int) string { return strconv.Itoa(n) }
