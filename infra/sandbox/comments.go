package sandbox

import (
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
)

func commentJSON(c comment) gin.H {
	return gin.H{
		"id":         c.id,
		"authorId":   c.authorID,
		"authorName": c.authorName,
		"content":    c.content,
		"createdAt":  c.createdAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) listComments(c *gin.Context) {
	ref := refBody{ArticleID: c.Query("articleId"), ActivityID: c.Query("activityId")}
	if !ref.valid() {
		errorJSON(c, http.StatusBadRequest, "Exactly one of articleId or activityId is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []gin.H{}
	for _, cm := range s.comments {
		if cm.articleID == ref.ArticleID && cm.activityID == ref.ActivityID {
			out = append(out, commentJSON(cm))
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) addComment(c *gin.Context) {
	var body struct {
		refBody
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || !body.valid() {
		errorJSON(c, http.StatusBadRequest, "Exactly one of articleId or activityId is required")
		return
	}
	content := strings.TrimSpace(body.Content)
	if content == "" || utf8.RuneCountInString(content) > 1000 {
		errorJSON(c, http.StatusBadRequest, "Comment must be between 1 and 1000 characters")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var counter *int
	if body.ArticleID != "" {
		if a := s.findArticle(body.ArticleID); a != nil {
			counter = &a.comments
		}
	} else if a := s.findActivity(body.ActivityID); a != nil {
		counter = &a.comments
	}
	if counter == nil {
		errorJSON(c, http.StatusNotFound, "Content not found")
		return
	}
	acct, _ := s.accountByID(c.GetString(userIDKey))
	cm := comment{
		id:         s.nextID("c"),
		authorID:   acct.id,
		authorName: acct.name,
		articleID:  body.ArticleID,
		activityID: body.ActivityID,
		content:    content,
		createdAt:  s.now(),
	}
	s.comments = append(s.comments, cm)
	*counter++
	c.JSON(http.StatusCreated, commentJSON(cm))
}
