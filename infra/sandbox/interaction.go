package sandbox

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
)

type verbs struct {
	field   string
	set     string
	unset   string
	counter func(c *counters) *int
}

type counters struct {
	likes     *int
	favorites *int
}

var (
	likeVerbs     = verbs{field: "liked", set: "Content liked", unset: "Like removed", counter: func(c *counters) *int { return c.likes }}
	favoriteVerbs = verbs{field: "favorited", set: "Added to favorites", unset: "Removed from favorites", counter: func(c *counters) *int { return c.favorites }}
)

type refBody struct {
	ArticleID  string `json:"articleId"`
	ActivityID string `json:"activityId"`
}

func (b refBody) valid() bool {
	return (b.ArticleID == "") != (b.ActivityID == "")
}

func nullable(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func (s *Server) recordJSON(r record) gin.H {
	out := gin.H{
		"id":         r.id,
		"userId":     r.userID,
		"articleId":  nullable(r.articleID),
		"activityId": nullable(r.activityID),
		"createdAt":  r.createdAt.UTC().Format(time.RFC3339),
	}
	if a := s.findArticle(r.articleID); r.articleID != "" && a != nil {
		out["article"] = articleJSON(a)
	}
	if a := s.findActivity(r.activityID); r.activityID != "" && a != nil {
		out["activity"] = activityJSON(a)
	}
	return out
}

func (s *Server) listMine(recs *[]record) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.GetString(userIDKey)
		s.mu.Lock()
		defer s.mu.Unlock()
		out := []gin.H{}
		for _, r := range *recs {
			if r.userID == user {
				out = append(out, s.recordJSON(r))
			}
		}
		c.JSON(http.StatusOK, out)
	}
}

// counterFor returns the live counters of the referenced content, or nil
// when it does not exist.
func (s *Server) counterFor(b refBody) *counters {
	if b.ArticleID != "" {
		if a := s.findArticle(b.ArticleID); a != nil {
			return &counters{likes: &a.likes, favorites: &a.favorites}
		}
		return nil
	}
	if a := s.findActivity(b.ActivityID); a != nil {
		return &counters{likes: &a.likes, favorites: &a.favorites}
	}
	return nil
}

func (s *Server) toggle(recs *[]record, v verbs) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body refBody
		if err := c.ShouldBindJSON(&body); err != nil || !body.valid() {
			errorJSON(c, http.StatusBadRequest, "Exactly one of articleId or activityId is required")
			return
		}
		user := c.GetString(userIDKey)

		s.mu.Lock()
		defer s.mu.Unlock()
		cnt := s.counterFor(body)
		if cnt == nil {
			errorJSON(c, http.StatusNotFound, "Content not found")
			return
		}
		n := v.counter(cnt)

		i := slices.IndexFunc(*recs, func(r record) bool {
			return r.userID == user && r.articleID == body.ArticleID && r.activityID == body.ActivityID
		})
		if i >= 0 {
			*recs = slices.Delete(*recs, i, i+1)
			*n = max(0, *n-1)
			c.JSON(http.StatusOK, gin.H{v.field: false, "message": v.unset})
			return
		}
		*recs = append(*recs, record{
			id:         s.nextID("rec"),
			userID:     user,
			articleID:  body.ArticleID,
			activityID: body.ActivityID,
			createdAt:  s.now(),
		})
		*n++
		c.JSON(http.StatusOK, gin.H{v.field: true, "message": v.set})
	}
}
