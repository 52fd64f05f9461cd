// Package sandbox is an in-memory stand-in for the platform gateway. It backs
// demo mode and lets tests drive the real HTTP client end to end.
package sandbox

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type record struct {
	id         string
	userID     string
	articleID  string
	activityID string
	createdAt  time.Time
}

type comment struct {
	id         string
	authorID   string
	authorName string
	articleID  string
	activityID string
	content    string
	createdAt  time.Time
}

type profile struct {
	ID            string   `json:"id"`
	OwnerID       string   `json:"userId"`
	Name          string   `json:"name" binding:"required"`
	BirthDate     string   `json:"birthDate" binding:"required"`
	DiagnosisDate string   `json:"diagnosisDate,omitempty"`
	SupportLevel  int      `json:"supportLevel,omitempty" binding:"omitempty,min=1,max=3"`
	Communication string   `json:"communication,omitempty"`
	Sensitivities []string `json:"sensitivities,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

// Server is the sandbox gateway. Safe for concurrent use.
type Server struct {
	secret []byte
	now    func() time.Time
	engine *gin.Engine

	mu         sync.Mutex
	accounts   []account
	articles   []*article
	activities []*activity
	likes      []record
	favorites  []record
	comments   []comment
	profiles   []profile
	failures   map[string]int
	hits       map[string]int
	seq        int
}

// Option configures a Server.
type Option func(*Server)

// WithSecret sets the HS256 signing key for issued tokens.
func WithSecret(secret []byte) Option {
	return func(s *Server) { s.secret = secret }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a sandbox seeded with demo content.
func New(opts ...Option) *Server {
	s := &Server{
		secret:   []byte("espectro-sandbox"),
		now:      time.Now,
		failures: make(map[string]int),
		hits:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	now := s.now()
	s.accounts = seedAccounts()
	s.articles = seedArticles(now)
	s.activities = seedActivities(now)
	s.comments = []comment{
		{id: "c-1", authorID: "u-pro", authorName: "Dr. Lucía Romero", articleID: "art-1", content: "Laminated cards last much longer.", createdAt: now.Add(-60 * time.Hour)},
		{id: "c-2", authorID: "u-pro", authorName: "Dr. Lucía Romero", activityID: "act-2", content: "A visual turn card helps a lot.", createdAt: now.Add(-18 * time.Hour)},
		{id: "c-3", authorID: "u-demo", authorName: "Demo Caregiver", activityID: "act-2", content: "We played this after dinner.", createdAt: now.Add(-10 * time.Hour)},
	}
	s.profiles = []profile{
		{ID: "p-1", OwnerID: "u-demo", Name: "Mateo", BirthDate: now.AddDate(-6, -3, 0).Format("2006-01-02"), DiagnosisDate: now.AddDate(-3, 0, 0).Format("2006-01-02"), SupportLevel: 2, Communication: "minimally_verbal", Sensitivities: []string{"loud noises"}, Interests: []string{"trains"}},
	}
	s.favorites = []record{
		{id: "fav-1", userID: "u-demo", articleID: "art-2", createdAt: now.Add(-24 * time.Hour)},
	}
	s.likes = []record{
		{id: "like-1", userID: "u-demo", articleID: "art-1", createdAt: now.Add(-70 * time.Hour)},
		{id: "like-2", userID: "u-demo", activityID: "act-1", createdAt: now.Add(-40 * time.Hour)},
	}
	s.seq = 100

	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler serving the gateway API.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// FailNext makes the next request to path answer with status.
func (s *Server) FailNext(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.faultInjection())

	r.POST("/auth/login", s.login)

	api := r.Group("/")
	api.Use(s.requireAuth())
	api.GET("/auth/me", s.me)
	api.GET("/articles", s.listArticles)
	api.GET("/articles/:id", s.getArticle)
	api.GET("/activities", s.listActivities)
	api.GET("/activities/:id", s.getActivity)
	api.GET("/likes/me", s.listMine(&s.likes))
	api.GET("/favorites/me", s.listMine(&s.favorites))
	api.POST("/likes/toggle", s.toggle(&s.likes, likeVerbs))
	api.POST("/favorites/toggle", s.toggle(&s.favorites, favoriteVerbs))
	api.GET("/comments", s.listComments)
	api.POST("/comments", s.addComment)
	api.GET("/autism-profiles", s.listProfiles)
	api.POST("/autism-profiles", s.createProfile)
	api.GET("/autism-profiles/:id", s.getProfile)
	api.PUT("/autism-profiles/:id", s.updateProfile)
	api.DELETE("/autism-profiles/:id", s.deleteProfile)
	return r
}

func (s *Server) faultInjection() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		s.mu.Lock()
		s.hits[path]++
		status, fail := s.failures[path]
		delete(s.failures, path)
		s.mu.Unlock()
		if fail {
			errorJSON(c, status, "injected failure")
			return
		}
		c.Next()
	}
}

func errorJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

func (s *Server) nextID(prefix string) string {
	s.seq++
	return prefix + "-" + itoa(s.seq)
}
