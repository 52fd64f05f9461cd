package gateway

import (
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"

	"github.com/espectro-app/espectro/domain"
)

// countsJSON accepts both the nested counts object and flat counters.
type countsJSON struct {
	Counts *struct {
		Likes     int `json:"likes"`
		Favorites int `json:"favorites"`
		Comments  int `json:"comments"`
	} `json:"counts,omitempty"`
	LikesCount     int `json:"likesCount"`
	FavoritesCount int `json:"favoritesCount"`
	CommentsCount  int `json:"commentsCount"`
}

func (c countsJSON) toDomain() domain.Counts {
	if c.Counts != nil {
		return domain.Counts{Likes: c.Counts.Likes, Favorites: c.Counts.Favorites, Comments: c.Counts.Comments}
	}
	return domain.Counts{Likes: c.LikesCount, Favorites: c.FavoritesCount, Comments: c.CommentsCount}
}

type authorJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type articleJSON struct {
	ID         string      `json:"id"`
	AuthorID   string      `json:"authorId"`
	AuthorName string      `json:"authorName"`
	Author     *authorJSON `json:"author,omitempty"`
	Title      string      `json:"title"`
	Summary    string      `json:"summary"`
	Content    string      `json:"content"`
	Category   string      `json:"category"`
	Tags       []string    `json:"tags"`
	CreatedAt  time.Time   `json:"createdAt"`
	countsJSON
}

func (a articleJSON) toDomain() domain.Article {
	authorID, author := a.AuthorID, a.AuthorName
	if a.Author != nil {
		authorID, author = firstNonEmpty(authorID, a.Author.ID), firstNonEmpty(author, a.Author.Name)
	}
	return domain.Article{
		ID:        a.ID,
		AuthorID:  authorID,
		Author:    clean(author),
		Title:     clean(a.Title),
		Summary:   clean(a.Summary),
		Body:      clean(a.Content),
		Category:  a.Category,
		Tags:      a.Tags,
		Counts:    a.countsJSON.toDomain(),
		CreatedAt: a.CreatedAt,
	}
}

type activityJSON struct {
	ID              string      `json:"id"`
	AuthorID        string      `json:"authorId"`
	AuthorName      string      `json:"authorName"`
	Author          *authorJSON `json:"author,omitempty"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Category        string      `json:"category"`
	Difficulty      string      `json:"difficulty"`
	DurationMinutes int         `json:"durationMinutes"`
	Materials       []string    `json:"materials"`
	CreatedAt       time.Time   `json:"createdAt"`
	countsJSON
}

func (a activityJSON) toDomain() domain.Activity {
	authorID, author := a.AuthorID, a.AuthorName
	if a.Author != nil {
		authorID, author = firstNonEmpty(authorID, a.Author.ID), firstNonEmpty(author, a.Author.Name)
	}
	return domain.Activity{
		ID:              a.ID,
		AuthorID:        authorID,
		Author:          clean(author),
		Title:           clean(a.Title),
		Description:     clean(a.Description),
		Category:        a.Category,
		Difficulty:      a.Difficulty,
		DurationMinutes: a.DurationMinutes,
		Materials:       a.Materials,
		Counts:          a.countsJSON.toDomain(),
		CreatedAt:       a.CreatedAt,
	}
}

type interactionJSON struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	ArticleID  *string       `json:"articleId"`
	ActivityID *string       `json:"activityId"`
	CreatedAt  time.Time     `json:"createdAt"`
	Article    *articleJSON  `json:"article,omitempty"`
	Activity   *activityJSON `json:"activity,omitempty"`
}

func (i interactionJSON) toDomain() domain.Interaction {
	out := domain.Interaction{ID: i.ID, UserID: i.UserID, CreatedAt: i.CreatedAt}
	if i.ArticleID != nil {
		out.ArticleID = *i.ArticleID
	}
	if i.ActivityID != nil {
		out.ActivityID = *i.ActivityID
	}
	if i.Article != nil {
		a := i.Article.toDomain()
		out.Article = &a
	}
	if i.Activity != nil {
		a := i.Activity.toDomain()
		out.Activity = &a
	}
	return out
}

type commentJSON struct {
	ID         string      `json:"id"`
	AuthorID   string      `json:"authorId"`
	AuthorName string      `json:"authorName"`
	Author     *authorJSON `json:"author,omitempty"`
	Content    string      `json:"content"`
	CreatedAt  time.Time   `json:"createdAt"`
}

func (c commentJSON) toDomain() domain.Comment {
	authorID, author := c.AuthorID, c.AuthorName
	if c.Author != nil {
		authorID, author = firstNonEmpty(authorID, c.Author.ID), firstNonEmpty(author, c.Author.Name)
	}
	return domain.Comment{
		ID:         c.ID,
		AuthorID:   authorID,
		AuthorName: clean(author),
		Body:       clean(c.Content),
		CreatedAt:  c.CreatedAt,
	}
}

type userJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u userJSON) toDomain() domain.User {
	return domain.User{ID: u.ID, Name: clean(u.Name), Email: u.Email, Role: domain.Role(u.Role)}
}

const dateLayout = "2006-01-02"

type profileJSON struct {
	ID            string   `json:"id,omitempty"`
	OwnerID       string   `json:"userId,omitempty"`
	Name          string   `json:"name"`
	BirthDate     string   `json:"birthDate"`
	DiagnosisDate string   `json:"diagnosisDate,omitempty"`
	SupportLevel  int      `json:"supportLevel,omitempty"`
	Communication string   `json:"communication,omitempty"`
	Sensitivities []string `json:"sensitivities,omitempty"`
	Interests     []string `json:"interests,omitempty"`
	Notes         string   `json:"notes,omitempty"`
}

func profileToJSON(p domain.AutismProfile) profileJSON {
	out := profileJSON{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Name:          p.Name,
		SupportLevel:  p.SupportLevel,
		Communication: p.Communication,
		Sensitivities: p.Sensitivities,
		Interests:     p.Interests,
		Notes:         p.Notes,
	}
	if !p.BirthDate.IsZero() {
		out.BirthDate = p.BirthDate.Format(dateLayout)
	}
	if !p.DiagnosisDate.IsZero() {
		out.DiagnosisDate = p.DiagnosisDate.Format(dateLayout)
	}
	return out
}

func (p profileJSON) toDomain() domain.AutismProfile {
	return domain.AutismProfile{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Name:          clean(p.Name),
		BirthDate:     parseDate(p.BirthDate),
		DiagnosisDate: parseDate(p.DiagnosisDate),
		SupportLevel:  p.SupportLevel,
		Communication: p.Communication,
		Sensitivities: p.Sensitivities,
		Interests:     p.Interests,
		Notes:         clean(p.Notes),
	}
}

// parseDate accepts a calendar date or a full timestamp.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

// clean strips terminal escape sequences from server-provided text.
func clean(s string) string {
	return strings.TrimSpace(ansi.Strip(s))
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
