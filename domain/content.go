package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// ContentKind distinguishes the two kinds of content the platform serves.
type ContentKind int

const (
	KindArticle ContentKind = iota
	KindActivity
)

func (k ContentKind) String() string {
	switch k {
	case KindArticle:
		return "article"
	case KindActivity:
		return "activity"
	default:
		return fmt.Sprintf("ContentKind(%d)", int(k))
	}
}

// Plural returns the collection name, e.g. "activities".
func (k ContentKind) Plural() string {
	if k == KindActivity {
		return "activities"
	}
	return k.String() + "s"
}

// Counts is the denormalized interaction counter record carried by content.
type Counts struct {
	Likes     int
	Favorites int
	Comments  int
}

// Bump returns a copy with the counter for kind moved by delta.
// Counters never go below zero.
func (c Counts) Bump(kind InteractionKind, delta int) Counts {
	switch kind {
	case Like:
		c.Likes = max(0, c.Likes+delta)
	case Favorite:
		c.Favorites = max(0, c.Favorites+delta)
	}
	return c
}

// Of returns the counter for an interaction kind.
func (c Counts) Of(kind InteractionKind) int {
	switch kind {
	case Like:
		return c.Likes
	case Favorite:
		return c.Favorites
	default:
		return 0
	}
}

// Content is satisfied by every content type a list view can hold.
// T is the concrete type itself so WithCounts can return it unboxed.
type Content[T any] interface {
	ContentID() string
	ContentKind() ContentKind
	ContentCounts() Counts
	WithCounts(Counts) T
	Headline() string
}

// Article is a long-form text published by a professional.
type Article struct {
	ID        string
	AuthorID  string
	Author    string
	Title     string
	Summary   string
	Body      string
	Category  string
	Tags      []string
	Counts    Counts
	CreatedAt time.Time
}

func (a Article) ContentID() string        { return a.ID }
func (a Article) ContentKind() ContentKind { return KindArticle }
func (a Article) ContentCounts() Counts    { return a.Counts }
func (a Article) Headline() string         { return a.Title }

func (a Article) WithCounts(c Counts) Article {
	a.Counts = c
	return a
}

// Activity is a guided exercise caregivers run with the person they support.
type Activity struct {
	ID              string
	AuthorID        string
	Author          string
	Title           string
	Description     string
	Category        string
	Difficulty      string
	DurationMinutes int
	Materials       []string
	Counts          Counts
	CreatedAt       time.Time
}

func (a Activity) ContentID() string        { return a.ID }
func (a Activity) ContentKind() ContentKind { return KindActivity }
func (a Activity) ContentCounts() Counts    { return a.Counts }
func (a Activity) Headline() string         { return a.Title }

func (a Activity) WithCounts(c Counts) Activity {
	a.Counts = c
	return a
}

// ContentRef points at exactly one article or one activity.
// The zero value is invalid; build refs with ArticleRef, ActivityRef or RefFor.
type ContentRef struct {
	kind ContentKind
	id   string
}

// ArticleRef references an article by ID.
func ArticleRef(id string) ContentRef { return ContentRef{kind: KindArticle, id: id} }

// ActivityRef references an activity by ID.
func ActivityRef(id string) ContentRef { return ContentRef{kind: KindActivity, id: id} }

// RefFor references content of the given kind by ID.
func RefFor(kind ContentKind, id string) ContentRef { return ContentRef{kind: kind, id: id} }

func (r ContentRef) Kind() ContentKind { return r.kind }
func (r ContentRef) ID() string        { return r.id }

// Valid reports whether the ref names a known kind and a non-empty ID.
func (r ContentRef) Valid() bool {
	return r.id != "" && (r.kind == KindArticle || r.kind == KindActivity)
}

func (r ContentRef) String() string {
	return r.kind.String() + ":" + r.id
}

// ForeignKey returns the JSON field name the gateway uses for this ref.
func (r ContentRef) ForeignKey() string {
	if r.kind == KindActivity {
		return "activityId"
	}
	return "articleId"
}

// MarshalJSON encodes the ref as a body carrying exactly one foreign key.
func (r ContentRef) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, ErrInvalidRef
	}
	return json.Marshal(map[string]string{r.ForeignKey(): r.id})
}
