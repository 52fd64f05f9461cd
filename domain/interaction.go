package domain

import (
	"fmt"
	"time"
)

// InteractionKind is a per-user mark a user can toggle on content.
type InteractionKind int

const (
	Like InteractionKind = iota
	Favorite
)

func (k InteractionKind) String() string {
	switch k {
	case Like:
		return "like"
	case Favorite:
		return "favorite"
	default:
		return fmt.Sprintf("InteractionKind(%d)", int(k))
	}
}

// Interaction is one record of the "my likes" / "my favorites" listings.
// Nested content is absent when the server no longer has it.
type Interaction struct {
	ID         string
	UserID     string
	ArticleID  string
	ActivityID string
	CreatedAt  time.Time
	Article    *Article
	Activity   *Activity
}

// ContentID returns the foreign key relevant to kind, or false when the
// record does not point at content of that kind.
func (i Interaction) ContentID(kind ContentKind) (string, bool) {
	var id string
	switch kind {
	case KindArticle:
		id = i.ArticleID
	case KindActivity:
		id = i.ActivityID
	}
	return id, id != ""
}

// ToggleResult is the authoritative outcome of a toggle request.
type ToggleResult struct {
	Kind    InteractionKind
	Active  bool // liked / favorited after the toggle
	Message string
}
