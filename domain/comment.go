package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxCommentLength is the character limit the gateway enforces on comments.
const MaxCommentLength = 1000

// Comment is a user's reply under an article or activity.
type Comment struct {
	ID         string
	AuthorID   string
	AuthorName string
	Body       string
	CreatedAt  time.Time
}

// NormalizeComment trims the body and checks it against the gateway limits.
func NormalizeComment(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", ErrEmptyComment
	}
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return "", ErrCommentTooLong
	}
	return body, nil
}
