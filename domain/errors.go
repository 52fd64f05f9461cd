package domain

import "errors"

var (
	// ErrUnauthorized indicates missing, expired or rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRef indicates a content reference without a kind or an ID.
	ErrInvalidRef = errors.New("invalid content reference")

	// ErrEmptyComment indicates the user submitted an empty comment.
	ErrEmptyComment = errors.New("comment cannot be empty")

	// ErrCommentTooLong indicates the comment exceeds the character limit.
	ErrCommentTooLong = errors.New("comment exceeds character limit")
)
