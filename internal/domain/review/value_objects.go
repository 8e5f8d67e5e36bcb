package review

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 1000
)

var (
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrEmptyComment   = errors.New("comment cannot be empty")
	ErrCommentTooLong = errors.New("comment exceeds maximum length")
)

type Rating int

func NewRating(v int) (Rating, error) {
	if v < MinRating || v > MaxRating {
		return 0, ErrInvalidRating
	}
	return Rating(v), nil
}

func (r Rating) Value() int { return int(r) }

// Comment is trimmed; its length is counted in characters, not bytes.
type Comment string

func NewComment(s string) (Comment, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return "", ErrEmptyComment
	case utf8.RuneCountInString(s) > MaxCommentLength:
		return "", ErrCommentTooLong
	}
	return Comment(s), nil
}

func (c Comment) String() string { return string(c) }

// Content is what a reviewer writes; it is replaced as a whole on edit.
type Content struct {
	Rating  Rating
	Comment Comment
}

// NewContent reports the rating error first when both fields are invalid.
func NewContent(rating int, comment string) (Content, error) {
	r, err := NewRating(rating)
	if err != nil {
		return Content{}, err
	}
	c, err := NewComment(comment)
	if err != nil {
		return Content{}, err
	}
	return Content{Rating: r, Comment: c}, nil
}
