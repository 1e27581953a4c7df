// Package post holds the post entity, its store contract and the keyset
// pagination rules shared by every store implementation.
package post

import (
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTextLength is the maximum number of characters in a post body.
const MaxTextLength = 256

// Post is a single text post owned by a user.
type Post struct {
	ID        int64     `db:"id"`
	Text      string    `db:"text"`
	UserID    int64     `db:"user_id"`
	Timestamp time.Time `db:"timestamp"`
}

// Fields is the sparse set of mutable columns carried by a patch.
// A nil member is left untouched.
type Fields struct {
	Text *string
}

// IsEmpty reports whether the patch carries no field at all.
func (f Fields) IsEmpty() bool {
	return f.Text == nil
}

// ValidateText checks a post body against the length and emptiness rules.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrInvalidText
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return ErrTextTooLong
	}
	return nil
}
