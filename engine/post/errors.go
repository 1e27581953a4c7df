package post

import "errors"

var (
	// ErrNotFound is returned when a post is absent or not owned by the caller.
	ErrNotFound = errors.New("post not found")
	// ErrConflict is returned when the text duplicates an existing post.
	ErrConflict = errors.New("post text already exists")
	// ErrEmptyPatch is returned when a patch carries no fields.
	ErrEmptyPatch = errors.New("patch must set at least one field")
	// ErrInvalidText is returned for an empty post body.
	ErrInvalidText = errors.New("text must not be empty")
	// ErrTextTooLong is returned when a post body exceeds MaxTextLength.
	ErrTextTooLong   = errors.New("text exceeds 256 characters")
	ErrInvalidLimit  = errors.New("limit must be a positive integer")
	ErrInvalidCursor = errors.New("last_id must be a positive integer")
	// ErrUnavailable marks backend failures such as a closed pool or an expired deadline.
	ErrUnavailable = errors.New("post store unavailable")
)

// IsValidation reports whether err is a caller input error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyPatch) ||
		errors.Is(err, ErrInvalidText) ||
		errors.Is(err, ErrTextTooLong) ||
		errors.Is(err, ErrInvalidLimit) ||
		errors.Is(err, ErrInvalidCursor)
}
