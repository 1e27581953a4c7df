package router

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// ErrMissingParam is returned when a required query parameter is absent.
var ErrMissingParam = errors.New("missing query parameter")

// QueryInt64 parses a required integer query parameter.
func QueryInt64(c *gin.Context, name string) (int64, error) {
	raw, ok := c.GetQuery(name)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, name)
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return val, nil
}

// OptionalQueryInt64 parses an integer query parameter that may be absent.
func OptionalQueryInt64(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", name)
	}
	return &val, nil
}

// SetNextLink advertises the following page as an RFC 8288 Link header by
// rewriting cursorParam on the current request URL.
func SetNextLink(c *gin.Context, cursorParam string, nextCursor *int64) {
	if nextCursor == nil {
		return
	}
	if link := buildLink(c, cursorParam, strconv.FormatInt(*nextCursor, 10), "next"); link != "" {
		c.Header("Link", link)
	}
}

func buildLink(c *gin.Context, cursorParam, cursor, rel string) string {
	u, err := url.Parse(c.Request.URL.String())
	if err != nil || u == nil {
		return ""
	}
	q := u.Query()
	q.Set(cursorParam, cursor)
	u.RawQuery = q.Encode()
	return fmt.Sprintf("<%s>; rel=%q", sanitizedURL(u), rel)
}

func sanitizedURL(u *url.URL) string {
	if u.Scheme == "" && u.Host == "" {
		if u.RawQuery == "" {
			return u.Path
		}
		return u.Path + "?" + u.RawQuery
	}
	return u.String()
}
