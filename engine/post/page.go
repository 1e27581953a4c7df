package post

// PageQuery selects one page of posts ordered by id descending.
type PageQuery struct {
	Limit  int
	LastID *int64
}

// Validate rejects non-positive limits and cursors.
func (q PageQuery) Validate() error {
	if q.Limit <= 0 {
		return ErrInvalidLimit
	}
	if q.LastID != nil && *q.LastID <= 0 {
		return ErrInvalidCursor
	}
	return nil
}

// FetchSize is the number of rows a store must read to detect a following page.
func (q PageQuery) FetchSize() int {
	return q.Limit + 1
}

// Page is one slice of the id-descending post stream.
type Page struct {
	Items      []Post
	NextCursor *int64
	HasMore    bool
}

// BuildPage trims rows fetched with FetchSize down to limit and derives the
// cursor. NextCursor is set only when another page exists.
func BuildPage(rows []Post, limit int) *Page {
	page := &Page{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		page.HasMore = true
	}
	if page.Items == nil {
		page.Items = []Post{}
	}
	if page.HasMore && len(page.Items) > 0 {
		last := page.Items[len(page.Items)-1].ID
		page.NextCursor = &last
	}
	return page
}
