package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/georgysavva/scany/v2/sqlscan"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	postTable        = "post"
	timestampLayout  = "2006-01-02T15:04:05.000000000Z"
	returningColumns = `RETURNING id, text, user_id, "timestamp"`
)

var postColumns = []string{"id", "text", "user_id", `"timestamp"`}

// timestampLayouts lists every text form a timestamp can come back in: ours,
// the column default, and modernc's own time encoding.
var timestampLayouts = []string{
	time.RFC3339Nano,
	timestampLayout,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
}

// sqliteTime scans a timestamp stored as text or decoded by the driver.
type sqliteTime struct {
	time.Time
}

func (t *sqliteTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("sqlite: unsupported timestamp type %T", src)
	}
}

func (t *sqliteTime) parse(s string) error {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("sqlite: unparseable timestamp %q", s)
}

type postRow struct {
	ID        int64      `db:"id"`
	Text      string     `db:"text"`
	UserID    int64      `db:"user_id"`
	Timestamp sqliteTime `db:"timestamp"`
}

func (r *postRow) toPost() *post.Post {
	return &post.Post{ID: r.ID, Text: r.Text, UserID: r.UserID, Timestamp: r.Timestamp.Time}
}

// PostRepo implements post.Repository on SQLite.
type PostRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db, now: time.Now}
}

var _ post.Repository = (*PostRepo)(nil)

func (r *PostRepo) Create(ctx context.Context, text string, ownerID int64) (*post.Post, error) {
	query, args, err := squirrel.Insert(postTable).
		Columns("text", "user_id", `"timestamp"`).
		Values(text, ownerID, r.now().UTC().Format(timestampLayout)).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert query: %w", err)
	}
	var row postRow
	if err := sqlscan.Get(ctx, r.db, &row, query, args...); err != nil {
		return nil, mapError("inserting post", err)
	}
	return row.toPost(), nil
}

func (r *PostRepo) Get(ctx context.Context, id int64) (*post.Post, error) {
	query, args, err := squirrel.Select(postColumns...).
		From(postTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	var row postRow
	if err := sqlscan.Get(ctx, r.db, &row, query, args...); err != nil {
		return nil, mapError("selecting post", err)
	}
	return row.toPost(), nil
}

func (r *PostRepo) ListPage(ctx context.Context, q post.PageQuery) (*post.Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	qb := squirrel.Select(postColumns...).
		From(postTable).
		OrderBy("id DESC").
		Limit(uint64(q.FetchSize()))
	if q.LastID != nil {
		qb = qb.Where(squirrel.Lt{"id": *q.LastID})
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building page query: %w", err)
	}
	var rows []postRow
	if err := sqlscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, mapError("listing posts", err)
	}
	posts := make([]post.Post, 0, len(rows))
	for i := range rows {
		posts = append(posts, *rows[i].toPost())
	}
	return post.BuildPage(posts, q.Limit), nil
}

func (r *PostRepo) Update(ctx context.Context, id, ownerID int64, text string) (*post.Post, error) {
	return r.Patch(ctx, id, ownerID, post.Fields{Text: &text})
}

// Patch relies on UPDATE ... RETURNING so the owner check and the write are
// one statement.
func (r *PostRepo) Patch(ctx context.Context, id, ownerID int64, fields post.Fields) (*post.Post, error) {
	if fields.IsEmpty() {
		return nil, post.ErrEmptyPatch
	}
	ub := squirrel.Update(postTable)
	if fields.Text != nil {
		ub = ub.Set("text", *fields.Text)
	}
	query, args, err := ub.
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building update query: %w", err)
	}
	var row postRow
	if err := sqlscan.Get(ctx, r.db, &row, query, args...); err != nil {
		return nil, mapError("updating post", err)
	}
	return row.toPost(), nil
}

func (r *PostRepo) Delete(ctx context.Context, id, ownerID int64) error {
	query, args, err := squirrel.Delete(postTable).
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return mapError("deleting post", err)
	}
	return nil
}

func mapError(op string, err error) error {
	if sqlscan.NotFound(err) {
		return post.ErrNotFound
	}
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		if sqErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return post.ErrConflict
		}
		// extended codes carry the primary code in the low byte
		switch sqErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return fmt.Errorf("%s: %w: %w", op, post.ErrUnavailable, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%s: %w: %w", op, post.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
