package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	postTable        = "post"
	uniqueViolation  = "23505"
	returningColumns = `RETURNING id, text, user_id, "timestamp"`
)

var postColumns = []string{"id", "text", "user_id", `"timestamp"`}

// DBInterface defines the minimal interface needed by the repository
type DBInterface interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostRepo implements post.Repository on PostgreSQL.
type PostRepo struct {
	db DBInterface
}

func NewPostRepo(db DBInterface) *PostRepo {
	return &PostRepo{db: db}
}

var _ post.Repository = (*PostRepo)(nil)

func psql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *PostRepo) Create(ctx context.Context, text string, ownerID int64) (*post.Post, error) {
	query, args, err := psql().Insert(postTable).
		Columns("text", "user_id").
		Values(text, ownerID).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building insert query: %w", err)
	}
	var p post.Post
	if err := pgxscan.Get(ctx, r.db, &p, query, args...); err != nil {
		return nil, mapError("inserting post", err)
	}
	return &p, nil
}

func (r *PostRepo) Get(ctx context.Context, id int64) (*post.Post, error) {
	query, args, err := psql().Select(postColumns...).
		From(postTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building select query: %w", err)
	}
	var p post.Post
	if err := pgxscan.Get(ctx, r.db, &p, query, args...); err != nil {
		return nil, mapError("selecting post", err)
	}
	return &p, nil
}

// ListPage reads limit+1 rows below the cursor, newest first.
func (r *PostRepo) ListPage(ctx context.Context, q post.PageQuery) (*post.Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	qb := psql().Select(postColumns...).
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
	var rows []post.Post
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, mapError("listing posts", err)
	}
	return post.BuildPage(rows, q.Limit), nil
}

func (r *PostRepo) Update(ctx context.Context, id, ownerID int64, text string) (*post.Post, error) {
	return r.Patch(ctx, id, ownerID, post.Fields{Text: &text})
}

// Patch sets the present fields on a post matching both id and owner.
func (r *PostRepo) Patch(ctx context.Context, id, ownerID int64, fields post.Fields) (*post.Post, error) {
	if fields.IsEmpty() {
		return nil, post.ErrEmptyPatch
	}
	ub := psql().Update(postTable)
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
	var p post.Post
	if err := pgxscan.Get(ctx, r.db, &p, query, args...); err != nil {
		return nil, mapError("updating post", err)
	}
	return &p, nil
}

// Delete removes a post matching both id and owner. Zero affected rows is not an error.
func (r *PostRepo) Delete(ctx context.Context, id, ownerID int64) error {
	query, args, err := psql().Delete(postTable).
		Where(squirrel.Eq{"id": id, "user_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building delete query: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return mapError("deleting post", err)
	}
	return nil
}

// mapError translates driver errors into the post error taxonomy.
func mapError(op string, err error) error {
	if pgxscan.NotFound(err) {
		return post.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return post.ErrConflict
	}
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w: %w", op, post.ErrUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	return errors.As(err, &connErr)
}
