package posttest

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
)

// MemoryRepository is an in-process post.Repository used by handler and
// decorator tests. It honours the same ownership and uniqueness rules as the
// SQL stores.
type MemoryRepository struct {
	mu     sync.Mutex
	posts  map[int64]post.Post
	nextID int64
	now    func() time.Time
}

var _ post.Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{posts: make(map[int64]post.Post), now: time.Now}
}

func (r *MemoryRepository) Create(_ context.Context, text string, ownerID int64) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.textTaken(text, 0) {
		return nil, post.ErrConflict
	}
	r.nextID++
	p := post.Post{ID: r.nextID, Text: text, UserID: ownerID, Timestamp: r.now().UTC()}
	r.posts[p.ID] = p
	return &p, nil
}

func (r *MemoryRepository) Get(_ context.Context, id int64) (*post.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrNotFound
	}
	return &p, nil
}

func (r *MemoryRepository) ListPage(_ context.Context, q post.PageQuery) (*post.Page, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make([]post.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if q.LastID == nil || p.ID < *q.LastID {
			rows = append(rows, p)
		}
	}
	slices.SortFunc(rows, func(a, b post.Post) int {
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		default:
			return 0
		}
	})
	if len(rows) > q.FetchSize() {
		rows = rows[:q.FetchSize()]
	}
	return post.BuildPage(rows, q.Limit), nil
}

func (r *MemoryRepository) Update(ctx context.Context, id, ownerID int64, text string) (*post.Post, error) {
	return r.Patch(ctx, id, ownerID, post.Fields{Text: &text})
}

func (r *MemoryRepository) Patch(_ context.Context, id, ownerID int64, fields post.Fields) (*post.Post, error) {
	if fields.IsEmpty() {
		return nil, post.ErrEmptyPatch
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok || p.UserID != ownerID {
		return nil, post.ErrNotFound
	}
	if fields.Text != nil {
		if r.textTaken(*fields.Text, id) {
			return nil, post.ErrConflict
		}
		p.Text = *fields.Text
	}
	r.posts[id] = p
	return &p, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id, ownerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok && p.UserID == ownerID {
		delete(r.posts, id)
	}
	return nil
}

func (r *MemoryRepository) textTaken(text string, except int64) bool {
	for id, p := range r.posts {
		if id != except && p.Text == text {
			return true
		}
	}
	return false
}
