package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/MicroServices-SocialApp/Post-API/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// cachedPost is the serialized form of a post inside the cache.
type cachedPost struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	UserID    int64     `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func toCached(p *post.Post) cachedPost {
	return cachedPost{ID: p.ID, Text: p.Text, UserID: p.UserID, Timestamp: p.Timestamp}
}

func (c cachedPost) toPost() *post.Post {
	return &post.Post{ID: c.ID, Text: c.Text, UserID: c.UserID, Timestamp: c.Timestamp}
}

// generationStripes is the number of invalidation counters shared by all ids.
const generationStripes = 64

// PostRepository is a read-through cache for single post lookups. Mutations
// go to the wrapped store first and then evict the key. Pages are never
// cached since any insert shifts them.
//
// Every eviction bumps the generation of the id's stripe. A load only writes
// its row back when the generation it started under is still current, so a
// read that began before an update or delete cannot resurrect the old row.
type PostRepository struct {
	next        post.Repository
	kv          KV
	driver      string
	prefix      string
	ttl         time.Duration
	group       singleflight.Group
	bcast       *Broadcaster
	generations [generationStripes]atomic.Uint64
}

var (
	_ post.Repository    = (*PostRepository)(nil)
	_ post.HealthChecker = (*PostRepository)(nil)
)

// NewPostRepository wraps next with kv. driver only labels metrics.
func NewPostRepository(next post.Repository, kv KV, cfg *Config) *PostRepository {
	return &PostRepository{
		next:   next,
		kv:     kv,
		driver: cfg.Driver,
		prefix: cfg.Prefix,
		ttl:    cfg.ttl(),
	}
}

// WithBroadcaster makes every eviction also reach other instances through b.
func (r *PostRepository) WithBroadcaster(b *Broadcaster) *PostRepository {
	r.bcast = b
	return r
}

func (r *PostRepository) key(id int64) string {
	return r.prefix + strconv.FormatInt(id, 10)
}

// Create does not warm the cache: the id is unknown until the insert returns,
// so no generation can guard the write against an immediate delete.
func (r *PostRepository) Create(ctx context.Context, text string, ownerID int64) (*post.Post, error) {
	return r.next.Create(ctx, text, ownerID)
}

// Get serves from the cache and collapses concurrent misses for the same id
// into one store read. Cache failures fall back to the store. The shared read
// outlives the caller that started it; each caller stops waiting when its
// own ctx ends.
func (r *PostRepository) Get(ctx context.Context, id int64) (*post.Post, error) {
	key := r.key(id)
	start := time.Now()
	raw, err := r.kv.Get(ctx, key)
	switch {
	case err == nil:
		var cp cachedPost
		if jsonErr := json.Unmarshal(raw, &cp); jsonErr == nil {
			recordLookup(ctx, r.driver, resultHit, time.Since(start))
			return cp.toPost(), nil
		}
		logger.FromContext(ctx).Warn("Discarding undecodable cache entry", "key", key)
		recordLookup(ctx, r.driver, resultError, time.Since(start))
	case errors.Is(err, ErrNotFound):
		recordLookup(ctx, r.driver, resultMiss, time.Since(start))
	default:
		logger.FromContext(ctx).Warn("Post cache lookup failed", "key", key, "error", err)
		recordLookup(ctx, r.driver, resultError, time.Since(start))
	}
	loadCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key, func() (any, error) {
		gen := r.generation(id).Load()
		p, err := r.next.Get(loadCtx, id)
		if err != nil {
			return nil, err
		}
		r.storeIfCurrent(loadCtx, p, gen)
		return p, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		p := *res.Val.(*post.Post)
		return &p, nil
	}
}

func (r *PostRepository) ListPage(ctx context.Context, q post.PageQuery) (*post.Page, error) {
	return r.next.ListPage(ctx, q)
}

func (r *PostRepository) Update(ctx context.Context, id, ownerID int64, text string) (*post.Post, error) {
	p, err := r.next.Update(ctx, id, ownerID, text)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, id)
	return p, nil
}

func (r *PostRepository) Patch(ctx context.Context, id, ownerID int64, fields post.Fields) (*post.Post, error) {
	p, err := r.next.Patch(ctx, id, ownerID, fields)
	if err != nil {
		return nil, err
	}
	r.evict(ctx, id)
	return p, nil
}

// Delete evicts even when no row matched; a foreign delete costs one miss.
func (r *PostRepository) Delete(ctx context.Context, id, ownerID int64) error {
	if err := r.next.Delete(ctx, id, ownerID); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

// HealthCheck delegates to the wrapped store when it supports it.
func (r *PostRepository) HealthCheck(ctx context.Context) error {
	if hc, ok := r.next.(post.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

func (r *PostRepository) store(ctx context.Context, p *post.Post) {
	raw, err := json.Marshal(toCached(p))
	if err != nil {
		return
	}
	if err := r.kv.Set(ctx, r.key(p.ID), raw, r.ttl); err != nil {
		logger.FromContext(ctx).Warn("Post cache write failed", "post_id", p.ID, "error", err)
	}
}

func (r *PostRepository) evict(ctx context.Context, id int64) {
	r.evictLocal(ctx, id)
	if r.bcast == nil {
		return
	}
	if err := r.bcast.Publish(ctx, id); err != nil {
		logger.FromContext(ctx).Warn("Post cache invalidation broadcast failed", "post_id", id, "error", err)
	}
}

// storeIfCurrent writes p only while no eviction happened since gen was read.
// An eviction landing between the check and the write is caught by the
// second check, which removes the entry again.
func (r *PostRepository) storeIfCurrent(ctx context.Context, p *post.Post, gen uint64) {
	g := r.generation(p.ID)
	if g.Load() != gen {
		return
	}
	r.store(ctx, p)
	if g.Load() != gen {
		r.deleteKey(ctx, p.ID)
	}
}

func (r *PostRepository) generation(id int64) *atomic.Uint64 {
	return &r.generations[uint64(id)%generationStripes]
}

// evictLocal invalidates in-flight loads before deleting the entry, and
// detaches them from the singleflight key so later readers start a fresh load.
func (r *PostRepository) evictLocal(ctx context.Context, id int64) {
	r.generation(id).Add(1)
	r.group.Forget(r.key(id))
	r.deleteKey(ctx, id)
}

func (r *PostRepository) deleteKey(ctx context.Context, id int64) {
	if err := r.kv.Del(ctx, r.key(id)); err != nil {
		logger.FromContext(ctx).Warn("Post cache eviction failed", "post_id", id, "error", err)
	}
}
