package cache

import (
	"context"
	"fmt"
	"time"

	sdk "github.com/echovault/sugardb/sugardb"
)

// SugarAdapter implements KV on an embedded SugarDB instance owned by the
// adapter.
type SugarAdapter struct {
	db *sdk.SugarDB
}

func NewSugarAdapter(ctx context.Context) (*SugarAdapter, error) {
	db, err := sdk.NewSugarDB(sdk.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to start embedded sugardb: %w", err)
	}
	return &SugarAdapter{db: db}, nil
}

// Get goes through MGET since SugarDB reports a missing key as an empty value.
func (a *SugarAdapter) Get(_ context.Context, key string) ([]byte, error) {
	vals, err := a.db.MGet(key)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 || vals[0] == "" {
		return nil, ErrNotFound
	}
	return []byte(vals[0]), nil
}

func (a *SugarAdapter) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	opt := sdk.SETOptions{}
	if ttl > 0 {
		opt.ExpireOpt = sdk.SETPX
		opt.ExpireTime = int(ttl.Milliseconds())
	}
	_, _, err := a.db.Set(key, string(value), opt)
	return err
}

func (a *SugarAdapter) Del(_ context.Context, keys ...string) error {
	_, err := a.db.Del(keys...)
	return err
}

func (a *SugarAdapter) Close() {
	a.db.ShutDown()
}
