// Package posttest provides test doubles for the post store.
package posttest

import (
	"context"

	"github.com/MicroServices-SocialApp/Post-API/engine/post"
	"github.com/stretchr/testify/mock"
)

// MockRepository implements post.Repository for testing
type MockRepository struct {
	mock.Mock
}

var _ post.Repository = (*MockRepository)(nil)

func (m *MockRepository) Create(ctx context.Context, text string, ownerID int64) (*post.Post, error) {
	args := m.Called(ctx, text, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*post.Post), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id int64) (*post.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*post.Post), args.Error(1)
}

func (m *MockRepository) ListPage(ctx context.Context, q post.PageQuery) (*post.Page, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*post.Page), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, id, ownerID int64, text string) (*post.Post, error) {
	args := m.Called(ctx, id, ownerID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*post.Post), args.Error(1)
}

func (m *MockRepository) Patch(ctx context.Context, id, ownerID int64, fields post.Fields) (*post.Post, error) {
	args := m.Called(ctx, id, ownerID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*post.Post), args.Error(1)
}

func (m *MockRepository) Delete(ctx context.Context, id, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 {
	return &v
}
