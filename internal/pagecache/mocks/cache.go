// Package mocks provides a mock implementation of pagecache.Cache.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/invoicedash/dashboard/internal/pagecache"
)

// MockCache is a mock implementation of pagecache.Cache.
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, path, key string) (pagecache.Entry, error) {
	args := m.Called(ctx, path, key)
	return args.Get(0).(pagecache.Entry), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, path, key string, generation int64, value []byte) error {
	args := m.Called(ctx, path, key, generation, value)
	return args.Error(0)
}

func (m *MockCache) Revalidate(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
