package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/chirag14252/challan-app/internal/archive"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Put(ctx context.Context, key string, r io.Reader, opt archive.PutOptions) (archive.PhotoInfo, error) {
	args := m.Called(ctx, key, r, opt)
	return args.Get(0).(archive.PhotoInfo), args.Error(1)
}

func (m *MockStore) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}
