package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chirag14252/challan-app/internal/model"
)

type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, image []byte, mimeType, modelID string) (*model.ExtractedDocument, error) {
	args := m.Called(ctx, image, mimeType, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ExtractedDocument), args.Error(1)
}

func (m *MockExtractor) ListModels(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockExtractor) CheckKey(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
