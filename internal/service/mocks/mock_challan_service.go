package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/chirag14252/challan-app/internal/model"
	"github.com/chirag14252/challan-app/internal/service"
)

type MockChallanService struct {
	mock.Mock
}

func (m *MockChallanService) Extract(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, modelID string) (*service.ExtractResult, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size, modelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExtractResult), args.Error(1)
}

func (m *MockChallanService) Submit(ctx context.Context, doc *model.ExtractedDocument, scriptURL, secret string) (*service.SubmitResult, error) {
	args := m.Called(ctx, doc, scriptURL, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

func (m *MockChallanService) ExportXLSX(doc *model.ExtractedDocument, w io.Writer) (int, error) {
	args := m.Called(doc, w)
	return args.Int(0), args.Error(1)
}

func (m *MockChallanService) ListModels(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockChallanService) CheckKey(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
