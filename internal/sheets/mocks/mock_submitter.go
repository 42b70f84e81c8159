package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chirag14252/challan-app/internal/model"
	"github.com/chirag14252/challan-app/internal/sheets"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, rows []model.OutputRow, endpointURL, secret string) sheets.Outcome {
	args := m.Called(ctx, rows, endpointURL, secret)
	return args.Get(0).(sheets.Outcome)
}
