package mocks

import (
	"context"

	"kundenstopper/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDisplayService struct {
	mock.Mock
}

func (m *MockDisplayService) Current(ctx context.Context) (*model.Display, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Display), args.Error(1)
}

func (m *MockDisplayService) Select(ctx context.Context, id int64) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDisplayService) SelectNewest(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDisplayService) ProtectedID(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
