package mocks

import (
	"context"

	"kundenstopper/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRetentionService struct {
	mock.Mock
}

func (m *MockRetentionService) Sweep(ctx context.Context) (*service.SweepResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SweepResult), args.Error(1)
}
