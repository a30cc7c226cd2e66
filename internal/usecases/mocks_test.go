package usecases_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"token-forge.backend/internal/domain/entities"
)

// MockBlueprintRepository is a testify mock of repositories.BlueprintRepository.
type MockBlueprintRepository struct {
	mock.Mock
}

func (m *MockBlueprintRepository) Create(ctx context.Context, blueprint *entities.TokenBlueprint) error {
	args := m.Called(ctx, blueprint)
	return args.Error(0)
}

func (m *MockBlueprintRepository) List(ctx context.Context, filter entities.BlueprintFilter) ([]*entities.TokenBlueprint, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.TokenBlueprint), args.Error(1)
}

func (m *MockBlueprintRepository) Diagnostics(ctx context.Context, limit int) entities.StoreDiagnostics {
	args := m.Called(ctx, limit)
	return args.Get(0).(entities.StoreDiagnostics)
}
