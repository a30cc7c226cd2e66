package usecases

import (
	"context"

	"go.uber.org/zap"
	"token-forge.backend/internal/domain/entities"
	domainerrors "token-forge.backend/internal/domain/errors"
	"token-forge.backend/internal/domain/repositories"
	"token-forge.backend/pkg/logger"
	"token-forge.backend/pkg/metrics"
)

// Chains reported under their own metrics label; anything else is counted as "other".
var knownChains = map[string]struct{}{
	"ethereum":  {},
	"polygon":   {},
	"bsc":       {},
	"solana":    {},
	"base":      {},
	"arbitrum":  {},
	"optimism":  {},
	"avalanche": {},
}

// BlueprintUsecase handles token blueprint creation and listing
type BlueprintUsecase struct {
	repo      repositories.BlueprintRepository
	validator *BlueprintValidator
	metrics   *metrics.Metrics
}

// NewBlueprintUsecase creates a new blueprint usecase. m may be nil.
func NewBlueprintUsecase(
	repo repositories.BlueprintRepository,
	validator *BlueprintValidator,
	m *metrics.Metrics,
) *BlueprintUsecase {
	if validator == nil {
		validator = NewBlueprintValidator()
	}
	return &BlueprintUsecase{
		repo:      repo,
		validator: validator,
		metrics:   m,
	}
}

// CreateBlueprint validates body and stores it as a new draft blueprint.
func (u *BlueprintUsecase) CreateBlueprint(ctx context.Context, body []byte) (*entities.CreateBlueprintResult, error) {
	input, err := u.validator.Decode(body)
	if err != nil {
		if u.metrics != nil {
			u.metrics.ValidationErrors.Inc()
		}
		logger.Debug(ctx, "Blueprint rejected", zap.Error(err))
		return nil, err
	}

	blueprint := input.ToBlueprint()
	if err := u.repo.Create(ctx, blueprint); err != nil {
		u.recordStoreError(domainerrors.OpCreate)
		logger.Error(ctx, "Failed to store blueprint", zap.String("symbol", blueprint.Symbol), zap.Error(err))
		return nil, domainerrors.NewStoreError(domainerrors.OpCreate, err)
	}

	if u.metrics != nil {
		u.metrics.BlueprintsCreated.WithLabelValues(chainLabel(blueprint.Chain)).Inc()
	}
	logger.Info(ctx, "Blueprint created",
		zap.String("id", blueprint.ID.String()),
		zap.String("symbol", blueprint.Symbol),
		zap.String("chain", blueprint.Chain),
	)

	return &entities.CreateBlueprintResult{
		ID:     blueprint.ID,
		Status: entities.CreateStatusCreated,
	}, nil
}

// ListBlueprints returns blueprints matching filter in store order.
func (u *BlueprintUsecase) ListBlueprints(ctx context.Context, filter entities.BlueprintFilter) ([]*entities.TokenBlueprint, error) {
	if filter.Limit < 0 {
		return nil, domainerrors.NewValidationError(domainerrors.FieldViolation{
			Field:   "limit",
			Message: "must be greater than or equal to 0",
		})
	}

	items, err := u.repo.List(ctx, filter)
	if err != nil {
		u.recordStoreError(domainerrors.OpList)
		logger.Error(ctx, "Failed to list blueprints",
			zap.String("chain", filter.Chain),
			zap.String("owner", filter.Owner),
			zap.Error(err),
		)
		return nil, domainerrors.NewStoreError(domainerrors.OpList, err)
	}
	if items == nil {
		items = []*entities.TokenBlueprint{}
	}

	if u.metrics != nil {
		u.metrics.BlueprintsListed.Observe(float64(len(items)))
	}
	return items, nil
}

func (u *BlueprintUsecase) recordStoreError(op string) {
	if u.metrics != nil {
		u.metrics.StoreErrors.WithLabelValues(op).Inc()
	}
}

func chainLabel(chain string) string {
	if _, ok := knownChains[chain]; ok {
		return chain
	}
	return "other"
}
