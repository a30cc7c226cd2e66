package repositories

import (
	"context"

	"token-forge.backend/internal/domain/entities"
)

// BlueprintRepository is the document collection holding token blueprints.
type BlueprintRepository interface {
	// Create inserts the blueprint, assigning its ID and timestamps.
	Create(ctx context.Context, blueprint *entities.TokenBlueprint) error
	// List returns blueprints matching every non-empty filter field, in store order.
	List(ctx context.Context, filter entities.BlueprintFilter) ([]*entities.TokenBlueprint, error)
	// Diagnostics reports store reachability and up to limit collection names.
	Diagnostics(ctx context.Context, limit int) entities.StoreDiagnostics
}
