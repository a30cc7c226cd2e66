package repositories

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"token-forge.backend/internal/domain/entities"
	domainerrors "token-forge.backend/internal/domain/errors"
	"token-forge.backend/internal/infrastructure/models"
	"token-forge.backend/pkg/utils"
)

// BlueprintRepository stores token blueprints through gorm.
type BlueprintRepository struct {
	db     *gorm.DB
	newID  func() uuid.UUID
	nowUTC func() time.Time

	migrate     func(ctx context.Context) error
	schemaMu    sync.Mutex
	schemaReady bool
}

// NewBlueprintRepository creates a new blueprint repository. db may be nil, in which case
// every operation reports the store as unavailable.
func NewBlueprintRepository(db *gorm.DB) *BlueprintRepository {
	r := &BlueprintRepository{
		db:     db,
		newID:  utils.GenerateUUIDv7,
		nowUTC: func() time.Time { return time.Now().UTC() },
	}
	r.migrate = func(ctx context.Context) error {
		return r.db.WithContext(ctx).AutoMigrate(&models.TokenBlueprint{})
	}
	return r
}

// Migrate creates or updates the blueprint collection. Create and List call it
// too until it succeeds once, so a store that was down at boot recovers.
func (r *BlueprintRepository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return domainerrors.ErrStoreUnavailable
	}

	r.schemaMu.Lock()
	defer r.schemaMu.Unlock()
	if r.schemaReady {
		return nil
	}
	if err := r.migrate(ctx); err != nil {
		return err
	}
	r.schemaReady = true
	return nil
}

// Create inserts a blueprint with a fresh ID and timestamps.
func (r *BlueprintRepository) Create(ctx context.Context, blueprint *entities.TokenBlueprint) error {
	if r.db == nil {
		return domainerrors.ErrStoreUnavailable
	}
	if blueprint == nil {
		return errors.New("nil blueprint")
	}
	if err := r.Migrate(ctx); err != nil {
		return err
	}

	now := r.nowUTC()
	m := toBlueprintModel(blueprint)
	m.ID = r.newID()
	m.CreatedAt = now
	m.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}

	blueprint.ID = m.ID
	blueprint.CreatedAt = m.CreatedAt
	blueprint.UpdatedAt = m.UpdatedAt
	return nil
}

// List returns blueprints matching the filter. Filters are exact and AND-combined.
func (r *BlueprintRepository) List(ctx context.Context, filter entities.BlueprintFilter) ([]*entities.TokenBlueprint, error) {
	if r.db == nil {
		return nil, domainerrors.ErrStoreUnavailable
	}
	if err := r.Migrate(ctx); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.TokenBlueprint{})
	if filter.Chain != "" {
		query = query.Where("chain = ?", filter.Chain)
	}
	if filter.Owner != "" {
		query = query.Where("owner_wallet = ?", filter.Owner)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var ms []models.TokenBlueprint
	if err := query.Find(&ms).Error; err != nil {
		return nil, err
	}

	blueprints := make([]*entities.TokenBlueprint, 0, len(ms))
	for i := range ms {
		blueprints = append(blueprints, toBlueprintEntity(&ms[i]))
	}
	return blueprints, nil
}

// Diagnostics pings the store and lists up to limit table names. It never fails;
// problems are reported in the returned value.
func (r *BlueprintRepository) Diagnostics(ctx context.Context, limit int) entities.StoreDiagnostics {
	var d entities.StoreDiagnostics
	if r == nil || r.db == nil {
		return d
	}
	d.Initialized = true
	d.Driver = r.db.Dialector.Name()

	sqlDB, err := r.db.DB()
	if err != nil {
		d.PingError = err
		return d
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		d.PingError = err
		return d
	}
	d.Reachable = true

	tables, err := r.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		d.ListError = err
		return d
	}
	if limit > 0 && len(tables) > limit {
		tables = tables[:limit]
	}
	d.Collections = tables
	return d
}

func toBlueprintModel(e *entities.TokenBlueprint) *models.TokenBlueprint {
	features := e.Features
	if features == nil {
		features = []string{}
	}
	status := string(e.DeployStatus)
	if status == "" {
		status = string(entities.DeployStatusDraft)
	}

	return &models.TokenBlueprint{
		ID:              e.ID,
		Name:            e.Name,
		Symbol:          e.Symbol,
		Decimals:        e.Decimals,
		TotalSupply:     e.TotalSupply,
		Chain:           e.Chain,
		Description:     e.Description.Ptr(),
		ImageURL:        e.ImageURL.Ptr(),
		Website:         e.Website.Ptr(),
		Twitter:         e.Twitter.Ptr(),
		Telegram:        e.Telegram.Ptr(),
		OwnerWallet:     e.OwnerWallet.Ptr(),
		Features:        features,
		DeployStatus:    status,
		ContractAddress: e.ContractAddress.Ptr(),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func toBlueprintEntity(m *models.TokenBlueprint) *entities.TokenBlueprint {
	features := m.Features
	if features == nil {
		features = []string{}
	}

	return &entities.TokenBlueprint{
		ID:              m.ID,
		Name:            m.Name,
		Symbol:          m.Symbol,
		Decimals:        m.Decimals,
		TotalSupply:     m.TotalSupply,
		Chain:           m.Chain,
		Description:     null.StringFromPtr(m.Description),
		ImageURL:        null.StringFromPtr(m.ImageURL),
		Website:         null.StringFromPtr(m.Website),
		Twitter:         null.StringFromPtr(m.Twitter),
		Telegram:        null.StringFromPtr(m.Telegram),
		OwnerWallet:     null.StringFromPtr(m.OwnerWallet),
		Features:        features,
		DeployStatus:    entities.DeployStatus(m.DeployStatus),
		ContractAddress: null.StringFromPtr(m.ContractAddress),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
