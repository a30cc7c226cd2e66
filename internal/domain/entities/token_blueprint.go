package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DeployStatus is the lifecycle tag of a blueprint. This service only ever writes DeployStatusDraft.
type DeployStatus string

const (
	DeployStatusDraft    DeployStatus = "draft"
	DeployStatusReady    DeployStatus = "ready"
	DeployStatusDeployed DeployStatus = "deployed"
	DeployStatusFailed   DeployStatus = "failed"
)

// Blueprint defaults applied when a submission omits the field.
const (
	DefaultDecimals = 18
	DefaultChain    = "ethereum"
)

// Valid reports whether s is one of the known statuses.
func (s DeployStatus) Valid() bool {
	switch s {
	case DeployStatusDraft, DeployStatusReady, DeployStatusDeployed, DeployStatusFailed:
		return true
	}
	return false
}

// TokenBlueprint is a user-submitted description of a token, prior to any on-chain action.
type TokenBlueprint struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Symbol          string       `json:"symbol"`
	Decimals        int          `json:"decimals"`
	TotalSupply     float64      `json:"total_supply"`
	Chain           string       `json:"chain"`
	Description     null.String  `json:"description"`
	ImageURL        null.String  `json:"image_url"`
	Website         null.String  `json:"website"`
	Twitter         null.String  `json:"twitter"`
	Telegram        null.String  `json:"telegram"`
	OwnerWallet     null.String  `json:"owner_wallet"`
	Features        []string     `json:"features"`
	DeployStatus    DeployStatus `json:"deploy_status"`
	ContractAddress null.String  `json:"contract_address"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// BlueprintInput is the client-submitted part of a blueprint after decoding and defaulting.
// The validate tags hold the field constraints checked at the boundary.
type BlueprintInput struct {
	Name        string   `json:"name"         validate:"required"`
	Symbol      string   `json:"symbol"       validate:"min=1,max=11"`
	Decimals    int      `json:"decimals"     validate:"min=0,max=18"`
	TotalSupply float64  `json:"total_supply" validate:"gt=0"`
	Chain       string   `json:"chain"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	Website     *string  `json:"website"`
	Twitter     *string  `json:"twitter"`
	Telegram    *string  `json:"telegram"`
	OwnerWallet *string  `json:"owner_wallet"`
	Features    []string `json:"features"`
}

// NewBlueprintInput returns an input with every default applied.
func NewBlueprintInput() BlueprintInput {
	return BlueprintInput{
		Decimals: DefaultDecimals,
		Chain:    DefaultChain,
		Features: []string{},
	}
}

// ToBlueprint builds an unsaved draft blueprint from the input.
func (in BlueprintInput) ToBlueprint() *TokenBlueprint {
	features := make([]string, len(in.Features))
	copy(features, in.Features)

	return &TokenBlueprint{
		Name:         in.Name,
		Symbol:       in.Symbol,
		Decimals:     in.Decimals,
		TotalSupply:  in.TotalSupply,
		Chain:        in.Chain,
		Description:  null.StringFromPtr(in.Description),
		ImageURL:     null.StringFromPtr(in.ImageURL),
		Website:      null.StringFromPtr(in.Website),
		Twitter:      null.StringFromPtr(in.Twitter),
		Telegram:     null.StringFromPtr(in.Telegram),
		OwnerWallet:  null.StringFromPtr(in.OwnerWallet),
		Features:     features,
		DeployStatus: DeployStatusDraft,
	}
}

// BlueprintFilter selects blueprints for listing. Empty strings do not filter.
// Limit 0 means no limit.
type BlueprintFilter struct {
	Chain string
	Owner string
	Limit int
}

// CreateBlueprintResult is returned after a successful insert.
type CreateBlueprintResult struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// CreateStatusCreated is the status marker returned by a successful create.
const CreateStatusCreated = "created"

// StoreDiagnostics describes what the store reports about itself.
type StoreDiagnostics struct {
	Driver      string
	Initialized bool
	Reachable   bool
	PingError   error
	Collections []string
	ListError   error
}
