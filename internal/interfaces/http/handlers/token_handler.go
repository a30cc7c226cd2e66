package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"token-forge.backend/internal/domain/entities"
	domainerrors "token-forge.backend/internal/domain/errors"
	"token-forge.backend/internal/interfaces/http/response"
	"token-forge.backend/internal/usecases"
	"token-forge.backend/pkg/utils"
)

// maxBlueprintBodyBytes bounds the create payload.
const maxBlueprintBodyBytes = 1 << 20

// TokenHandler handles token blueprint endpoints
type TokenHandler struct {
	blueprintUsecase *usecases.BlueprintUsecase
}

// NewTokenHandler creates a new token handler
func NewTokenHandler(blueprintUsecase *usecases.BlueprintUsecase) *TokenHandler {
	return &TokenHandler{blueprintUsecase: blueprintUsecase}
}

// BlueprintResponse is the wire form of a stored blueprint.
type BlueprintResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Symbol          string   `json:"symbol"`
	Decimals        int      `json:"decimals"`
	TotalSupply     float64  `json:"total_supply"`
	Chain           string   `json:"chain"`
	Description     *string  `json:"description"`
	ImageURL        *string  `json:"image_url"`
	Website         *string  `json:"website"`
	Twitter         *string  `json:"twitter"`
	Telegram        *string  `json:"telegram"`
	OwnerWallet     *string  `json:"owner_wallet"`
	Features        []string `json:"features"`
	DeployStatus    string   `json:"deploy_status"`
	ContractAddress *string  `json:"contract_address"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// NewBlueprintResponse renders ids as text and timestamps as RFC 3339 in UTC.
func NewBlueprintResponse(bp *entities.TokenBlueprint) BlueprintResponse {
	features := bp.Features
	if features == nil {
		features = []string{}
	}
	return BlueprintResponse{
		ID:              bp.ID.String(),
		Name:            bp.Name,
		Symbol:          bp.Symbol,
		Decimals:        bp.Decimals,
		TotalSupply:     bp.TotalSupply,
		Chain:           bp.Chain,
		Description:     bp.Description.Ptr(),
		ImageURL:        bp.ImageURL.Ptr(),
		Website:         bp.Website.Ptr(),
		Twitter:         bp.Twitter.Ptr(),
		Telegram:        bp.Telegram.Ptr(),
		OwnerWallet:     bp.OwnerWallet.Ptr(),
		Features:        features,
		DeployStatus:    string(bp.DeployStatus),
		ContractAddress: bp.ContractAddress.Ptr(),
		CreatedAt:       formatTimestamp(bp.CreatedAt),
		UpdatedAt:       formatTimestamp(bp.UpdatedAt),
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// CreateToken stores a new token blueprint
// POST /api/tokens
func (h *TokenHandler) CreateToken(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBlueprintBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, domainerrors.NewValidationError(domainerrors.FieldViolation{
				Field:   "body",
				Message: "payload too large",
			}))
			return
		}
		response.Error(c, domainerrors.BadRequest("failed to read request body"))
		return
	}

	result, err := h.blueprintUsecase.CreateBlueprint(c.Request.Context(), body)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"id":     result.ID.String(),
		"status": result.Status,
	})
}

// ListTokens lists token blueprints, optionally filtered by chain and owner
// GET /api/tokens
func (h *TokenHandler) ListTokens(c *gin.Context) {
	limit, err := utils.ParseLimit(c.Query("limit"), utils.DefaultListLimit)
	if err != nil {
		response.Error(c, domainerrors.NewValidationError(domainerrors.FieldViolation{
			Field:   "limit",
			Message: limitMessage(err),
		}))
		return
	}

	items, err := h.blueprintUsecase.ListBlueprints(c.Request.Context(), entities.BlueprintFilter{
		Chain: c.Query("chain"),
		Owner: c.Query("owner"),
		Limit: limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]BlueprintResponse, 0, len(items))
	for _, bp := range items {
		out = append(out, NewBlueprintResponse(bp))
	}

	response.Success(c, http.StatusOK, gin.H{"items": out})
}

func limitMessage(err error) string {
	if errors.Is(err, utils.ErrLimitNegative) {
		return "must be greater than or equal to 0"
	}
	return "must be an integer"
}
