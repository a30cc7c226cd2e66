package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"token-forge.backend/internal/interfaces/http/response"
	"token-forge.backend/internal/usecases"
)

const (
	RootMessage  = "Token Forge Backend running"
	HelloMessage = "Welcome to Token Forge"
)

// MetaHandler serves the banner and diagnostics endpoints
type MetaHandler struct {
	diagnostics *usecases.DiagnosticsUsecase
}

// NewMetaHandler creates a new meta handler
func NewMetaHandler(diagnostics *usecases.DiagnosticsUsecase) *MetaHandler {
	return &MetaHandler{diagnostics: diagnostics}
}

// Root
// GET /
func (h *MetaHandler) Root(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": RootMessage})
}

// Hello
// GET /api/hello
func (h *MetaHandler) Hello(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": HelloMessage})
}

// StoreDiagnostics reports backend and store status. It always answers 200.
// GET /test
func (h *MetaHandler) StoreDiagnostics(c *gin.Context) {
	response.Success(c, http.StatusOK, h.diagnostics.StoreReport(c.Request.Context()))
}
