package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"token-forge.backend/internal/domain/entities"
	"token-forge.backend/internal/domain/repositories"
	repoimpl "token-forge.backend/internal/infrastructure/repositories"
	"token-forge.backend/internal/usecases"
)

type blueprintRepoStub struct {
	createFn      func(ctx context.Context, bp *entities.TokenBlueprint) error
	listFn        func(ctx context.Context, filter entities.BlueprintFilter) ([]*entities.TokenBlueprint, error)
	diagnosticsFn func(ctx context.Context, limit int) entities.StoreDiagnostics
}

func (s *blueprintRepoStub) Create(ctx context.Context, bp *entities.TokenBlueprint) error {
	if s.createFn != nil {
		return s.createFn(ctx, bp)
	}
	return nil
}

func (s *blueprintRepoStub) List(ctx context.Context, filter entities.BlueprintFilter) ([]*entities.TokenBlueprint, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return []*entities.TokenBlueprint{}, nil
}

func (s *blueprintRepoStub) Diagnostics(ctx context.Context, limit int) entities.StoreDiagnostics {
	if s.diagnosticsFn != nil {
		return s.diagnosticsFn(ctx, limit)
	}
	return entities.StoreDiagnostics{}
}

func newSQLiteRepo(t *testing.T) *repoimpl.BlueprintRepository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	repo := repoimpl.NewBlueprintRepository(db)
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func newTokenRouter(repo repositories.BlueprintRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewTokenHandler(usecases.NewBlueprintUsecase(repo, nil, nil))

	r := gin.New()
	r.POST("/api/tokens", h.CreateToken)
	r.GET("/api/tokens", h.ListTokens)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, target string, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body=%s", w.Body.String())
	}
	return w, out
}
