package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/LogoBenz/authenticfurniture-backend/internal/catalog"
	"github.com/LogoBenz/authenticfurniture-backend/internal/customers"
	"github.com/LogoBenz/authenticfurniture-backend/internal/taxonomy"
	"github.com/LogoBenz/authenticfurniture-backend/internal/warehouses"
	pkgAuth "github.com/LogoBenz/authenticfurniture-backend/pkg/auth"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/config"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db/models"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/enums"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubCatalogService struct{}

func (stubCatalogService) Load(context.Context) error                      { return nil }
func (stubCatalogService) View(string, map[string]string) []models.Product { return nil }
func (stubCatalogService) Get(uuid.UUID) (models.Product, error)           { return models.Product{}, nil }
func (stubCatalogService) Create(_ context.Context, p models.Product) (models.Product, error) {
	return p, nil
}
func (stubCatalogService) Update(_ context.Context, p models.Product) (models.Product, error) {
	return p, nil
}
func (stubCatalogService) Delete(context.Context, uuid.UUID) error { return nil }
func (stubCatalogService) Stats() catalog.Stats                    { return catalog.Stats{} }

type stubCustomerService struct{}

func (stubCustomerService) Load(context.Context) error                       { return nil }
func (stubCustomerService) View(string, map[string]string) []models.Customer { return nil }
func (stubCustomerService) Get(uuid.UUID) (models.Customer, error) {
	return models.Customer{}, nil
}
func (stubCustomerService) Create(_ context.Context, c models.Customer) (models.Customer, error) {
	return c, nil
}
func (stubCustomerService) Update(_ context.Context, c models.Customer) (models.Customer, error) {
	return c, nil
}
func (stubCustomerService) Delete(context.Context, uuid.UUID) error { return nil }
func (stubCustomerService) Stats() customers.Stats                  { return customers.Stats{} }

type stubTaxonomyService struct{}

func (stubTaxonomyService) Load(context.Context) error                    { return nil }
func (stubTaxonomyService) View(string, map[string]string) []models.Space { return nil }
func (stubTaxonomyService) Get(uuid.UUID) (models.Space, error)           { return models.Space{}, nil }
func (stubTaxonomyService) Create(_ context.Context, s models.Space) (models.Space, error) {
	return s, nil
}
func (stubTaxonomyService) Update(_ context.Context, s models.Space) (models.Space, error) {
	return s, nil
}
func (stubTaxonomyService) Delete(context.Context, uuid.UUID) error { return nil }
func (stubTaxonomyService) MoveSubcategory(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}
func (stubTaxonomyService) Stats() taxonomy.Stats { return taxonomy.Stats{} }

type stubWarehouseService struct{}

func (stubWarehouseService) Load(context.Context) error                        { return nil }
func (stubWarehouseService) View(string, map[string]string) []models.Warehouse { return nil }
func (stubWarehouseService) Get(uuid.UUID) (models.Warehouse, error) {
	return models.Warehouse{}, nil
}
func (stubWarehouseService) Create(_ context.Context, w models.Warehouse) (models.Warehouse, error) {
	return w, nil
}
func (stubWarehouseService) Update(_ context.Context, w models.Warehouse) (models.Warehouse, error) {
	return w, nil
}
func (stubWarehouseService) Delete(context.Context, uuid.UUID) error { return nil }
func (stubWarehouseService) SetStock(_ context.Context, s models.WarehouseStock) (models.WarehouseStock, error) {
	return s, nil
}
func (stubWarehouseService) Stats() warehouses.Stats { return warehouses.Stats{} }

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil,
		nil,
		stubCatalogService{},
		stubCustomerService{},
		stubTaxonomyService{},
		stubWarehouseService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.AdminRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "ops@authenticfurniture.ng",
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestViewerCanReadButNotWrite(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.AdminRoleViewer)

	read := httptest.NewRequest(http.MethodGet, "/api/admin/v1/products", nil)
	read.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, read)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for viewer read got %d", resp.Code)
	}

	write := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/products/"+uuid.NewString()+"?confirm=true", nil)
	write.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, write)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer write got %d", resp.Code)
	}
}

func TestEditorCanDeleteWithConfirmation(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.AdminRoleEditor)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/warehouses/"+uuid.NewString()+"?confirm=true", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for editor delete got %d", resp.Code)
	}
}

func TestStatsRoutesAreReadable(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.AdminRoleViewer)

	for _, path := range []string{
		"/api/admin/v1/products/stats",
		"/api/admin/v1/customers/stats",
		"/api/admin/v1/spaces/stats",
		"/api/admin/v1/warehouses/stats",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s got %d", path, resp.Code)
		}
	}
}

func TestSubcategoryMoveIsWriterGated(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	token := buildToken(t, cfg, enums.AdminRoleViewer)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/spaces/subcategories/"+uuid.NewString()+"/move", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer move got %d", resp.Code)
	}
}

func TestReadyReportsDegradedWhenDatabaseDown(t *testing.T) {
	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	router := NewRouter(
		cfg,
		logg,
		stubPinger{err: context.DeadlineExceeded},
		nil,
		nil,
		stubCatalogService{},
		stubCustomerService{},
		stubTaxonomyService{},
		stubWarehouseService{},
	)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d", resp.Code)
	}
}
