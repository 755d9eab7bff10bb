//go:build integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/fba-quote-service/config"
	"github.com/guttosm/fba-quote-service/internal/domain/dto"
	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func integrationConfig(t *testing.T) config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			LogLevel:       "error",
			RateLimit:      0,
			RequestTimeout: 10 * time.Second,
		},
		Database: sharedDatabaseConfig(t),
		RefData:  config.RefDataConfig{Path: ":memory:"},
		Carriers: config.CarriersConfig{
			HTTPTimeout:             time.Second,
			BreakerFailureThreshold: 3,
			BreakerSuccessThreshold: 1,
			BreakerTimeout:          time.Minute,
		},
		Pricing: config.Load().Pricing,
		Audit: config.AuditConfig{
			Backend:      AuditBackendMongo,
			BufferSize:   100,
			Workers:      1,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func TestInitializeDatabase_Integration(t *testing.T) {
	cfg := integrationConfig(t)

	db := InitializeDatabase(cfg.Database)
	require.NotNil(t, db)
	defer func() { _ = db.DB.Close(context.Background()) }()

	assert.NoError(t, db.DB.HealthCheck(context.Background()))
	assert.Equal(t, "mongodb", db.CircuitBreaker.GetStats().Name)
	assert.NotNil(t, db.QuoteRepo)
	assert.NotNil(t, db.QuotationRepo)
	assert.NotNil(t, db.AuditRepo)

	t.Run("unreachable server", func(t *testing.T) {
		bad := cfg.Database
		bad.URI = "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200"
		assert.Nil(t, InitializeDatabase(bad))
	})
}

func TestInitializeApp_Integration(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	cfg := integrationConfig(t)

	a, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer a.Close()
	require.NotNil(t, a.Database)

	require.NoError(t, testutil.InsertQuote(ctx, a.Database.DB.Database, testutil.QuoteFixture{
		ID:            "AGQ-2001",
		ShipmentScope: "Port-to-Door",
		Origin:        "Nhava Sheva (INNSA)",
		ReadinessDate: "2026-03-02",
		FBA:           "yes",
		Order:         []string{"XYZ1 - Nowhere"},
		Destinations: map[string][]testutil.CargoRow{
			"XYZ1 - Nowhere": {{PackageType: "Box", NumPackages: "10", TotalWeight: "200", TotalVolume: "2"}},
		},
	}))
	require.NoError(t, testutil.InsertQuote(ctx, a.Database.DB.Database, testutil.QuoteFixture{
		ID:            "AGQ-2002",
		ShipmentScope: "Port-to-Door",
		FBA:           "no",
	}))

	serve := func(requestID, method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("X-Request-ID", requestID)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		a.Engine.ServeHTTP(w, req)
		return w
	}

	t.Run("readiness includes mongodb", func(t *testing.T) {
		w := serve("req-ready", http.MethodGet, "/readyz", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)
		assert.Contains(t, w.Body.String(), `"mongodb_circuit":"closed"`)
	})

	t.Run("unknown destination is reported", func(t *testing.T) {
		w := serve("req-rated", http.MethodPost, "/api/quotes/AGQ-2001/rates", `{}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data dto.QuoteRatesResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "AGQ-2001", resp.Data.QuoteID)
		assert.False(t, resp.Data.Saved)
		assert.Equal(t, []string{"FBA Code XYZ1 not found in FBA locations"}, resp.Data.Errors)
	})

	t.Run("rejections", func(t *testing.T) {
		assert.Equal(t, http.StatusUnprocessableEntity, serve("req-not-fba", http.MethodPost, "/api/quotes/AGQ-2002/rates", `{}`).Code)
		assert.Equal(t, http.StatusNotFound, serve("req-missing", http.MethodPost, "/api/quotes/AGQ-4040/rates", `{}`).Code)
	})

	t.Run("no quotations saved", func(t *testing.T) {
		w := serve("req-ledger", http.MethodGet, "/api/quotes/AGQ-2001/quotations", "")
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rate request reaches the audit collection", func(t *testing.T) {
		require.Eventually(t, func() bool {
			n, err := a.Database.AuditRepo.Count(ctx, model.AuditQueryOptions{Stream: model.StreamRateRequests, RequestID: "req-rated"})
			return err == nil && n == 1
		}, 5*time.Second, 50*time.Millisecond)

		w := serve("req-audit", http.MethodGet, "/api/audit-events?stream=rate_requests&request_id=req-rated", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data dto.AuditEventsResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.Data.Total)
		require.Len(t, resp.Data.Events, 1)
		assert.Equal(t, model.AuditStatusError, resp.Data.Events[0].Status)
	})
}
