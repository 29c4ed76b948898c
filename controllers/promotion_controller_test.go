package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Manakin-Wraith/Cheap-Cheap/controllers"
	apperrors "github.com/Manakin-Wraith/Cheap-Cheap/errors"
	"github.com/Manakin-Wraith/Cheap-Cheap/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock PromotionService ---

type mockPromotionService struct {
	getFn func(ctx context.Context) (json.RawMessage, *services.ServiceError)
}

func (m *mockPromotionService) GetPromotions(ctx context.Context) (json.RawMessage, *services.ServiceError) {
	return m.getFn(ctx)
}

// --- Helpers ---

func setupRouter(svc services.PromotionService) *gin.Engine {
	r := gin.New()
	pc := controllers.NewPromotionController(svc)
	r.GET("/api/promotions", pc.GetPromotions)
	r.GET("/api/health", controllers.HealthCheck)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

// --- Tests ---

func TestController_GetPromotions_Success(t *testing.T) {
	raw := `[{"src":"a","product-grid-item__info-container__name":"Milk","price":10,"old":12,"ng-star-inserted":""}]`
	svc := &mockPromotionService{
		getFn: func(_ context.Context) (json.RawMessage, *services.ServiceError) {
			return json.RawMessage(raw), nil
		},
	}

	w := get(setupRouter(svc), "/api/promotions")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, raw, w.Body.String())
}

func TestController_GetPromotions_Error(t *testing.T) {
	svc := &mockPromotionService{
		getFn: func(_ context.Context) (json.RawMessage, *services.ServiceError) {
			return nil, &services.ServiceError{
				StatusCode: http.StatusInternalServerError,
				Kind:       apperrors.KindNotFound,
				Message:    "read /data/output.json: file not found",
			}
		},
	}

	w := get(setupRouter(svc), "/api/promotions")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "read /data/output.json: file not found", body["error"])
	assert.Equal(t, "not_found", body["kind"])
}

func TestController_HealthCheck(t *testing.T) {
	svc := &mockPromotionService{
		getFn: func(_ context.Context) (json.RawMessage, *services.ServiceError) {
			t.Fatal("health check must not touch the dataset")
			return nil, nil
		},
	}

	w := get(setupRouter(svc), "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}
