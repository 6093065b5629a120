package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"purchase-service/middleware"
	"purchase-service/models"
	"purchase-service/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAnalyticsService struct {
	overview    *models.AnalyticsOverview
	err         error
	calls       int
	lastFilters services.AnalyticsFilters
}

func (f *fakeAnalyticsService) GetOverview(_ context.Context, _ string, filters services.AnalyticsFilters) (*models.AnalyticsOverview, error) {
	f.calls++
	f.lastFilters = filters
	if f.overview != nil || f.err != nil {
		return f.overview, f.err
	}
	return &models.AnalyticsOverview{}, nil
}

func newAnalyticsRouter(svc *fakeAnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewAnalyticsController(svc, NewAnalyticsCache(nil))
	r.GET("/analytics/overview", middleware.AuthMiddleware(), controller.GetOverview)
	return r
}

func TestGetOverviewRequiresUser(t *testing.T) {
	svc := &fakeAnalyticsService{}
	r := newAnalyticsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/overview", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestGetOverviewRejectsInvertedRange(t *testing.T) {
	svc := &fakeAnalyticsService{}
	r := newAnalyticsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/overview?from=2025-11-10&to=2025-10-01", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestGetOverviewAcceptsSameDayRange(t *testing.T) {
	svc := &fakeAnalyticsService{}
	r := newAnalyticsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/overview?from=2025-10-05&to=2025-10-05", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.calls)
	if assert.NotNil(t, svc.lastFilters.From) {
		assert.Equal(t, time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC), *svc.lastFilters.From)
	}
}

func TestGetOverviewRejectsMalformedDate(t *testing.T) {
	svc := &fakeAnalyticsService{}
	r := newAnalyticsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/overview?from=yesterday", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, svc.calls)
}

func TestGetOverviewDefaultsRange(t *testing.T) {
	svc := &fakeAnalyticsService{}
	r := newAnalyticsRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/analytics/overview", nil)
	req.Header.Set("X-User-ID", "user-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastFilters.From)
	assert.Nil(t, svc.lastFilters.To)
}
