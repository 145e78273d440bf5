package middleware_test

import (
	"context"
	"errors"
	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/shared/cache"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func rateLimited(limit int) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = limit
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func TestRateLimit(t *testing.T) {
	t.Run("first request starts the window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Get(gomock.Any(), "limiter:10.0.0.1:curl", gomock.Any()).Return(cache.Nil)
		redisCache.EXPECT().Save(gomock.Any(), "limiter:10.0.0.1:curl", 1, 60).Return(nil)

		handler := middleware.NewAppMiddleware(otelMocks.NewOtel(), rateLimited(2), redisCache).RateLimit()(ok)

		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(constant.RequestHeaderForwardedFor, "10.0.0.1, 172.16.0.1")
		request.Header.Set(constant.RequestHeaderUserAgent, "curl")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, "1", recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("rejects past the limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*int) = 2

				return nil
			})

		handler := middleware.NewAppMiddleware(otelMocks.NewOtel(), rateLimited(2), redisCache).RateLimit()(ok)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	})

	t.Run("cache outage lets requests through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("dial tcp: refused"))

		handler := middleware.NewAppMiddleware(otelMocks.NewOtel(), rateLimited(2), redisCache).RateLimit()(ok)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		redisCache := cacheMocks.NewMockRedisCache(ctrl)

		handler := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, redisCache).RateLimit()(ok)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.CORS.Enable = true
	cfg.App.CORS.AllowedOrigins = []string{"https://hotel.example.com"}
	cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

	handler := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, nil).CORS()(ok)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("Origin", "https://hotel.example.com")

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, "https://hotel.example.com", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestActorAndTracing(t *testing.T) {
	mw := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil)

	var user, requestID any

	router := chi.NewRouter()
	router.Use(chiMiddleware.RequestID, mw.Tracing, mw.Actor)
	router.Get("/bookings/{id}", func(w http.ResponseWriter, r *http.Request) {
		user = r.Context().Value(constant.ContextKeyUserID)
		requestID = r.Context().Value(constant.ContextKeyRequestID)

		w.WriteHeader(http.StatusNoContent)
	})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/bookings/b-1", nil))

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, constant.ContextGuest, user)
	assert.NotEmpty(t, requestID)
	assert.NotEmpty(t, recorder.Header().Get(constant.RequestHeaderRequestID))
}
