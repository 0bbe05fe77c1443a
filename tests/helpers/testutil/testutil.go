// Package testutil provides testing utilities and helpers for backend tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	apihttp "github.com/cyberproxy/backend/internal/api/http"
	"github.com/cyberproxy/backend/internal/api/ws"
	"github.com/cyberproxy/backend/internal/domain/advisory"
	"github.com/cyberproxy/backend/internal/domain/identity"
	"github.com/cyberproxy/backend/internal/domain/session"
	"github.com/cyberproxy/backend/internal/domain/tab"
	"github.com/cyberproxy/backend/internal/infrastructure/monitoring"
	"github.com/cyberproxy/backend/internal/infrastructure/server"
)

// MockProvider is a mock implementation of advisory.Provider for testing.
type MockProvider struct {
	mock.Mock
}

// GenerateText mocks the GenerateText method.
func (m *MockProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// GenerateSearch mocks the GenerateSearch method.
func (m *MockProvider) GenerateSearch(ctx context.Context, prompt string) (string, []string, error) {
	args := m.Called(ctx, prompt)
	var sources []string
	if args.Get(1) != nil {
		sources = args.Get(1).([]string)
	}
	return args.String(0), sources, args.Error(2)
}

// NewMockProvider creates a mock provider with permissive defaults.
func NewMockProvider(t *testing.T) *MockProvider {
	t.Helper()
	m := new(MockProvider)
	m.On("GenerateText", mock.Anything, mock.Anything).Return("routes look clean", nil).Maybe()
	m.On("GenerateSearch", mock.Anything, mock.Anything).Return("[]", []string(nil), nil).Maybe()
	return m
}

// Env bundles a fully wired router and its components for integration tests.
type Env struct {
	Router  *gin.Engine
	Store   *session.Store
	Tabs    *tab.Service
	Gateway *advisory.Gateway
}

// NewEnv wires a router the way the server does, with a seeded identity
// generator and the provided advisory provider (nil means fallback-only).
func NewEnv(t *testing.T, provider advisory.Provider) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gen := identity.NewWithSeed(42)
	store := session.NewStore(gen)
	gateway := advisory.NewGateway(provider, 2*time.Second, nil)
	tabs := tab.NewService(store, gateway, gen, nil)

	router := gin.New()
	handlers := apihttp.NewHandlers(store, tabs)
	wsHandler := ws.NewHandler(store, nil)
	server.RegisterRoutes(router, handlers, wsHandler, monitoring.NewMetrics())

	return &Env{
		Router:  router,
		Store:   store,
		Tabs:    tabs,
		Gateway: gateway,
	}
}
