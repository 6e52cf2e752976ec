package main

import (
	"context"
	"crypto/subtle"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/securebank/backoffice/internal/model"
	"github.com/securebank/backoffice/internal/seed"
)

// VerifyRequest is a credential check submitted by the back-office.
type VerifyRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyResponse is the claim set returned on success.
type VerifyResponse struct {
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	ProviderID string    `json:"provider_id"`
	VerifiedAt time.Time `json:"verified_at"`
}

// HealthResponse represents health check response
type HealthResponse struct {
	Status     string    `json:"status"`
	ProviderID string    `json:"provider_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// MockIdentityProvider simulates a corporate identity service. It
// answers credential checks against the demo directory after a
// randomized delay.
type MockIdentityProvider struct {
	directory  []model.User
	minDelay   time.Duration
	maxDelay   time.Duration
	providerID string
	rng        *rand.Rand
}

func NewMockIdentityProvider(minDelay, maxDelay time.Duration) *MockIdentityProvider {
	return &MockIdentityProvider{
		directory:  seed.Users(),
		minDelay:   minDelay,
		maxDelay:   maxDelay,
		providerID: "MOCK_IDP_" + uuid.New().String()[:8],
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (m *MockIdentityProvider) randomDelay() time.Duration {
	delta := m.maxDelay - m.minDelay
	if delta <= 0 {
		return m.minDelay
	}
	return m.minDelay + time.Duration(m.rng.Int63n(int64(delta)))
}

// verify simulates the upstream round trip and checks the credentials
// by exact match against the demo directory.
func (m *MockIdentityProvider) verify(req *VerifyRequest) (*VerifyResponse, int) {
	delay := m.randomDelay()
	time.Sleep(delay)

	for _, u := range m.directory {
		if u.Username != req.Username {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(u.Password), []byte(req.Password)) != 1 {
			break
		}
		if u.Status != model.UserStatusActive {
			log.Warn().
				Str("username", req.Username).
				Msg("Inactive account attempted login")
			return nil, http.StatusForbidden
		}

		log.Info().
			Str("username", req.Username).
			Str("role", string(u.Role)).
			Dur("delay", delay).
			Msg("Credentials verified")
		return &VerifyResponse{
			Username:   u.Username,
			Name:       u.Name,
			Role:       string(u.Role),
			ProviderID: m.providerID,
			VerifiedAt: time.Now(),
		}, http.StatusOK
	}

	log.Warn().
		Str("username", req.Username).
		Msg("Credential check failed")
	return nil, http.StatusUnauthorized
}

// Handler struct holds the mock provider and routes
type Handler struct {
	provider *MockIdentityProvider
}

func NewHandler(provider *MockIdentityProvider) *Handler {
	return &Handler{provider: provider}
}

// Verify handles credential check requests
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"details": err.Error(),
		})
		return
	}

	resp, status := h.provider.verify(&req)
	if resp == nil {
		c.JSON(status, gin.H{"error": "verification failed"})
		return
	}
	c.JSON(status, resp)
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:     "healthy",
		ProviderID: h.provider.providerID,
		Timestamp:  time.Now(),
	})
}

// SetupRouter configures all routes
func SetupRouter(handler *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", duration).
			Msg("Request processed")
	})

	router.POST("/verify", handler.Verify)
	router.GET("/health", handler.HealthCheck)

	return router
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	port := getEnv("PORT", "8081")
	minDelay := getEnvDuration("MIN_DELAY", 100*time.Millisecond)
	maxDelay := getEnvDuration("MAX_DELAY", 600*time.Millisecond)

	log.Info().
		Str("port", port).
		Dur("min_delay", minDelay).
		Dur("max_delay", maxDelay).
		Msg("Starting Mock Identity Provider")

	provider := NewMockIdentityProvider(minDelay, maxDelay)
	handler := NewHandler(provider)
	router := SetupRouter(handler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
