package misc

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/healthdash/internal/health/session"
	"github.com/2beens/healthdash/internal/telemetry/tracing"
	"github.com/2beens/healthdash/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const redisPingTimeout = 2 * time.Second

type HealthStatus struct {
	Status      string `json:"status"`
	Redis       string `json:"redis"`
	SessionDays int    `json:"sessionDays"`
	GeneratedAt string `json:"generatedAt,omitempty"`
	Version     string `json:"version"`
}

type Handler struct {
	versionInfo string
	redisClient *redis.Client
}

// NewHandler creates the misc handler. redisClient may be nil when no redis is configured.
func NewHandler(versionInfo string, redisClient *redis.Client) *Handler {
	return &Handler{
		versionInfo: versionInfo,
		redisClient: redisClient,
	}
}

func (handler *Handler) SetupRoutes(mainRouter *mux.Router) {
	mainRouter.HandleFunc("/", handler.handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	mainRouter.HandleFunc("/version", handler.handleGetVersionInfo).Methods("GET").Name("version")
	mainRouter.HandleFunc("/health", handler.handleHealth).Methods("GET").Name("health")
}

func (handler *Handler) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (handler *Handler) handleGetVersionInfo(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, handler.versionInfo)
}

func (handler *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "miscHandler.health")
	defer span.End()

	status := HealthStatus{
		Status:  "ok",
		Redis:   handler.redisStatus(ctx),
		Version: handler.versionInfo,
	}
	if s, err := session.FromContext(ctx); err == nil {
		status.SessionDays = len(s.Dates())
		status.GeneratedAt = s.GeneratedAt().Format(time.RFC3339)
	} else {
		status.Status = "degraded"
	}
	if status.Redis == "down" {
		status.Status = "degraded"
	}

	span.SetAttributes(attribute.String("health.status", status.Status))
	span.SetAttributes(attribute.String("health.redis", status.Redis))

	code := http.StatusOK
	if status.Status != "ok" {
		span.SetStatus(codes.Error, fmt.Sprintf("health: %s", status.Status))
		code = http.StatusServiceUnavailable
	}

	if err := pkg.MarshalJSONResponse(w, status, code); err != nil {
		log.Errorf("health: marshal status: %s", err)
		http.Error(w, "marshal health status error", http.StatusInternalServerError)
	}
}

func (handler *Handler) redisStatus(ctx context.Context) string {
	if handler.redisClient == nil {
		return "disabled"
	}

	ctx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := handler.redisClient.Ping(ctx).Err(); err != nil {
		log.Warnf("health: redis ping: %s", err)
		return "down"
	}
	return "up"
}
