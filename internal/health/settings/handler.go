package settings

import (
	"encoding/json"
	"net/http"

	"github.com/2beens/healthdash/internal/health/session"
	"github.com/2beens/healthdash/internal/middleware"
	"github.com/2beens/healthdash/internal/telemetry/metrics"
	"github.com/2beens/healthdash/internal/telemetry/tracing"
	"github.com/2beens/healthdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const notPersistedMessage = "settings saved (note: this is a demo, changes are not persisted)"

type SaveResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Form    Form   `json:"form"`
}

type ValidationResponse struct {
	Status string   `json:"status"`
	Errors []string `json:"errors"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// SetupRoutes registers the settings form. Only saving is rate limited, and only when a limiter is given.
func (handler *Handler) SetupRoutes(
	mainRouter *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	allowedPerMin int,
	metricsManager *metrics.Manager,
) {
	mainRouter.HandleFunc("/settings", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-settings")

	var save http.Handler = http.HandlerFunc(handler.HandleSave)
	if rateLimiter != nil {
		save = middleware.RateLimit(rateLimiter, "settings", allowedPerMin, metricsManager)(save)
	}
	mainRouter.Handle("/settings", save).Methods("PUT").Name("save-settings")
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "settingsHandler.get")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	s, err := session.FromContext(r.Context())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get settings: %s", err)
		http.Error(w, "session not initialized", http.StatusInternalServerError)
		return
	}

	if err := pkg.MarshalJSONResponse(w, FormFromUser(s.User()), http.StatusOK); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("get settings: %s", err)
		http.Error(w, "marshal settings error", http.StatusInternalServerError)
	}
}

// HandleSave validates the submitted form and replies 202, the form is not stored anywhere.
func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "settingsHandler.save")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, PUT, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var form Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Tracef("save settings, unmarshal json: %s", err)
		http.Error(w, "invalid settings json", http.StatusBadRequest)
		return
	}

	if err := form.Validate(); err != nil {
		messages := Messages(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.Int("validation.errors", len(messages)))
		if werr := pkg.MarshalJSONResponse(w, ValidationResponse{
			Status: "invalid",
			Errors: messages,
		}, http.StatusBadRequest); werr != nil {
			log.Errorf("save settings: %s", werr)
			http.Error(w, "invalid settings", http.StatusBadRequest)
		}
		return
	}

	log.Debugf("settings for [%s] validated, discarding", form.Email)
	if err := pkg.MarshalJSONResponse(w, SaveResponse{
		Status:  "not persisted",
		Message: notPersistedMessage,
		Form:    form,
	}, http.StatusAccepted); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("save settings: %s", err)
		http.Error(w, "marshal settings error", http.StatusInternalServerError)
	}
}
