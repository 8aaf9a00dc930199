package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/2beens/healthdash/internal/health"
	"github.com/2beens/healthdash/internal/health/calendar"
	"github.com/2beens/healthdash/internal/health/session"
	"github.com/2beens/healthdash/internal/health/summary"
	"github.com/2beens/healthdash/internal/telemetry/metrics"
	"github.com/2beens/healthdash/internal/telemetry/tracing"
	"github.com/2beens/healthdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Handler serves the dashboard views. The session is taken from the request context.
type Handler struct {
	metricsManager *metrics.Manager
	monthCache     *MonthCache
}

func NewHandler(metricsManager *metrics.Manager, monthCache *MonthCache) *Handler {
	return &Handler{
		metricsManager: metricsManager,
		monthCache:     monthCache,
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/view", handler.HandleGetView).Methods("GET", "OPTIONS").Name("get-view")
	r.HandleFunc("/view", handler.HandleNavigate).Methods("PUT").Name("navigate")
	r.HandleFunc("/view/{fragment}", handler.HandleNavigate).Methods("PUT", "OPTIONS").Name("navigate-to")

	r.HandleFunc("/dashboard", handler.HandleDashboard).Methods("GET", "OPTIONS").Name("dashboard")
	r.HandleFunc("/activities", handler.HandleActivities).Methods("GET", "OPTIONS").Name("activities")
	r.HandleFunc("/nutrition", handler.HandleNutrition).Methods("GET", "OPTIONS").Name("nutrition")
	r.HandleFunc("/series/{metric}", handler.HandleSeries).Methods("GET", "OPTIONS").Name("series")

	r.HandleFunc("/calendar", handler.HandleCalendar).Methods("GET", "OPTIONS").Name("calendar")
	r.HandleFunc("/calendar/next", handler.HandleCalendarNext).Methods("POST", "OPTIONS").Name("calendar-next")
	r.HandleFunc("/calendar/prev", handler.HandleCalendarPrev).Methods("POST", "OPTIONS").Name("calendar-prev")
	r.HandleFunc("/calendar/today", handler.HandleCalendarToday).Methods("POST", "OPTIONS").Name("calendar-today")
	r.HandleFunc("/calendar/select/{date}", handler.HandleCalendarSelect).Methods("PUT", "OPTIONS").Name("calendar-select")
	r.HandleFunc("/calendar/{year:[0-9]{4}}/{month:[0-9]{1,2}}", handler.HandleCalendarMonth).Methods("GET", "OPTIONS").Name("calendar-month")

	r.HandleFunc("/summary/{date}", handler.HandleSummary).Methods("GET", "OPTIONS").Name("summary")
	r.HandleFunc("/date/{date}", handler.HandleSetDate).Methods("PUT", "OPTIONS").Name("set-date")
	r.HandleFunc("/records", handler.HandleRecords).Methods("GET", "OPTIONS").Name("records")
}

// sessionOrFail writes the error response itself, callers only return on false.
func sessionOrFail(w http.ResponseWriter, r *http.Request, span trace.Span) (*session.Session, bool) {
	s, err := session.FromContext(r.Context())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("%s %s: %s", r.Method, r.URL.Path, err)
		http.Error(w, "session not initialized", http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

func preflight(w http.ResponseWriter, r *http.Request, allow string) bool {
	if r.Method != http.MethodOptions {
		return false
	}
	w.Header().Add("Allow", allow)
	w.WriteHeader(http.StatusOK)
	return true
}

func writeJSON(w http.ResponseWriter, span trace.Span, v interface{}, statusCode int) {
	if err := pkg.MarshalJSONResponse(w, v, statusCode); err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("write json response: %s", err)
		http.Error(w, "marshal response error", http.StatusInternalServerError)
	}
}

func (handler *Handler) HandleGetView(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.getView")
	defer span.End()

	if preflight(w, r, "GET, PUT, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	writeJSON(w, span, BuildView(s), http.StatusOK)
}

// HandleNavigate takes the fragment from the path, or from the fragment query param.
// An empty fragment keeps the current view.
func (handler *Handler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.navigate")
	defer span.End()

	if preflight(w, r, "PUT, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	fragment, found := mux.Vars(r)["fragment"]
	if !found {
		fragment = r.URL.Query().Get("fragment")
	}

	active := s.Navigator().Navigate(fragment)
	span.SetAttributes(attribute.String("view", active.String()))
	if handler.metricsManager != nil {
		handler.metricsManager.CounterNavigations.WithLabelValues(active.Resolve().String()).Inc()
	}
	log.Tracef("navigated to view [%s], fragment [%s]", active, fragment)

	writeJSON(w, span, BuildView(s), http.StatusOK)
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.dashboard")
	defer span.End()

	if preflight(w, r, "GET, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	payload := BuildDashboard(s)
	handler.countSummary(payload.Summary != nil)
	span.SetAttributes(attribute.String("date", payload.Date))

	writeJSON(w, span, payload, http.StatusOK)
}

func (handler *Handler) HandleActivities(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.activities")
	defer span.End()

	if preflight(w, r, "GET, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	writeJSON(w, span, BuildActivities(s), http.StatusOK)
}

func (handler *Handler) HandleNutrition(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.nutrition")
	defer span.End()

	if preflight(w, r, "GET, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	writeJSON(w, span, BuildNutrition(s), http.StatusOK)
}

// HandleSeries returns chart data for the metric path var, unknown metrics fall back to steps.
func (handler *Handler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.series")
	defer span.End()

	if preflight(w, r, "GET, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	metric := summary.ParseMetric(mux.Vars(r)["metric"])
	span.SetAttributes(attribute.String("metric", string(metric)))

	writeJSON(w, span, summary.Series(s.Activities(), metric), http.StatusOK)
}

func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.calendar")
	defer span.End()

	if preflight(w, r, "GET, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	handler.calendarBuilt()
	writeJSON(w, span, BuildCalendar(s), http.StatusOK)
}

func (handler *Handler) HandleCalendarNext(w http.ResponseWriter, r *http.Request) {
	handler.moveCalendar(w, r, "dashboardHandler.calendarNext", func(state *calendar.State) calendar.Month {
		return state.NextMonth()
	})
}

func (handler *Handler) HandleCalendarPrev(w http.ResponseWriter, r *http.Request) {
	handler.moveCalendar(w, r, "dashboardHandler.calendarPrev", func(state *calendar.State) calendar.Month {
		return state.PrevMonth()
	})
}

func (handler *Handler) HandleCalendarToday(w http.ResponseWriter, r *http.Request) {
	handler.moveCalendar(w, r, "dashboardHandler.calendarToday", func(state *calendar.State) calendar.Month {
		return state.JumpToToday()
	})
}

func (handler *Handler) moveCalendar(
	w http.ResponseWriter,
	r *http.Request,
	spanName string,
	move func(state *calendar.State) calendar.Month,
) {
	_, span := tracing.GlobalTracer.Start(r.Context(), spanName)
	defer span.End()

	if preflight(w, r, "POST, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	month := move(s.Calendar())
	span.SetAttributes(attribute.String("month", month.Key()))
	log.Tracef("calendar displays [%s]", month)

	handler.calendarBuilt()
	writeJSON(w, span, BuildCalendar(s), http.StatusOK)
}

func (handler *Handler) HandleCalendarSelect(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.calendarSelect")
	defer span.End()

	if preflight(w, r, "PUT, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	date := mux.Vars(r)["date"]
	span.SetAttributes(attribute.String("date", date))
	if err := s.Calendar().Select(date); err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, fmt.Sprintf("invalid date: %s", date), http.StatusBadRequest)
		return
	}

	writeJSON(w, span, s.DayDetails(date), http.StatusOK)
}

// HandleCalendarMonth serves the grid of any month without moving the displayed month.
func (handler *Handler) HandleCalendarMonth(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.calendarMonth")
	defer span.End()

	if preflight(w, r, "GET, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	vars := mux.Vars(r)
	month, err := parseMonth(vars["year"], vars["month"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("month", month.Key()))

	gridBytes, err := handler.monthCache.GridJSON(s, month)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		log.Errorf("month grid [%s]: %s", month.Key(), err)
		http.Error(w, "month grid error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytesOK(w, pkg.ContentType.JSON, gridBytes)
}

func parseMonth(yearParam, monthParam string) (calendar.Month, error) {
	year, err := strconv.Atoi(yearParam)
	if err != nil {
		return calendar.Month{}, fmt.Errorf("invalid year: %s", yearParam)
	}
	month, err := strconv.Atoi(monthParam)
	if err != nil {
		return calendar.Month{}, fmt.Errorf("invalid month: %s", monthParam)
	}
	return calendar.NewMonth(year, month)
}

// HandleSummary replies 404 when the date has no activity or water record.
func (handler *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.summary")
	defer span.End()

	if preflight(w, r, "GET, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	date := mux.Vars(r)["date"]
	span.SetAttributes(attribute.String("date", date))
	if _, err := health.ParseDate(date, s.Location()); err != nil {
		http.Error(w, fmt.Sprintf("invalid date: %s", date), http.StatusBadRequest)
		return
	}

	daily := s.DailySummary(date)
	handler.countSummary(daily != nil)
	if daily == nil {
		http.Error(w, fmt.Sprintf("no summary for date: %s", date), http.StatusNotFound)
		return
	}

	writeJSON(w, span, daily, http.StatusOK)
}

func (handler *Handler) HandleSetDate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.setDate")
	defer span.End()

	if preflight(w, r, "PUT, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	date := mux.Vars(r)["date"]
	span.SetAttributes(attribute.String("date", date))
	if err := s.SetCurrentDate(date); err != nil {
		span.SetStatus(codes.Error, err.Error())
		if errors.Is(err, health.ErrInvalidDate) {
			http.Error(w, fmt.Sprintf("invalid date: %s", date), http.StatusBadRequest)
			return
		}
		log.Errorf("set current date [%s]: %s", date, err)
		http.Error(w, "set date error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, span, BuildDashboard(s), http.StatusOK)
}

func (handler *Handler) HandleRecords(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "dashboardHandler.records")
	defer span.End()

	if preflight(w, r, "GET, OPTIONS") {
		return
	}
	s, ok := sessionOrFail(w, r, span)
	if !ok {
		return
	}

	writeJSON(w, span, BuildRecords(s), http.StatusOK)
}

func (handler *Handler) countSummary(found bool) {
	if handler.metricsManager != nil {
		handler.metricsManager.SummaryDerived(found)
	}
}

func (handler *Handler) calendarBuilt() {
	if handler.metricsManager != nil {
		handler.metricsManager.CounterCalendarMonthsBuilt.Inc()
	}
}
