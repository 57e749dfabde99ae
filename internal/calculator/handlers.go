package calculator

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"deskcalc/internal/observability"
	"deskcalc/internal/session"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// API serves the session endpoints against one store.
type API struct {
	store *Store
}

func NewAPI(store *Store) *API {
	return &API{store: store}
}

// CreateSession handles POST /sessions.
func (a *API) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.create",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	s := a.store.Create()
	sessionsGauge.Add(ctx, 1)

	span.SetAttributes(attribute.String("session.id", s.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("session created",
		zap.String("session_id", s.ID),
		zap.String("request_id", requestID),
	)

	writeJSON(w, http.StatusCreated, sessionResponse(s.ID, s.State(), requestID))
}

// GetSession handles GET /sessions/{sessionID}.
func (a *API) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	id := chi.URLParam(r, "sessionID")
	s, ok := a.store.Get(id)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "get", "session not found",
			fmt.Errorf("no session %q", id), http.StatusNotFound, w)
		return
	}

	span.SetAttributes(attribute.String("session.id", s.ID))
	span.SetStatus(codes.Ok, "")

	writeJSON(w, http.StatusOK, sessionResponse(s.ID, s.State(), requestID))
}

// PressKey handles POST /sessions/{sessionID}/keys — dispatches one command
// token into the session controller and returns the resulting snapshot.
func (a *API) PressKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.keypress",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	id := chi.URLParam(r, "sessionID")
	s, ok := a.store.Get(id)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "keypress", "session not found",
			fmt.Errorf("no session %q", id), http.StatusNotFound, w)
		return
	}

	var req KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "keypress", "invalid request body",
			err, http.StatusBadRequest, w)
		return
	}

	cmd := req.Key
	if req.Key == "PASTE" {
		cmd = session.Paste(req.Text)
	}
	if !session.Known(cmd) {
		observability.RecordError(ctx, span, logger, errorCounter, "keypress", "unknown key",
			fmt.Errorf("key %q", req.Key), http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("calculator.key", req.Key),
	)

	start := time.Now()
	snap, latched := s.Press(cmd)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	attrs := metric.WithAttributes(attribute.String("key", req.Key))
	keypressCounter.Add(ctx, 1, attrs)
	keypressHistogram.Record(ctx, elapsed, attrs)

	if latched {
		// A latching arithmetic error (division by zero, sqrt of a
		// negative). The HTTP request itself still succeeds.
		errorCounter.Add(ctx, 1, attrs)
		span.AddEvent("error.latched", trace.WithAttributes(
			attribute.String("calculator.key", req.Key),
		))
	}

	span.AddEvent("keypress.complete", trace.WithAttributes(
		attribute.String("display", snap.Display),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("keypress dispatched",
		zap.String("session_id", s.ID),
		zap.String("key", req.Key),
		zap.String("display", snap.Display),
		zap.Bool("error_latched", snap.ErrorLatched),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	writeJSON(w, http.StatusOK, sessionResponse(s.ID, snap, requestID))
}

// DeleteSession handles DELETE /sessions/{sessionID}.
func (a *API) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.session.delete",
		trace.WithAttributes(attribute.String("request.id", requestID)),
	)
	defer span.End()

	id := chi.URLParam(r, "sessionID")
	if !a.store.Delete(id) {
		observability.RecordError(ctx, span, logger, errorCounter, "delete", "session not found",
			fmt.Errorf("no session %q", id), http.StatusNotFound, w)
		return
	}
	sessionsGauge.Add(ctx, -1)

	span.SetAttributes(attribute.String("session.id", id))
	span.SetStatus(codes.Ok, "")

	logger.Info("session deleted",
		zap.String("session_id", id),
		zap.String("request_id", requestID),
	)

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
