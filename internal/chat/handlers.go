package chat

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"pennygain/internal/handlers"
	"pennygain/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the chat relay's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("chat")

// User-facing messages. Fixed vocabulary; upstream detail and credential
// material stay in the logs.
const (
	msgEmptyQuery    = "Query is required"
	msgNotConfigured = "OpenAI API key is not configured properly"
	msgUpstream      = "Failed to process your question. Please try again."
	msgBusy          = "A question is already being processed. Please wait."
)

// Request is the JSON body for POST /api/chat. The calculation fields are
// optional; context is attached only when price and investment are present.
type Request struct {
	Query         string   `json:"query"`
	StockPrice    *float64 `json:"stockPrice"`
	DesiredProfit *float64 `json:"desiredProfit"`
	Investment    *float64 `json:"investment"`
}

// Response is the JSON response for POST /api/chat.
type Response struct {
	Response string `json:"response"`
}

// Handler serves the chat relay endpoint. At most one upstream call is
// outstanding at a time; concurrent submissions are rejected, not queued.
type Handler struct {
	Client   *Client
	inFlight atomic.Bool
}

// NewHandler returns a Handler relaying through client.
func NewHandler(client *Client) *Handler {
	return &Handler{Client: client}
}

// RegisterRoutes mounts the chat endpoint onto the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.Ask)
}

// Ask handles POST /api/chat.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "chat.ask",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	if !h.inFlight.CompareAndSwap(false, true) {
		span.SetStatus(codes.Error, "concurrent submission rejected")
		logger.Warn("chat submission rejected, request already in flight",
			zap.String("request_id", requestID),
		)
		handlers.WriteError(w, http.StatusTooManyRequests, msgBusy)
		return
	}
	defer h.inFlight.Store(false)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "ask", msgEmptyQuery, err, http.StatusBadRequest, w)
		return
	}

	var calc *CalcContext
	if req.StockPrice != nil && req.Investment != nil {
		calc = &CalcContext{
			StockPrice: *req.StockPrice,
			Investment: *req.Investment,
		}
		if req.DesiredProfit != nil {
			calc.DesiredProfit = *req.DesiredProfit
		}
		span.SetAttributes(attribute.Bool("chat.has_context", true))
	}

	start := time.Now()
	answer, err := h.Client.Ask(ctx, req.Query, calc)
	elapsed := float64(time.Since(start).Milliseconds())

	if err != nil {
		msg, status := classify(err)
		observability.RecordError(ctx, span, logger, errorCounter, "ask", msg, err, status, w)
		return
	}

	requestCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "ask")))
	requestDuration.Record(ctx, elapsed, metric.WithAttributes(attribute.String("operation", "ask")))

	span.AddEvent("completion.received", trace.WithAttributes(
		attribute.Int("response_length", len(answer)),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("chat query relayed",
		zap.Int("query_length", len(req.Query)),
		zap.Int("response_length", len(answer)),
		zap.Bool("has_context", calc != nil),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{Response: answer})
}

// classify maps relay errors onto the fixed user-safe vocabulary.
func classify(err error) (string, int) {
	switch {
	case errors.Is(err, ErrEmptyQuery):
		return msgEmptyQuery, http.StatusBadRequest
	case errors.Is(err, ErrNotConfigured):
		return msgNotConfigured, http.StatusInternalServerError
	default:
		return msgUpstream, http.StatusInternalServerError
	}
}
