package calc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pennygain/internal/handlers"
	"pennygain/internal/history"
	"pennygain/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculation domain's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calc")

// Handler serves the calculation endpoints. Successful calculations are
// recorded into the history store before the response is written.
type Handler struct {
	History *history.Store
}

// RegisterRoutes mounts the calculation endpoints onto the given router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/calculate", h.Calculate)
	r.Post("/whatif", h.WhatIf)
}

// Calculate handles POST /api/calculate: validate, compute, record, respond.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calc.calculate",
		trace.WithAttributes(
			attribute.String("calc.operation", "calculate"),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", "Invalid input", err, http.StatusBadRequest, w)
		return
	}

	in, err := ParseInput(req.StockPrice.String(), req.DesiredProfit.String())
	if err != nil {
		h.rejectInput(ctx, span, logger, w, "calculate", err)
		return
	}

	span.SetAttributes(
		attribute.Float64("calc.stock_price", in.StockPrice),
		attribute.Float64("calc.profit_target", in.ProfitTarget),
	)

	start := time.Now()
	res, err := Compute(in.StockPrice, in.ProfitTarget)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		// Validator and engine disagree: contract violation, not a user case.
		observability.RecordError(ctx, span, logger, errorCounter, "calculate", "Invalid input", err, http.StatusBadRequest, w)
		return
	}

	entry := h.History.Record(in.StockPrice, in.ProfitTarget, res.Investment)

	attrs := metric.WithAttributes(attribute.String("operation", "calculate"))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	investmentGauge.Record(ctx, res.Investment, attrs)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("investment", res.Investment),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calc.investment", res.Investment))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculation completed",
		zap.Float64("stock_price", in.StockPrice),
		zap.Float64("profit_target", in.ProfitTarget),
		zap.Float64("shares_needed", res.SharesNeeded),
		zap.Float64("investment", res.Investment),
		zap.Int64("history_id", entry.ID),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	resp := CalculateResponse{
		Investment:   res.Investment,
		SharesNeeded: res.SharesNeeded,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// WhatIf handles POST /api/whatif: a pure projection at a hypothetical
// target price. Never recorded into history.
func (h *Handler) WhatIf(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calc.whatif",
		trace.WithAttributes(
			attribute.String("calc.operation", "whatif"),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req WhatIfRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "whatif", "Invalid input", err, http.StatusBadRequest, w)
		return
	}

	in, err := ParseInput(req.StockPrice.String(), req.DesiredProfit.String())
	if err != nil {
		h.rejectInput(ctx, span, logger, w, "whatif", err)
		return
	}

	target, ok := parsePositive(req.TargetPrice.String())
	if !ok {
		h.rejectInput(ctx, span, logger, w, "whatif", ErrInvalidTargetPrice)
		return
	}

	res, err := Compute(in.StockPrice, in.ProfitTarget)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "whatif", "Invalid input", err, http.StatusBadRequest, w)
		return
	}

	proj, err := Project(res, in.StockPrice, target)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "whatif", "Invalid input", err, http.StatusBadRequest, w)
		return
	}

	opsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", "whatif")))

	span.AddEvent("projection.complete", trace.WithAttributes(
		attribute.Float64("target_price", target),
		attribute.Float64("profit_loss", proj.ProfitLoss),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("projection completed",
		zap.Float64("stock_price", in.StockPrice),
		zap.Float64("target_price", target),
		zap.Float64("profit_loss", proj.ProfitLoss),
		zap.String("request_id", requestID),
	)

	resp := WhatIfResponse{
		SharesNeeded:   res.SharesNeeded,
		Delta:          proj.Delta,
		ProjectedValue: proj.ProjectedValue,
		ProfitLoss:     proj.ProfitLoss,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// rejectInput answers a classified validation failure: span + metric + log,
// then a 400 whose error field keeps the fixed wire contract and whose
// detail carries the per-field message.
func (h *Handler) rejectInput(ctx context.Context, span trace.Span, logger *zap.Logger, w http.ResponseWriter, opName string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	errorCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", opName)))

	var verr *ValidationError
	detail := err.Error()
	if errors.As(err, &verr) {
		detail = verr.Message
	}

	logger.Warn("input rejected",
		zap.String("operation", opName),
		zap.String("detail", detail),
	)

	handlers.WriteErrorDetail(w, http.StatusBadRequest, "Invalid input", detail)
}
