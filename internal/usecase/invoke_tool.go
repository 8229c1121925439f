package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/cavok/wxbrief/internal/catalog"
	"github.com/cavok/wxbrief/internal/domain"
	"github.com/cavok/wxbrief/internal/normalize"
)

// InvokeToolUseCase runs the per-invocation pipeline:
// validate -> resolve -> fetch -> normalize. Strictly linear, no state kept
// between invocations, exactly one upstream call per call that passes
// validation.
type InvokeToolUseCase struct {
	bases  catalog.ProviderBases
	client UpstreamClient
	logger *slog.Logger

	tracer      trace.Tracer
	invocations metric.Int64Counter
	failures    metric.Int64Counter
	duration    metric.Float64Histogram
}

// NewInvokeToolUseCase wires the pipeline. Instruments are created against
// the global otel providers, which are no-ops unless main configured an
// exporter.
func NewInvokeToolUseCase(bases catalog.ProviderBases, client UpstreamClient, logger *slog.Logger) *InvokeToolUseCase {
	meter := otel.Meter("wxbrief/usecase")
	invocations, _ := meter.Int64Counter("wxbrief.tool.invocations",
		metric.WithDescription("Tool invocations received"))
	failures, _ := meter.Int64Counter("wxbrief.tool.failures",
		metric.WithDescription("Tool invocations that returned a typed failure"))
	duration, _ := meter.Float64Histogram("wxbrief.tool.duration",
		metric.WithDescription("Tool invocation duration"),
		metric.WithUnit("s"))

	return &InvokeToolUseCase{
		bases:       bases,
		client:      client,
		logger:      logger.With("usecase", "InvokeTool"),
		tracer:      otel.Tracer("wxbrief/usecase"),
		invocations: invocations,
		failures:    failures,
		duration:    duration,
	}
}

// Execute runs one tool invocation end to end. The returned error is always
// a *domain.InvocationError; raw transport errors never cross this boundary.
func (uc *InvokeToolUseCase) Execute(ctx context.Context, req domain.ToolRequest) (domain.ToolResult, error) {
	start := time.Now()
	toolAttr := attribute.String("tool", req.Tool)
	uc.invocations.Add(ctx, 1, metric.WithAttributes(toolAttr))

	ctx, span := uc.tracer.Start(ctx, "tool.invoke",
		trace.WithAttributes(toolAttr))
	defer span.End()

	log := uc.logger.With(
		slog.String("tool", req.Tool),
		slog.String("invocation_id", uuid.NewString()),
	)
	log.Info("Executing tool invocation")

	result, err := uc.run(ctx, log, req)
	uc.duration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(toolAttr))
	if err != nil {
		span.RecordError(err)
		if ie, ok := domain.AsInvocationError(err); ok {
			uc.failures.Add(ctx, 1, metric.WithAttributes(toolAttr,
				attribute.String("kind", string(ie.Kind))))
		}
		log.Warn("Tool invocation failed", slog.Any("error", err))
		return domain.ToolResult{}, err
	}

	log.Info("Tool invocation succeeded", slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (uc *InvokeToolUseCase) run(ctx context.Context, log *slog.Logger, req domain.ToolRequest) (domain.ToolResult, error) {
	// 1. Validate. Failures here cost zero network calls.
	validated, err := catalog.Validate(req.Tool, req.Args)
	if err != nil {
		return domain.ToolResult{}, err
	}

	// 2. Resolve to the single upstream endpoint.
	ep := catalog.Resolve(uc.bases, req.Tool, validated)
	log.Debug("Resolved upstream endpoint",
		slog.String("provider", string(ep.Provider)),
		slog.String("url", ep.URL()))

	// 3. Fetch.
	resp, err := uc.client.Do(ctx, req.Tool, ep)
	if err != nil {
		return domain.ToolResult{}, err
	}

	// 4. Normalize into the requested format.
	format := catalog.Tools[req.Tool].FormatOf(validated)
	result, err := normalize.Result(req.Tool, format, resp)
	if err != nil {
		return domain.ToolResult{}, err
	}

	if ep.Provider == domain.ProviderDATIS {
		if err := datisError(req.Tool, resp.StatusCode, result.Payload); err != nil {
			return domain.ToolResult{}, err
		}
		if req.Tool == domain.ToolGetATIS {
			result.Metadata = map[string]any{
				"airport_id": validated["airport_id"],
				"timestamp":  time.Now().UTC().Format(time.RFC3339),
				"source":     "FAA Digital ATIS API",
			}
		}
	}
	return result, nil
}

// datisError surfaces the D-ATIS provider's in-band error convention: a 200
// response whose JSON object carries an "error" field (e.g. unknown airport).
func datisError(tool string, status int, payload any) error {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil
	}
	msg, ok := obj["error"].(string)
	if !ok || msg == "" {
		return nil
	}
	return &domain.InvocationError{
		Kind:   domain.ErrKindUpstreamHTTP,
		Tool:   tool,
		Status: status,
		Msg:    msg,
	}
}
