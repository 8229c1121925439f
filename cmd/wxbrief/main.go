package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	mcpGoServer "github.com/mark3labs/mcp-go/server"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/cavok/wxbrief/configs"
	"github.com/cavok/wxbrief/internal/adapter/outbound/upstream"
	"github.com/cavok/wxbrief/internal/catalog"
	"github.com/cavok/wxbrief/internal/usecase"
)

const serverVersion = "1.0.0"

func main() {
	var transport string
	flag.StringVar(&transport, "transport", "http", "Transport mode: http or stdio")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === Configuration ===
	cfg, err := configs.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// === Logging ===
	logLevel := cfg.ParsedLogLevel()
	var logger *slog.Logger
	if transport == "stdio" {
		// In STDIO mode stdout carries the protocol; log to a file instead.
		logFile, err := os.OpenFile("/tmp/wxbrief.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel}))
		} else {
			logger = slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: logLevel}))
		}
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	}
	slog.SetDefault(logger)
	logger.Info("Logger initialized.", slog.String("level", logLevel.String()), slog.String("transport", transport))

	// === OpenTelemetry ===
	shutdownOtel, err := initOtelProvider(cfg)
	if err != nil {
		logger.Error("Failed to initialize OpenTelemetry.", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownOtel(context.Background()); err != nil {
			logger.Error("Failed to shutdown OpenTelemetry provider.", slog.Any("error", err))
		}
	}()

	// === Dependency Injection ===
	// One shared HTTP client carries the timeout bound for every upstream
	// call; passed explicitly so tests can inject a fake.
	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}
	logger.Debug("HTTP client configured.", slog.Duration("timeout", cfg.HTTPClientTimeout))

	upstreamClient := upstream.New(httpClient, cfg.UserAgent, logger)
	bases := catalog.ProviderBases{AWC: cfg.WeatherBaseURL, DATIS: cfg.DATISBaseURL}
	invokeUC := usecase.NewInvokeToolUseCase(bases, upstreamClient, logger)

	// === MCP Server ===
	mcpSrv := mcpGoServer.NewMCPServer(
		"wxbrief",
		serverVersion,
		mcpGoServer.WithToolCapabilities(true),
	)
	usecase.RegisterTools(mcpSrv, invokeUC)
	logger.Info("MCP server initialized.",
		slog.Int("tools", len(catalog.ToolOrder)),
		slog.String("weather_base", cfg.WeatherBaseURL),
		slog.String("datis_base", cfg.DATISBaseURL))

	switch transport {
	case "stdio":
		logger.Info("Starting in STDIO mode")
		if err := mcpGoServer.ServeStdio(mcpSrv); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("STDIO server error", slog.Any("error", err))
			os.Exit(1)
		}

	case "http":
		logger.Info("Starting in HTTP mode")

		httpSrv := mcpGoServer.NewStreamableHTTPServer(mcpSrv)

		// Liveness probe on a side port, kept off the MCP listener.
		probeMux := http.NewServeMux()
		probeMux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintln(w, `{"ok":true}`)
		})
		probeServer := &http.Server{Addr: cfg.ProbeAddr, Handler: probeMux}
		go func() {
			logger.Info("Health probe server starting.", slog.String("address", probeServer.Addr))
			if err := probeServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Health probe server failed.", slog.Any("error", err))
			}
		}()

		go func() {
			logger.Info("MCP HTTP server starting.", slog.String("address", cfg.ListenAddr))
			if err := httpSrv.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("MCP HTTP server failed.", slog.Any("error", err))
				stop()
			}
		}()

		<-ctx.Done()

		logger.Info("Shutting down servers...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := probeServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("Health probe server shutdown failed.", slog.Any("error", err))
		}
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error("MCP HTTP server shutdown failed.", slog.Any("error", err))
		}
		logger.Info("Servers shut down gracefully.")

	default:
		logger.Error("Invalid transport mode", slog.String("transport", transport))
		os.Exit(1)
	}
}

// initOtelProvider sets up the OTLP trace exporter and returns its shutdown
// function. Tracing stays disabled unless an endpoint is configured.
func initOtelProvider(cfg *configs.Config) (func(context.Context) error, error) {
	ctx := context.Background()

	if cfg.OtelExporterOtlpEndpoint == "" {
		slog.Info("OTEL_EXPORTER_OTLP_ENDPOINT not set, OpenTelemetry tracing disabled.")
		return func(context.Context) error { return nil }, nil
	}

	grpcOpts := []grpc.DialOption{}
	if cfg.OtelExporterOtlpInsecure {
		grpcOpts = append(grpcOpts, grpc.WithTransportCredentials(insecure.NewCredentials()))
		slog.Warn("Using insecure connection for OTLP exporter.")
	}

	conn, err := grpc.NewClient(cfg.OtelExporterOtlpEndpoint, grpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to OTLP endpoint: %w", err)
	}

	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("wxbrief"),
			semconv.ServiceVersionKey.String(serverVersion),
		),
	)
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	metricExporter, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		_ = conn.Close()
		return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(r),
	)
	otel.SetTracerProvider(tp)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(r),
	)
	otel.SetMeterProvider(mp)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	slog.Info("OpenTelemetry providers configured.",
		slog.String("endpoint", cfg.OtelExporterOtlpEndpoint))

	return func(ctx context.Context) error {
		tracerErr := tp.Shutdown(ctx)
		meterErr := mp.Shutdown(ctx)
		connErr := conn.Close()
		return errors.Join(tracerErr, meterErr, connErr)
	}, nil
}
