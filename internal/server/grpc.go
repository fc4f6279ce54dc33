// gRPC health endpoint with metrics and logging interceptor
package server

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/nainya/gazette/internal/logger"
	"github.com/nainya/gazette/internal/metrics"
)

// ListingService is the health-check service name for the listing
const ListingService = "gazette.Listing"

// GrpcMetricsInterceptor creates a gRPC interceptor for metrics and logging
func GrpcMetricsInterceptor(m *metrics.Metrics, log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()

		resp, err := handler(ctx, req)

		duration := time.Since(start)
		status := "success"
		if err != nil {
			status = "error"
		}

		if m != nil {
			m.RecordGrpcRequest(info.FullMethod, status, duration)
		}
		log.GrpcLogger(info.FullMethod).LogGrpcRequest(info.FullMethod, duration, err)

		return resp, err
	}
}

// HealthServer pairs the gRPC server with its health state
type HealthServer struct {
	Server *grpc.Server
	health *health.Server
}

// NewHealthServer creates a gRPC server exposing grpc.health.v1 and
// reflection. Both the overall status and ListingService start SERVING.
func NewHealthServer(m *metrics.Metrics, log *logger.Logger) *HealthServer {
	if log == nil {
		log = logger.Nop()
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(GrpcMetricsInterceptor(m, log)),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(ListingService, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, hs)

	// Register reflection service for grpcurl/grpcui
	reflection.Register(grpcServer)

	return &HealthServer{Server: grpcServer, health: hs}
}

// Shutdown marks every service NOT_SERVING and stops gracefully
func (h *HealthServer) Shutdown() {
	h.health.Shutdown()
	h.Server.GracefulStop()
}
