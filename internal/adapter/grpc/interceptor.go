package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/simaogato/spendcast-backend/internal/auth"
	"github.com/simaogato/spendcast-backend/internal/logging"
	"github.com/simaogato/spendcast-backend/internal/metrics"
)

// TokenParser verifies a bearer token and returns its owner
type TokenParser interface {
	Parse(token string) (uuid.UUID, error)
}

// AuthInterceptor returns a gRPC unary server interceptor that validates
// the bearer token from the "authorization" request metadata.
// If the token is missing or invalid, it returns status.Unauthenticated.
// If valid, it calls the handler with the owner ID stored in the context.
func AuthInterceptor(tokens TokenParser) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		authHeaders := md.Get("authorization")
		if len(authHeaders) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		token, ok := auth.BearerToken(authHeaders[0])
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "authorization header must be a bearer token")
		}

		ownerID, err := tokens.Parse(token)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}

		return handler(auth.WithOwner(ctx, ownerID), req)
	}
}

// LoggingInterceptor logs every call with its status code and duration and
// reports it to the metrics recorder. log and recorder may be nil.
func LoggingInterceptor(log logrus.FieldLogger, recorder metrics.Recorder) grpc.UnaryServerInterceptor {
	log = logging.OrDiscard(log)
	if recorder == nil {
		recorder = metrics.Nop()
	}

	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		duration := time.Since(start)

		code := status.Code(err)
		recorder.ObserveRequest("grpc", info.FullMethod, code.String(), duration)

		entry := log.WithFields(logrus.Fields{
			"method":      info.FullMethod,
			"code":        code.String(),
			"duration_ms": duration.Milliseconds(),
		})
		switch {
		case code == codes.Internal || code == codes.Unknown:
			entry.WithError(err).Error("grpc request failed")
		case err != nil:
			entry.WithError(err).Warn("grpc request rejected")
		default:
			entry.Info("grpc request")
		}

		return resp, err
	}
}
