package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ForecastServiceName is the fully qualified gRPC service name
const ForecastServiceName = "spendcast.v1.ForecastService"

// Full method names
const (
	ForecastService_GetForecast_FullMethodName              = "/spendcast.v1.ForecastService/GetForecast"
	ForecastService_GetGrowthRecommendations_FullMethodName = "/spendcast.v1.ForecastService/GetGrowthRecommendations"
	ForecastService_GetCategoryTrends_FullMethodName        = "/spendcast.v1.ForecastService/GetCategoryTrends"
)

// ForecastServiceServer is the server API for the forecast service.
// Requests and responses are google.protobuf.Struct documents whose fields
// follow the REST JSON payloads.
type ForecastServiceServer interface {
	GetForecast(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGrowthRecommendations(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCategoryTrends(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterForecastServiceServer registers srv on s
func RegisterForecastServiceServer(s grpc.ServiceRegistrar, srv ForecastServiceServer) {
	s.RegisterService(&ForecastService_ServiceDesc, srv)
}

// ForecastService_ServiceDesc is the grpc.ServiceDesc for the forecast service
var ForecastService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ForecastServiceName,
	HandlerType: (*ForecastServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetForecast",
			Handler:    _ForecastService_GetForecast_Handler,
		},
		{
			MethodName: "GetGrowthRecommendations",
			Handler:    _ForecastService_GetGrowthRecommendations_Handler,
		},
		{
			MethodName: "GetCategoryTrends",
			Handler:    _ForecastService_GetCategoryTrends_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "spendcast/v1/forecast.proto",
}

func _ForecastService_GetForecast_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ForecastServiceServer).GetForecast(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ForecastService_GetForecast_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ForecastServiceServer).GetForecast(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _ForecastService_GetGrowthRecommendations_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ForecastServiceServer).GetGrowthRecommendations(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ForecastService_GetGrowthRecommendations_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ForecastServiceServer).GetGrowthRecommendations(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _ForecastService_GetCategoryTrends_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ForecastServiceServer).GetCategoryTrends(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: ForecastService_GetCategoryTrends_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ForecastServiceServer).GetCategoryTrends(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ForecastServiceClient is the client API for the forecast service
type ForecastServiceClient interface {
	GetForecast(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetGrowthRecommendations(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetCategoryTrends(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type forecastServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewForecastServiceClient creates a client on cc
func NewForecastServiceClient(cc grpc.ClientConnInterface) ForecastServiceClient {
	return &forecastServiceClient{cc: cc}
}

func (c *forecastServiceClient) GetForecast(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ForecastService_GetForecast_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *forecastServiceClient) GetGrowthRecommendations(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ForecastService_GetGrowthRecommendations_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *forecastServiceClient) GetCategoryTrends(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ForecastService_GetCategoryTrends_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
