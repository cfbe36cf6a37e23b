// Package rpc defines the NodeService gRPC surface (Heartbeat,
// AssignTask, RequestWork, TransferWork) by hand, in the
// shape protoc-gen-go-grpc would otherwise generate from leader.proto.
// There is no .proto/protoc step in this repository: internal/wire's
// JSON codec (registered under the "json" content-subtype) carries the
// four message types over the standard grpc.Server/ClientConn machinery,
// so the service keeps gRPC's framing, deadlines, and status codes
// without depending on a generated stub.
package rpc

import (
	"context"

	"google.golang.org/grpc"

	"github.com/ant-labs/clusternode/internal/wire"
)

// ServiceName is the fully qualified service name every node must
// agree on; the full method strings below are what gRPC routes by.
const ServiceName = "leader.NodeService"

const (
	fullMethodHeartbeat    = "/" + ServiceName + "/Heartbeat"
	fullMethodAssignTask   = "/" + ServiceName + "/AssignTask"
	fullMethodRequestWork  = "/" + ServiceName + "/RequestWork"
	fullMethodTransferWork = "/" + ServiceName + "/TransferWork"
)

// NodeServiceServer is implemented by the handlers in internal/cluster
// and registered against a grpc.Server via RegisterNodeServiceServer.
type NodeServiceServer interface {
	Heartbeat(context.Context, *wire.NodeStatus) (*wire.Ack, error)
	AssignTask(context.Context, *wire.Task) (*wire.Ack, error)
	RequestWork(context.Context, *wire.WorkRequest) (*wire.WorkResponse, error)
	TransferWork(context.Context, *wire.Task) (*wire.Ack, error)
}

// NodeServiceClient is the peer-facing stub used by the heartbeat sender
// and work-stealing initiator to call other nodes.
type NodeServiceClient interface {
	Heartbeat(ctx context.Context, in *wire.NodeStatus, opts ...grpc.CallOption) (*wire.Ack, error)
	AssignTask(ctx context.Context, in *wire.Task, opts ...grpc.CallOption) (*wire.Ack, error)
	RequestWork(ctx context.Context, in *wire.WorkRequest, opts ...grpc.CallOption) (*wire.WorkResponse, error)
	TransferWork(ctx context.Context, in *wire.Task, opts ...grpc.CallOption) (*wire.Ack, error)
}

type nodeServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewNodeServiceClient wraps a dialed connection (see dial.go) in the
// typed NodeServiceClient stub.
func NewNodeServiceClient(cc grpc.ClientConnInterface) NodeServiceClient {
	return &nodeServiceClient{cc: cc}
}

func (c *nodeServiceClient) Heartbeat(ctx context.Context, in *wire.NodeStatus, opts ...grpc.CallOption) (*wire.Ack, error) {
	out := new(wire.Ack)
	if err := c.cc.Invoke(ctx, fullMethodHeartbeat, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeServiceClient) AssignTask(ctx context.Context, in *wire.Task, opts ...grpc.CallOption) (*wire.Ack, error) {
	out := new(wire.Ack)
	if err := c.cc.Invoke(ctx, fullMethodAssignTask, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeServiceClient) RequestWork(ctx context.Context, in *wire.WorkRequest, opts ...grpc.CallOption) (*wire.WorkResponse, error) {
	out := new(wire.WorkResponse)
	if err := c.cc.Invoke(ctx, fullMethodRequestWork, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *nodeServiceClient) TransferWork(ctx context.Context, in *wire.Task, opts ...grpc.CallOption) (*wire.Ack, error) {
	out := new(wire.Ack)
	if err := c.cc.Invoke(ctx, fullMethodTransferWork, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterNodeServiceServer registers srv's handlers against s under
// the NodeService ServiceDesc.
func RegisterNodeServiceServer(s grpc.ServiceRegistrar, srv NodeServiceServer) {
	s.RegisterService(&nodeServiceServiceDesc, srv)
}

func handlerHeartbeat(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.NodeStatus)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServiceServer).Heartbeat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethodHeartbeat}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServiceServer).Heartbeat(ctx, req.(*wire.NodeStatus))
	}
	return interceptor(ctx, in, info, handler)
}

func handlerAssignTask(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.Task)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServiceServer).AssignTask(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethodAssignTask}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServiceServer).AssignTask(ctx, req.(*wire.Task))
	}
	return interceptor(ctx, in, info, handler)
}

func handlerRequestWork(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.WorkRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServiceServer).RequestWork(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethodRequestWork}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServiceServer).RequestWork(ctx, req.(*wire.WorkRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func handlerTransferWork(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wire.Task)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NodeServiceServer).TransferWork(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethodTransferWork}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(NodeServiceServer).TransferWork(ctx, req.(*wire.Task))
	}
	return interceptor(ctx, in, info, handler)
}

var nodeServiceServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NodeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Heartbeat", Handler: handlerHeartbeat},
		{MethodName: "AssignTask", Handler: handlerAssignTask},
		{MethodName: "RequestWork", Handler: handlerRequestWork},
		{MethodName: "TransferWork", Handler: handlerTransferWork},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "leader.proto",
}
