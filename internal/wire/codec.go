package wire

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype under which jsonCodec is
// registered. The wire encoding only has to be an isomorphic schema
// shared by every node: a record-oriented JSON envelope satisfies that
// without requiring a protoc toolchain in this repository, while
// keeping every message type and field name stable across the four
// RPCs.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// jsonCodec implements grpc/encoding.Codec by marshaling the wire
// message structs (Task, NodeStatus, WorkRequest, WorkResponse, Ack)
// through encoding/json instead of protobuf wire format.
type jsonCodec struct{}

func (jsonCodec) Marshal(v interface{}) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("wire: marshal %T: %w", v, err)
	}
	return b, nil
}

func (jsonCodec) Unmarshal(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("wire: unmarshal %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string { return CodecName }
