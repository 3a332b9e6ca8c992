// Package serializer maps an enriched SerializeMessage onto a
// self-delimiting byte buffer, in one of two pluggable wire framings.
package serializer

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

// Kind selects the wire framing a Serializer produces.
type Kind string

const (
	KindJSON     Kind = "json"
	KindProtobuf Kind = "protobuf"
)

// Serializer maps one SerializeMessage to a length-framed byte buffer.
type Serializer interface {
	Serialize(msg types.SerializeMessage) ([]byte, error)
}

// Config is the serializer's configuration surface: the wire kind plus the
// failure policy for individual serialization errors.
type Config struct {
	Kind Kind `yaml:"kind"`
	// DropOnError, when true, drops a message that fails to serialize
	// instead of substituting an empty buffer (resolves Open Question 3 as
	// a policy toggle rather than a fixed behavior).
	DropOnError bool `yaml:"drop_on_error"`
}

// New constructs the Serializer named by kind.
func New(kind Kind) (Serializer, error) {
	switch kind {
	case KindJSON:
		return JSONSerializer{}, nil
	case KindProtobuf:
		return ProtobufSerializer{}, nil
	default:
		return nil, fmt.Errorf("serializer: unknown kind %q", kind)
	}
}

// Apply serializes msg through s, honoring cfg.DropOnError on failure. The
// second return value is false iff the message should not be sent at all.
func Apply(s Serializer, cfg Config, msg types.SerializeMessage) ([]byte, bool) {
	buf, err := s.Serialize(msg)
	if err != nil {
		logrus.WithError(err).Errorf("serializer: failed to serialize message %s", msg.MessageHash.Hex())
		if cfg.DropOnError {
			return nil, false
		}
		return []byte{}, true
	}
	return buf, true
}
