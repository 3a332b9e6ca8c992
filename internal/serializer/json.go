package serializer

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

// JSONSerializer frames a message as its JSON encoding prefixed by a 32-bit
// big-endian length of the JSON body (the prefix itself is not counted).
type JSONSerializer struct{}

func (JSONSerializer) Serialize(msg types.SerializeMessage) ([]byte, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("json serializer: %w", err)
	}
	var buf bytes.Buffer
	buf.Grow(4 + len(body))
	if err := binary.Write(&buf, binary.BigEndian, uint32(len(body))); err != nil {
		return nil, fmt.Errorf("json serializer: writing length prefix: %w", err)
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

// DecodeJSONFrame reads a single length-prefixed JSON frame from the head
// of buf, returning the JSON body and the number of bytes consumed. Used
// by tests exercising the round-trip property.
func DecodeJSONFrame(buf []byte) (body []byte, consumed int, err error) {
	if len(buf) < 4 {
		return nil, 0, fmt.Errorf("json frame: short buffer")
	}
	n := binary.BigEndian.Uint32(buf[:4])
	if uint32(len(buf)-4) < n {
		return nil, 0, fmt.Errorf("json frame: declared length %d exceeds available %d", n, len(buf)-4)
	}
	return buf[4 : 4+n], int(4 + n), nil
}
