package serializer

import (
	"fmt"
	"math/big"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

// Field numbers for the hand-authored SerializeMessage wire schema. There
// is no .proto/generated-code step in this build (the ABI-schema loader
// format is taken as given, and no protoc toolchain is assumed present),
// so the schema is encoded and decoded by hand with protowire, mirroring
// the shape of the original's prost-generated bindings field-for-field.
const (
	fieldMessageHash          = 1
	fieldBlockID              = 2
	fieldTransactionID        = 3
	fieldMessageType          = 4
	fieldIndexInTransaction   = 5
	fieldTransactionTimestamp = 6
	fieldContractName         = 7
	fieldFilterName           = 8
	fieldHeaderInternal       = 9
	fieldHeaderExtIn          = 10
	fieldHeaderExtOut         = 11
)

// Sub-fields of the embedded header submessages.
const (
	intBounce      = 1
	intBounced     = 2
	intIHRDisabled = 3
	intSrc         = 4
	intDst         = 5
	intGrams       = 6
	intIHRFee      = 7
	intFwdFee      = 8
	intCreatedAt   = 9
	intCreatedLT   = 10

	extInDst = 1

	extOutSrc       = 1
	extOutCreatedAt = 2
	extOutCreatedLT = 3

	addrWorkchain = 1
	addrAccount   = 2
)

// ProtobufSerializer frames a message as protobuf length-delimited bytes:
// a varint length followed by the hand-encoded SerializeMessage body.
type ProtobufSerializer struct{}

func (ProtobufSerializer) Serialize(msg types.SerializeMessage) ([]byte, error) {
	body := encodeSerializeMessage(msg)
	framed := protowire.AppendVarint(nil, uint64(len(body)))
	framed = append(framed, body...)
	return framed, nil
}

func encodeSerializeMessage(msg types.SerializeMessage) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldMessageHash, protowire.BytesType)
	b = protowire.AppendBytes(b, msg.MessageHash[:])
	b = protowire.AppendTag(b, fieldBlockID, protowire.BytesType)
	b = protowire.AppendBytes(b, msg.BlockID[:])
	b = protowire.AppendTag(b, fieldTransactionID, protowire.BytesType)
	b = protowire.AppendBytes(b, msg.TransactionID[:])
	b = protowire.AppendTag(b, fieldMessageType, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(msg.MessageType))
	b = protowire.AppendTag(b, fieldIndexInTransaction, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(msg.IndexInTransaction))
	b = protowire.AppendTag(b, fieldTransactionTimestamp, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(msg.TransactionTimestamp))
	b = protowire.AppendTag(b, fieldContractName, protowire.BytesType)
	b = protowire.AppendString(b, msg.ContractName)
	b = protowire.AppendTag(b, fieldFilterName, protowire.BytesType)
	b = protowire.AppendString(b, msg.FilterName)

	if msg.Message != nil {
		switch msg.Message.Header.Kind {
		case types.HeaderInternal:
			if info := msg.Message.Header.Int; info != nil {
				b = protowire.AppendTag(b, fieldHeaderInternal, protowire.BytesType)
				b = protowire.AppendBytes(b, encodeIntMsgInfo(info))
			}
		case types.HeaderExternalInbound:
			if info := msg.Message.Header.ExtIn; info != nil {
				b = protowire.AppendTag(b, fieldHeaderExtIn, protowire.BytesType)
				b = protowire.AppendBytes(b, encodeExtInMsgInfo(info))
			}
		case types.HeaderExternalOutbound:
			if info := msg.Message.Header.ExtOut; info != nil {
				b = protowire.AppendTag(b, fieldHeaderExtOut, protowire.BytesType)
				b = protowire.AppendBytes(b, encodeExtOutMsgInfo(info))
			}
		}
	}
	return b
}

func encodeAddress(addr types.Address) []byte {
	var b []byte
	b = protowire.AppendTag(b, addrWorkchain, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(addr.Workchain)))
	b = protowire.AppendTag(b, addrAccount, protowire.BytesType)
	b = protowire.AppendBytes(b, addr.Account[:])
	return b
}

func decodeAddress(buf []byte) (types.Address, error) {
	var addr types.Address
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return addr, fmt.Errorf("address: bad tag")
		}
		buf = buf[n:]
		switch num {
		case addrWorkchain:
			v, n := protowire.ConsumeVarint(buf)
			if n < 0 {
				return addr, fmt.Errorf("address: bad workchain")
			}
			addr.Workchain = int32(protowire.DecodeZigZag(v))
			buf = buf[n:]
		case addrAccount:
			v, n := protowire.ConsumeBytes(buf)
			if n < 0 {
				return addr, fmt.Errorf("address: bad account")
			}
			copy(addr.Account[:], v)
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return addr, fmt.Errorf("address: bad field %d", num)
			}
			buf = buf[n:]
		}
	}
	return addr, nil
}

// bigIntLEBytes renders v as the canonical little-endian byte sequence of
// its unsigned 128-bit value, mirroring the original's
// `.as_u128().write_to_bytes()` call. A nil value encodes as empty bytes
// (zero).
func bigIntLEBytes(v *big.Int) []byte {
	if v == nil {
		return nil
	}
	be := v.Bytes()
	le := make([]byte, len(be))
	for i, bnum := range be {
		le[len(be)-1-i] = bnum
	}
	return le
}

func bigIntFromLEBytes(le []byte) *big.Int {
	be := make([]byte, len(le))
	for i, bnum := range le {
		be[len(le)-1-i] = bnum
	}
	return new(big.Int).SetBytes(be)
}

func boolVarint(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

func encodeIntMsgInfo(info *types.IntMsgInfo) []byte {
	var b []byte
	b = protowire.AppendTag(b, intBounce, protowire.VarintType)
	b = protowire.AppendVarint(b, boolVarint(info.Bounce))
	b = protowire.AppendTag(b, intBounced, protowire.VarintType)
	b = protowire.AppendVarint(b, boolVarint(info.Bounced))
	b = protowire.AppendTag(b, intIHRDisabled, protowire.VarintType)
	b = protowire.AppendVarint(b, boolVarint(info.IHRDisabled))
	if info.Src != nil {
		b = protowire.AppendTag(b, intSrc, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeAddress(*info.Src))
	}
	b = protowire.AppendTag(b, intDst, protowire.BytesType)
	b = protowire.AppendBytes(b, encodeAddress(info.Dst))
	b = protowire.AppendTag(b, intGrams, protowire.BytesType)
	b = protowire.AppendBytes(b, bigIntLEBytes(info.Grams))
	b = protowire.AppendTag(b, intIHRFee, protowire.BytesType)
	b = protowire.AppendBytes(b, bigIntLEBytes(info.IHRFee))
	b = protowire.AppendTag(b, intFwdFee, protowire.BytesType)
	b = protowire.AppendBytes(b, bigIntLEBytes(info.FwdFee))
	b = protowire.AppendTag(b, intCreatedAt, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(info.CreatedAt))
	b = protowire.AppendTag(b, intCreatedLT, protowire.VarintType)
	b = protowire.AppendVarint(b, info.CreatedLT)
	return b
}

func decodeIntMsgInfo(buf []byte) (*types.IntMsgInfo, error) {
	info := &types.IntMsgInfo{}
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("int_msg_info: bad tag")
		}
		buf = buf[n:]
		switch num {
		case intBounce:
			v, n := protowire.ConsumeVarint(buf)
			info.Bounce = v != 0
			buf = buf[n:]
		case intBounced:
			v, n := protowire.ConsumeVarint(buf)
			info.Bounced = v != 0
			buf = buf[n:]
		case intIHRDisabled:
			v, n := protowire.ConsumeVarint(buf)
			info.IHRDisabled = v != 0
			buf = buf[n:]
		case intSrc:
			v, n := protowire.ConsumeBytes(buf)
			addr, err := decodeAddress(v)
			if err != nil {
				return nil, err
			}
			info.Src = &addr
			buf = buf[n:]
		case intDst:
			v, n := protowire.ConsumeBytes(buf)
			addr, err := decodeAddress(v)
			if err != nil {
				return nil, err
			}
			info.Dst = addr
			buf = buf[n:]
		case intGrams:
			v, n := protowire.ConsumeBytes(buf)
			info.Grams = bigIntFromLEBytes(v)
			buf = buf[n:]
		case intIHRFee:
			v, n := protowire.ConsumeBytes(buf)
			info.IHRFee = bigIntFromLEBytes(v)
			buf = buf[n:]
		case intFwdFee:
			v, n := protowire.ConsumeBytes(buf)
			info.FwdFee = bigIntFromLEBytes(v)
			buf = buf[n:]
		case intCreatedAt:
			v, n := protowire.ConsumeVarint(buf)
			info.CreatedAt = uint32(v)
			buf = buf[n:]
		case intCreatedLT:
			v, n := protowire.ConsumeVarint(buf)
			info.CreatedLT = v
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, fmt.Errorf("int_msg_info: bad field %d", num)
			}
			buf = buf[n:]
		}
	}
	return info, nil
}

func encodeExtInMsgInfo(info *types.ExtInMsgInfo) []byte {
	var b []byte
	b = protowire.AppendTag(b, extInDst, protowire.BytesType)
	b = protowire.AppendBytes(b, encodeAddress(info.Dst))
	return b
}

func decodeExtInMsgInfo(buf []byte) (*types.ExtInMsgInfo, error) {
	info := &types.ExtInMsgInfo{}
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("ext_in_msg_info: bad tag")
		}
		buf = buf[n:]
		switch num {
		case extInDst:
			v, n := protowire.ConsumeBytes(buf)
			addr, err := decodeAddress(v)
			if err != nil {
				return nil, err
			}
			info.Dst = addr
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, fmt.Errorf("ext_in_msg_info: bad field %d", num)
			}
			buf = buf[n:]
		}
	}
	return info, nil
}

func encodeExtOutMsgInfo(info *types.ExtOutMsgInfo) []byte {
	var b []byte
	if info.Src != nil {
		b = protowire.AppendTag(b, extOutSrc, protowire.BytesType)
		b = protowire.AppendBytes(b, encodeAddress(*info.Src))
	}
	b = protowire.AppendTag(b, extOutCreatedAt, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(info.CreatedAt))
	b = protowire.AppendTag(b, extOutCreatedLT, protowire.VarintType)
	b = protowire.AppendVarint(b, info.CreatedLT)
	return b
}

func decodeExtOutMsgInfo(buf []byte) (*types.ExtOutMsgInfo, error) {
	info := &types.ExtOutMsgInfo{}
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return nil, fmt.Errorf("ext_out_msg_info: bad tag")
		}
		buf = buf[n:]
		switch num {
		case extOutSrc:
			v, n := protowire.ConsumeBytes(buf)
			addr, err := decodeAddress(v)
			if err != nil {
				return nil, err
			}
			info.Src = &addr
			buf = buf[n:]
		case extOutCreatedAt:
			v, n := protowire.ConsumeVarint(buf)
			info.CreatedAt = uint32(v)
			buf = buf[n:]
		case extOutCreatedLT:
			v, n := protowire.ConsumeVarint(buf)
			info.CreatedLT = v
			buf = buf[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, buf)
			if n < 0 {
				return nil, fmt.Errorf("ext_out_msg_info: bad field %d", num)
			}
			buf = buf[n:]
		}
	}
	return info, nil
}

// DecodedMessage holds the fields of a decoded protobuf frame that a test
// can compare against the original SerializeMessage.
type DecodedMessage struct {
	MessageHash          types.Hash256
	BlockID              types.Hash256
	TransactionID        types.Hash256
	MessageType          types.MessageType
	IndexInTransaction   uint16
	TransactionTimestamp uint32
	ContractName         string
	FilterName           string
	Header               types.MsgHeader
}

// DecodeProtobufFrame reads a single length-delimited frame from the head
// of buf and decodes it into a DecodedMessage, returning it with the number
// of bytes consumed. Used by tests exercising the round-trip property; the
// block handler never calls this (egress is write-only).
func DecodeProtobufFrame(buf []byte) (*DecodedMessage, int, error) {
	n64, n := protowire.ConsumeVarint(buf)
	if n < 0 {
		return nil, 0, fmt.Errorf("protobuf frame: bad length varint")
	}
	body := buf[n:]
	if uint64(len(body)) < n64 {
		return nil, 0, fmt.Errorf("protobuf frame: declared length %d exceeds available %d", n64, len(body))
	}
	body = body[:n64]

	msg := &DecodedMessage{}
	rest := body
	for len(rest) > 0 {
		num, typ, tn := protowire.ConsumeTag(rest)
		if tn < 0 {
			return nil, 0, fmt.Errorf("protobuf frame: bad tag")
		}
		rest = rest[tn:]
		switch num {
		case fieldMessageHash:
			v, cn := protowire.ConsumeBytes(rest)
			copy(msg.MessageHash[:], v)
			rest = rest[cn:]
		case fieldBlockID:
			v, cn := protowire.ConsumeBytes(rest)
			copy(msg.BlockID[:], v)
			rest = rest[cn:]
		case fieldTransactionID:
			v, cn := protowire.ConsumeBytes(rest)
			copy(msg.TransactionID[:], v)
			rest = rest[cn:]
		case fieldMessageType:
			v, cn := protowire.ConsumeVarint(rest)
			msg.MessageType = types.MessageType(v)
			rest = rest[cn:]
		case fieldIndexInTransaction:
			v, cn := protowire.ConsumeVarint(rest)
			msg.IndexInTransaction = uint16(v)
			rest = rest[cn:]
		case fieldTransactionTimestamp:
			v, cn := protowire.ConsumeVarint(rest)
			msg.TransactionTimestamp = uint32(v)
			rest = rest[cn:]
		case fieldContractName:
			v, cn := protowire.ConsumeBytes(rest)
			msg.ContractName = string(v)
			rest = rest[cn:]
		case fieldFilterName:
			v, cn := protowire.ConsumeBytes(rest)
			msg.FilterName = string(v)
			rest = rest[cn:]
		case fieldHeaderInternal:
			v, cn := protowire.ConsumeBytes(rest)
			info, err := decodeIntMsgInfo(v)
			if err != nil {
				return nil, 0, err
			}
			msg.Header = types.MsgHeader{Kind: types.HeaderInternal, Int: info}
			rest = rest[cn:]
		case fieldHeaderExtIn:
			v, cn := protowire.ConsumeBytes(rest)
			info, err := decodeExtInMsgInfo(v)
			if err != nil {
				return nil, 0, err
			}
			msg.Header = types.MsgHeader{Kind: types.HeaderExternalInbound, ExtIn: info}
			rest = rest[cn:]
		case fieldHeaderExtOut:
			v, cn := protowire.ConsumeBytes(rest)
			info, err := decodeExtOutMsgInfo(v)
			if err != nil {
				return nil, 0, err
			}
			msg.Header = types.MsgHeader{Kind: types.HeaderExternalOutbound, ExtOut: info}
			rest = rest[cn:]
		default:
			cn := protowire.ConsumeFieldValue(num, typ, rest)
			if cn < 0 {
				return nil, 0, fmt.Errorf("protobuf frame: bad field %d", num)
			}
			rest = rest[cn:]
		}
	}
	return msg, int(n) + int(n64), nil
}
