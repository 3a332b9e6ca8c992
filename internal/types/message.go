package types

import "math/big"

// MessageType is the direction/origin tag derived from a message's header
// kind and its in/out position within the owning transaction.
type MessageType int

const (
	InternalInbound MessageType = iota
	InternalOutbound
	ExternalInbound
	ExternalOutbound
)

func (t MessageType) String() string {
	switch t {
	case InternalInbound:
		return "internal_inbound"
	case InternalOutbound:
		return "internal_outbound"
	case ExternalInbound:
		return "external_inbound"
	case ExternalOutbound:
		return "external_outbound"
	default:
		return "unknown"
	}
}

// MessageTypeFromString parses the snake_case wire representation used by
// filter-config message constraints.
func MessageTypeFromString(s string) (MessageType, bool) {
	switch s {
	case "internal_inbound":
		return InternalInbound, true
	case "internal_outbound":
		return InternalOutbound, true
	case "external_inbound":
		return ExternalInbound, true
	case "external_outbound":
		return ExternalOutbound, true
	default:
		return 0, false
	}
}

// MsgHeaderKind tags which CommonMsgInfo variant a message header carries.
type MsgHeaderKind int

const (
	HeaderInternal MsgHeaderKind = iota
	HeaderExternalInbound
	HeaderExternalOutbound
)

// IntMsgInfo is the header of an internal (contract-to-contract) message.
type IntMsgInfo struct {
	Bounce      bool
	Bounced     bool
	IHRDisabled bool
	Src         *Address // nil when the header carries MsgAddressIntOrNone::None
	Dst         Address
	Grams       *big.Int
	IHRFee      *big.Int
	FwdFee      *big.Int
	CreatedAt   uint32
	CreatedLT   uint64
}

// ExtInMsgInfo is the header of an externally-submitted inbound message.
type ExtInMsgInfo struct {
	Dst Address
}

// ExtOutMsgInfo is the header of an externally-observable outbound message.
type ExtOutMsgInfo struct {
	Src       *Address
	CreatedAt uint32
	CreatedLT uint64
}

// MsgHeader is the tagged union of CommonMsgInfo kinds.
type MsgHeader struct {
	Kind   MsgHeaderKind
	Int    *IntMsgInfo
	ExtIn  *ExtInMsgInfo
	ExtOut *ExtOutMsgInfo
}

// MessageTypeFrom implements the spec's total, deterministic mapping from
// header kind × direction to MessageType.
func MessageTypeFrom(header MsgHeader, isInMessage bool) MessageType {
	switch header.Kind {
	case HeaderInternal:
		if isInMessage {
			return InternalInbound
		}
		return InternalOutbound
	case HeaderExternalInbound:
		return ExternalInbound
	case HeaderExternalOutbound:
		return ExternalOutbound
	default:
		return ExternalOutbound
	}
}

// Message is a blockchain message: a header variant plus an optional body
// cell and addressing, with its representation hash computed at decode
// time (mirrors the codec handing back an already-hashed record).
type Message struct {
	Header MsgHeader
	Body   *Cell
	hash   Hash256
}

// NewMessage constructs a Message and memoizes its representation hash.
func NewMessage(header MsgHeader, body *Cell) *Message {
	m := &Message{Header: header, Body: body}
	m.hash = m.computeHash()
	return m
}

func (m *Message) computeHash() Hash256 {
	return m.Body.Hash()
}

func (m *Message) Hash() Hash256 {
	if m == nil {
		return ZeroHash256
	}
	return m.hash
}

// HasBody reports whether the message carries a non-empty body cell.
func (m *Message) HasBody() bool {
	return m != nil && !m.Body.Empty()
}

// Src returns the message's source address, if its header variant carries
// one (Internal or ExternalOutbound).
func (m *Message) Src() *Address {
	if m == nil {
		return nil
	}
	switch m.Header.Kind {
	case HeaderInternal:
		if m.Header.Int != nil {
			return m.Header.Int.Src
		}
	case HeaderExternalOutbound:
		if m.Header.ExtOut != nil {
			return m.Header.ExtOut.Src
		}
	}
	return nil
}

// Dst returns the message's destination address, if its header variant
// carries one (Internal or ExternalInbound).
func (m *Message) Dst() *Address {
	if m == nil {
		return nil
	}
	switch m.Header.Kind {
	case HeaderInternal:
		if m.Header.Int != nil {
			return &m.Header.Int.Dst
		}
	case HeaderExternalInbound:
		if m.Header.ExtIn != nil {
			return &m.Header.ExtIn.Dst
		}
	}
	return nil
}

// String renders the message for display/JSON framing, mirroring the
// original's Display impl closely enough for debugging/trace output.
func (m *Message) String() string {
	if m == nil {
		return "<nil message>"
	}
	switch m.Header.Kind {
	case HeaderInternal:
		info := m.Header.Int
		src := "none"
		if info.Src != nil {
			src = info.Src.String()
		}
		return "int src=" + src + " dst=" + info.Dst.String()
	case HeaderExternalInbound:
		return "ext_in dst=" + m.Header.ExtIn.Dst.String()
	case HeaderExternalOutbound:
		src := "none"
		if m.Header.ExtOut.Src != nil {
			src = m.Header.ExtOut.Src.String()
		}
		return "ext_out src=" + src
	default:
		return "<unknown message>"
	}
}
