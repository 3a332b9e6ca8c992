package types

import "encoding/json"

// FilteredMessage is the intermediate record the Filter Engine produces:
// a candidate message attributed to an ABI event/function name (or a
// sentinel name for the Empty/Raw parsers), before the owning FilterEntry
// has necessarily been resolved.
//
// ContractName and FilterName are empty iff this record has not yet been
// attributed to a specific FilterEntry.
type FilteredMessage struct {
	Name               string
	MessageHash        Hash256
	Message            *Message
	MessageType        MessageType
	Tx                 *Transaction
	IndexInTransaction uint16
	ContractName       string
	FilterName         string
}

// SerializeMessage is the enriched, serializer-ready record: it adds
// transaction/block identifiers and drops the (now redundant) owning
// transaction.
type SerializeMessage struct {
	Message              *Message
	MessageHash          Hash256
	MessageType          MessageType
	BlockID              Hash256
	TransactionID        Hash256
	TransactionTimestamp uint32
	IndexInTransaction   uint16
	ContractName         string
	FilterName           string
}

// serializeMessageJSON mirrors the original's serde layout: hex strings for
// 256-bit identifiers, a display string for the message, snake_case for the
// message type.
type serializeMessageJSON struct {
	Message              string `json:"message"`
	MessageHash          string `json:"message_hash"`
	MessageType          string `json:"message_type"`
	BlockID              string `json:"block_id"`
	TransactionID        string `json:"transaction_id"`
	TransactionTimestamp uint32 `json:"transaction_timestamp"`
	IndexInTransaction   uint16 `json:"index_in_transaction"`
	ContractName         string `json:"contract_name"`
	FilterName           string `json:"filter_name"`
}

func (m SerializeMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(serializeMessageJSON{
		Message:              m.Message.String(),
		MessageHash:          m.MessageHash.Hex(),
		MessageType:          m.MessageType.String(),
		BlockID:              m.BlockID.Hex(),
		TransactionID:        m.TransactionID.Hex(),
		TransactionTimestamp: m.TransactionTimestamp,
		IndexInTransaction:   m.IndexInTransaction,
		ContractName:         m.ContractName,
		FilterName:           m.FilterName,
	})
}
