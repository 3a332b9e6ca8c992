package abi

import "github.com/venom-blockchain/fusion-producer/internal/types"

// TransactionParser recognizes a compiled Schema's functions against a
// transaction's inbound message and its events against the transaction's
// outbound messages, mirroring nekoton_abi::TransactionParser's
// function_in_list(..., false) + events_list(...) construction: functions
// match only the inbound call, events match only outbound messages.
type TransactionParser struct {
	functionBySelector map[[4]byte]string
	eventBySelector    map[[4]byte]string
}

// NewTransactionParser compiles a Schema into a selector-indexed matcher.
func NewTransactionParser(schema *Schema) *TransactionParser {
	p := &TransactionParser{
		functionBySelector: make(map[[4]byte]string, len(schema.Functions)),
		eventBySelector:    make(map[[4]byte]string, len(schema.Events)),
	}
	for _, fn := range schema.Functions {
		p.functionBySelector[selector(fn.Name)] = fn.Name
	}
	for _, ev := range schema.Events {
		p.eventBySelector[selector(ev.Name)] = ev.Name
	}
	return p
}

func bodySelector(body *types.Cell) ([4]byte, bool) {
	var sel [4]byte
	if body == nil || len(body.Data) < 4 {
		return sel, false
	}
	copy(sel[:], body.Data[:4])
	return sel, true
}

// Parse extracts one FilteredMessage candidate per function call recognized
// on the inbound message and per event recognized on an outbound message.
func (p *TransactionParser) Parse(tx *types.Transaction) []types.FilteredMessage {
	var out []types.FilteredMessage

	if tx.InMsg != nil {
		if sel, ok := bodySelector(tx.InMsg.Body); ok {
			if name, ok := p.functionBySelector[sel]; ok {
				out = append(out, types.FilteredMessage{
					Name:               name,
					MessageHash:        tx.InMsg.Hash(),
					Message:            tx.InMsg,
					MessageType:        types.MessageTypeFrom(tx.InMsg.Header, true),
					Tx:                 tx,
					IndexInTransaction: 0,
				})
			}
		}
	}

	for i, msg := range tx.OutMsgs {
		sel, ok := bodySelector(msg.Body)
		if !ok {
			continue
		}
		name, ok := p.eventBySelector[sel]
		if !ok {
			continue
		}
		out = append(out, types.FilteredMessage{
			Name:               name,
			MessageHash:        msg.Hash(),
			Message:            msg,
			MessageType:        types.MessageTypeFrom(msg.Header, false),
			Tx:                 tx,
			IndexInTransaction: uint16(i),
		})
	}

	return out
}
