package filter

import (
	"github.com/venom-blockchain/fusion-producer/internal/abi"
	"github.com/venom-blockchain/fusion-producer/internal/types"
)

// InnerParserKind tags the closed, exhaustive set of inner-parser
// variants a compiled Parser can hold.
type InnerParserKind int

const (
	InnerAbi InnerParserKind = iota
	InnerEmptyMessage
	InnerRawMessage
)

// emptyMessageName and rawMessageName are sentinel names carrying "%%"
// delimiters that cannot collide with any legitimate ABI identifier.
const (
	emptyMessageName = "%%EmptyOutMessage%%"
	rawMessageName   = "%%RawBodyMessage%%"
)

// Parser is the compiled form of a FilterRecord: its name, its ordered
// FilterEntry predicates, and the inner parser variant that extracts
// candidate messages from a transaction.
type Parser struct {
	Name    string
	Entries []FilterEntry

	kind      InnerParserKind
	abiParser *abi.TransactionParser // only set when kind == InnerAbi
}

// Parse extracts candidate FilteredMessages from tx using this parser's
// inner-parser variant.
func (p *Parser) Parse(tx *types.Transaction) []types.FilteredMessage {
	switch p.kind {
	case InnerAbi:
		return p.abiParser.Parse(tx)
	case InnerEmptyMessage:
		return parseEmptyMessages(tx)
	case InnerRawMessage:
		return parseRawMessages(tx)
	default:
		return nil
	}
}

// parseEmptyMessages matches outbound messages with empty bodies. Since an
// ABI parser skips messages with empty bodies entirely, native transfers
// need this separate pass. It never inspects the inbound message.
func parseEmptyMessages(tx *types.Transaction) []types.FilteredMessage {
	var out []types.FilteredMessage
	for i, msg := range tx.OutMsgs {
		if msg.HasBody() {
			continue
		}
		out = append(out, types.FilteredMessage{
			Name:               emptyMessageName,
			MessageHash:        msg.Hash(),
			Message:            msg,
			MessageType:        types.MessageTypeFrom(msg.Header, false),
			Tx:                 tx,
			IndexInTransaction: uint16(i),
		})
	}
	return out
}

// parseRawMessages matches every message in the transaction: the inbound
// message (if any, at index 0) and every outbound message in ascending
// order.
func parseRawMessages(tx *types.Transaction) []types.FilteredMessage {
	var out []types.FilteredMessage
	if tx.InMsg != nil {
		out = append(out, types.FilteredMessage{
			Name:               rawMessageName,
			MessageHash:        tx.InMsg.Hash(),
			Message:            tx.InMsg,
			MessageType:        types.MessageTypeFrom(tx.InMsg.Header, true),
			Tx:                 tx,
			IndexInTransaction: 0,
		})
	}
	for i, msg := range tx.OutMsgs {
		out = append(out, types.FilteredMessage{
			Name:               rawMessageName,
			MessageHash:        msg.Hash(),
			Message:            msg,
			MessageType:        types.MessageTypeFrom(msg.Header, false),
			Tx:                 tx,
			IndexInTransaction: uint16(i),
		})
	}
	return out
}

// compileParsers builds the ordered list of Parsers a FilterConfig
// describes, preserving record order so downstream filtering evaluates
// parsers the same way the config declared them.
func compileParsers(config FilterConfig) ([]Parser, error) {
	parsers := make([]Parser, 0, len(config.MessageFilters))
	for _, record := range config.MessageFilters {
		var parser Parser
		switch record.FilterType.Kind {
		case KindContract:
			schema, err := abi.LoadSchema(record.FilterType.ABIPath)
			if err != nil {
				return nil, err
			}
			parser = Parser{
				Name:      record.FilterType.Name,
				Entries:   record.Entries,
				kind:      InnerAbi,
				abiParser: abi.NewTransactionParser(schema),
			}
		case KindNativeTransfer:
			parser = Parser{Name: "EmptyMessage", Entries: record.Entries, kind: InnerEmptyMessage}
		case KindAnyMessage:
			parser = Parser{Name: "RawMessage", Entries: record.Entries, kind: InnerRawMessage}
		}
		parsers = append(parsers, parser)
	}
	return parsers, nil
}
