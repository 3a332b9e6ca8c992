// Package filter implements the Parser Registry and Filter Engine: the
// predicate language over sender/receiver/ABI-event constraints that
// selects which decoded messages make it to the egress pipeline.
package filter

import (
	"fmt"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

// FilterTypeKind selects which InnerParser a FilterRecord compiles to.
type FilterTypeKind string

const (
	KindContract       FilterTypeKind = "contract"
	KindNativeTransfer FilterTypeKind = "native_transfer"
	KindAnyMessage     FilterTypeKind = "any_message"
)

// FilterType is the tagged union of filter record kinds.
type FilterType struct {
	Kind    FilterTypeKind
	Name    string // Contract only
	ABIPath string // Contract only
}

func denyUnknown(raw map[string]interface{}, allowed ...string) error {
	known := make(map[string]struct{}, len(allowed))
	for _, k := range allowed {
		known[k] = struct{}{}
	}
	for k := range raw {
		if _, ok := known[k]; !ok {
			return fmt.Errorf("unknown field %q", k)
		}
	}
	return nil
}

func (f *FilterType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	kindRaw, ok := raw["kind"]
	if !ok {
		return fmt.Errorf("filter type: missing \"kind\"")
	}
	kind, _ := kindRaw.(string)
	switch FilterTypeKind(kind) {
	case KindContract:
		name, _ := raw["name"].(string)
		abiPath, _ := raw["abi_path"].(string)
		if name == "" || abiPath == "" {
			return fmt.Errorf("filter type %q: requires \"name\" and \"abi_path\"", kind)
		}
		if err := denyUnknown(raw, "kind", "name", "abi_path"); err != nil {
			return fmt.Errorf("filter type %q: %w", kind, err)
		}
		f.Kind, f.Name, f.ABIPath = KindContract, name, abiPath
	case KindNativeTransfer:
		if err := denyUnknown(raw, "kind"); err != nil {
			return fmt.Errorf("filter type %q: %w", kind, err)
		}
		f.Kind = KindNativeTransfer
	case KindAnyMessage:
		if err := denyUnknown(raw, "kind"); err != nil {
			return fmt.Errorf("filter type %q: %w", kind, err)
		}
		f.Kind = KindAnyMessage
	default:
		return fmt.Errorf("filter type: unknown kind %q", kind)
	}
	return nil
}

// AddressOrCodeHash is an account constraint: either a literal address
// (equality match) or a 256-bit code hash (requires shard state to
// resolve).
type AddressOrCodeHash struct {
	IsCodeHash bool
	Address    types.Address
	CodeHash   types.Hash256
}

func (a *AddressOrCodeHash) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw map[string]interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("address_or_code_hash: expected exactly one of \"address\" or \"code_hash\"")
	}
	if v, ok := raw["address"]; ok {
		s, _ := v.(string)
		addr, err := types.ParseAddress(s)
		if err != nil {
			return fmt.Errorf("address_or_code_hash: %w", err)
		}
		a.IsCodeHash, a.Address = false, addr
		return nil
	}
	if v, ok := raw["code_hash"]; ok {
		s, _ := v.(string)
		hash, err := types.ParseHash256(s)
		if err != nil {
			return fmt.Errorf("address_or_code_hash: %w", err)
		}
		a.IsCodeHash, a.CodeHash = true, hash
		return nil
	}
	return fmt.Errorf("address_or_code_hash: unknown variant")
}

// MatchAddress reports whether this constraint matches other by literal
// address equality (CodeHash constraints never match this way).
func (a *AddressOrCodeHash) MatchAddress(other types.Address) bool {
	return !a.IsCodeHash && a.Address.Equal(other)
}

// MessageFilter constrains a candidate to a specific ABI event/function
// name and message direction.
type MessageFilter struct {
	MessageName string
	MessageType types.MessageType
}

func (m *MessageFilter) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw struct {
		Name string `yaml:"name"`
		Type string `yaml:"type"`
	}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	mt, ok := types.MessageTypeFromString(raw.Type)
	if !ok {
		return fmt.Errorf("message filter: unknown type %q", raw.Type)
	}
	m.MessageName, m.MessageType = raw.Name, mt
	return nil
}

// FilterEntry is one named predicate within a FilterRecord: an optional
// sender/receiver constraint plus an optional message constraint.
type FilterEntry struct {
	Name     string             `yaml:"name"`
	Sender   *AddressOrCodeHash `yaml:"sender,omitempty"`
	Receiver *AddressOrCodeHash `yaml:"receiver,omitempty"`
	Message  *MessageFilter     `yaml:"message,omitempty"`
}

// FilterRecord pairs a FilterType with its ordered entries.
type FilterRecord struct {
	FilterType FilterType    `yaml:"type"`
	Entries    []FilterEntry `yaml:"entries"`
}

// FilterConfig is the ordered set of filter records read from
// configuration.
type FilterConfig struct {
	MessageFilters []FilterRecord `yaml:"message_filters"`
}
