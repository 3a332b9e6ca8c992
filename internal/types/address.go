package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a TON-style internal address: a signed workchain id paired
// with a 256-bit in-workchain account hash, conventionally written
// "<workchain>:<hex-hash>".
type Address struct {
	Workchain int32
	Account   Hash256
}

func (a Address) String() string {
	return fmt.Sprintf("%d:%s", a.Workchain, a.Account.Hex())
}

func (a Address) Equal(other Address) bool {
	return a.Workchain == other.Workchain && a.Account == other.Account
}

// ParseAddress parses the "<workchain>:<hex-hash>" textual form.
func ParseAddress(s string) (Address, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return Address{}, fmt.Errorf("parsing address %q: expected <workchain>:<hash>", s)
	}
	wc, err := strconv.ParseInt(parts[0], 10, 32)
	if err != nil {
		return Address{}, fmt.Errorf("parsing address %q workchain: %w", s, err)
	}
	hash, err := ParseHash256(parts[1])
	if err != nil {
		return Address{}, fmt.Errorf("parsing address %q: %w", s, err)
	}
	return Address{Workchain: int32(wc), Account: hash}, nil
}
