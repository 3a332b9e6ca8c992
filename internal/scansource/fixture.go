package scansource

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/google/uuid"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

// fixtureFile is the JSON schema a FixtureSource reads: an ordered list of
// blocks, each carrying its account blocks and an optional shard-state
// snapshot. Hash fields left blank are synthesized with a fresh uuid so a
// hand-written fixture only needs to spell out the fields a test actually
// cares about.
type fixtureFile struct {
	Blocks []fixtureBlock `json:"blocks"`
}

type fixtureBlock struct {
	Workchain     int32                 `json:"workchain"`
	ShardPrefix   uint64                `json:"shard_prefix"`
	SeqNo         uint32                `json:"seq_no"`
	RootHash      string                `json:"root_hash,omitempty"`
	FileHash      string                `json:"file_hash,omitempty"`
	AccountBlocks []fixtureAccountBlock `json:"account_blocks"`
	ShardState    *fixtureShardState    `json:"shard_state,omitempty"`
}

type fixtureAccountBlock struct {
	AccountID    string               `json:"account_id"`
	OldHash      string               `json:"old_hash,omitempty"`
	NewHash      string               `json:"new_hash,omitempty"`
	Transactions []fixtureTransaction `json:"transactions"`
}

type fixtureTransaction struct {
	Now       uint32           `json:"now"`
	AccountID string           `json:"account_id"`
	OldHash   string           `json:"old_hash,omitempty"`
	NewHash   string           `json:"new_hash,omitempty"`
	InMsg     *fixtureMessage  `json:"in_msg,omitempty"`
	OutMsgs   []fixtureMessage `json:"out_msgs,omitempty"`
}

// fixtureMessage's Kind selects the CommonMsgInfo variant: "internal",
// "ext_in", or "ext_out".
type fixtureMessage struct {
	Kind        string `json:"kind"`
	Bounce      bool   `json:"bounce,omitempty"`
	Bounced     bool   `json:"bounced,omitempty"`
	IHRDisabled bool   `json:"ihr_disabled,omitempty"`
	Src         string `json:"src,omitempty"`
	Dst         string `json:"dst,omitempty"`
	Grams       string `json:"grams,omitempty"`
	IHRFee      string `json:"ihr_fee,omitempty"`
	FwdFee      string `json:"fwd_fee,omitempty"`
	CreatedAt   uint32 `json:"created_at,omitempty"`
	CreatedLT   uint64 `json:"created_lt,omitempty"`
	BodyHex     string `json:"body_hex,omitempty"`
}

type fixtureShardState struct {
	Accounts []fixtureAccount `json:"accounts"`
}

type fixtureAccount struct {
	Address  string `json:"address"`
	CodeHash string `json:"code_hash"`
}

// FixtureSource is a BlockSource that replays a JSON fixture file in
// order, exhausting after the last block. Grounded on the original's
// JSON test-scanner driver: a deterministic, file-backed stand-in for the
// live network/archive drivers, used in tests and local runs.
type FixtureSource struct {
	events []BlockEvent
	pos    int
}

// NewFixtureSource loads and converts every block in the file at path.
func NewFixtureSource(path string) (*FixtureSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture source: reading %s: %w", path, err)
	}
	var file fixtureFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("fixture source: parsing %s: %w", path, err)
	}

	events := make([]BlockEvent, 0, len(file.Blocks))
	for i, fb := range file.Blocks {
		ev, err := convertBlock(fb)
		if err != nil {
			return nil, fmt.Errorf("fixture source: block %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return &FixtureSource{events: events}, nil
}

func (s *FixtureSource) Next(ctx context.Context) (BlockEvent, error) {
	if s.pos >= len(s.events) {
		return BlockEvent{}, ErrExhausted
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

func (s *FixtureSource) Close() error { return nil }

func convertBlock(fb fixtureBlock) (BlockEvent, error) {
	rootHash, err := hashOrSynthesize(fb.RootHash)
	if err != nil {
		return BlockEvent{}, err
	}
	fileHash, err := hashOrSynthesize(fb.FileHash)
	if err != nil {
		return BlockEvent{}, err
	}
	blockID := types.BlockId{
		Workchain:   fb.Workchain,
		ShardPrefix: fb.ShardPrefix,
		SeqNo:       fb.SeqNo,
		RootHash:    rootHash,
		FileHash:    fileHash,
	}

	accountBlocks := make([]types.AccountBlock, 0, len(fb.AccountBlocks))
	for _, fab := range fb.AccountBlocks {
		ab, err := convertAccountBlock(fab)
		if err != nil {
			return BlockEvent{}, err
		}
		accountBlocks = append(accountBlocks, ab)
	}

	var shardState *types.ShardState
	if fb.ShardState != nil {
		accounts := make(map[types.Address]types.Account, len(fb.ShardState.Accounts))
		for _, fa := range fb.ShardState.Accounts {
			addr, err := types.ParseAddress(fa.Address)
			if err != nil {
				return BlockEvent{}, fmt.Errorf("shard state: %w", err)
			}
			codeHash, err := types.ParseHash256(fa.CodeHash)
			if err != nil {
				return BlockEvent{}, fmt.Errorf("shard state: %w", err)
			}
			accounts[addr] = types.Account{CodeHash: codeHash}
		}
		shardState = &types.ShardState{Accounts: accounts}
	}

	return BlockEvent{
		BlockID:    blockID,
		Block:      types.Block{AccountBlocks: accountBlocks},
		ShardState: shardState,
	}, nil
}

func convertAccountBlock(fab fixtureAccountBlock) (types.AccountBlock, error) {
	accountID, err := hashOrSynthesize(fab.AccountID)
	if err != nil {
		return types.AccountBlock{}, err
	}
	oldHash, err := hashOrSynthesize(fab.OldHash)
	if err != nil {
		return types.AccountBlock{}, err
	}
	newHash, err := hashOrSynthesize(fab.NewHash)
	if err != nil {
		return types.AccountBlock{}, err
	}

	txs := make([]*types.Transaction, 0, len(fab.Transactions))
	for _, ft := range fab.Transactions {
		tx, err := convertTransaction(ft)
		if err != nil {
			return types.AccountBlock{}, err
		}
		txs = append(txs, tx)
	}

	return types.AccountBlock{
		AccountID:   accountID,
		OldHash:     oldHash,
		NewHash:     newHash,
		Transaction: txs,
	}, nil
}

func convertTransaction(ft fixtureTransaction) (*types.Transaction, error) {
	accountID, err := hashOrSynthesize(ft.AccountID)
	if err != nil {
		return nil, err
	}
	oldHash, err := hashOrSynthesize(ft.OldHash)
	if err != nil {
		return nil, err
	}
	newHash, err := hashOrSynthesize(ft.NewHash)
	if err != nil {
		return nil, err
	}

	var inMsg *types.Message
	if ft.InMsg != nil {
		inMsg, err = convertMessage(*ft.InMsg)
		if err != nil {
			return nil, fmt.Errorf("in_msg: %w", err)
		}
	}
	outMsgs := make([]*types.Message, 0, len(ft.OutMsgs))
	for i, fm := range ft.OutMsgs {
		msg, err := convertMessage(fm)
		if err != nil {
			return nil, fmt.Errorf("out_msgs[%d]: %w", i, err)
		}
		outMsgs = append(outMsgs, msg)
	}

	// The representation cell is a synthetic stand-in: the real bit-level
	// transaction cell is out of scope here, so uniqueness (not bit-exact
	// content) is all this fixture format needs to provide.
	cell := &types.Cell{Data: append(accountID[:], uuid.New().String()...)}

	return types.NewTransaction(cell, ft.Now, inMsg, outMsgs, accountID, oldHash, newHash), nil
}

func convertMessage(fm fixtureMessage) (*types.Message, error) {
	var header types.MsgHeader
	switch fm.Kind {
	case "internal":
		dst, err := types.ParseAddress(fm.Dst)
		if err != nil {
			return nil, fmt.Errorf("dst: %w", err)
		}
		var src *types.Address
		if fm.Src != "" {
			a, err := types.ParseAddress(fm.Src)
			if err != nil {
				return nil, fmt.Errorf("src: %w", err)
			}
			src = &a
		}
		header = types.MsgHeader{Kind: types.HeaderInternal, Int: &types.IntMsgInfo{
			Bounce:      fm.Bounce,
			Bounced:     fm.Bounced,
			IHRDisabled: fm.IHRDisabled,
			Src:         src,
			Dst:         dst,
			Grams:       parseAmount(fm.Grams),
			IHRFee:      parseAmount(fm.IHRFee),
			FwdFee:      parseAmount(fm.FwdFee),
			CreatedAt:   fm.CreatedAt,
			CreatedLT:   fm.CreatedLT,
		}}
	case "ext_in":
		dst, err := types.ParseAddress(fm.Dst)
		if err != nil {
			return nil, fmt.Errorf("dst: %w", err)
		}
		header = types.MsgHeader{Kind: types.HeaderExternalInbound, ExtIn: &types.ExtInMsgInfo{Dst: dst}}
	case "ext_out":
		var src *types.Address
		if fm.Src != "" {
			a, err := types.ParseAddress(fm.Src)
			if err != nil {
				return nil, fmt.Errorf("src: %w", err)
			}
			src = &a
		}
		header = types.MsgHeader{Kind: types.HeaderExternalOutbound, ExtOut: &types.ExtOutMsgInfo{
			Src:       src,
			CreatedAt: fm.CreatedAt,
			CreatedLT: fm.CreatedLT,
		}}
	default:
		return nil, fmt.Errorf("unknown message kind %q", fm.Kind)
	}

	body, err := decodeBody(fm.BodyHex)
	if err != nil {
		return nil, err
	}
	return types.NewMessage(header, body), nil
}

func decodeBody(hexStr string) (*types.Cell, error) {
	if hexStr == "" {
		return nil, nil
	}
	data, err := hex.DecodeString(hexStr)
	if err != nil {
		return nil, fmt.Errorf("body_hex: %w", err)
	}
	return &types.Cell{Data: data}, nil
}

func parseAmount(s string) *big.Int {
	if s == "" {
		return nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil
	}
	return n
}

func hashOrSynthesize(s string) (types.Hash256, error) {
	if s == "" {
		var h types.Hash256
		a, b := uuid.New(), uuid.New()
		copy(h[:16], a[:])
		copy(h[16:], b[:])
		return h, nil
	}
	return types.ParseHash256(s)
}
