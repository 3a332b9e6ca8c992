package scansource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/venom-blockchain/fusion-producer/internal/types"
)

const fixtureJSON = `{
  "blocks": [
    {
      "workchain": 0,
      "shard_prefix": 1,
      "seq_no": 42,
      "root_hash": "3b1c0c89be14e92f4d9465911b2ac28ce5588f1616994b7a2e94da50d6e22fa4",
      "account_blocks": [
        {
          "account_id": "000000000000000000000000000000000000000000000000000000000000ffab",
          "old_hash": "0000000000000000000000000000000000000000000000000000000000000001",
          "new_hash": "0000000000000000000000000000000000000000000000000000000000000002",
          "transactions": [
            {
              "now": 1000,
              "in_msg": {
                "kind": "ext_in",
                "dst": "0:000000000000000000000000000000000000000000000000000000000000ffab",
                "body_hex": "deadbeef"
              }
            }
          ]
        }
      ]
    }
  ]
}`

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFixtureSource_ReplaysInOrderThenExhausts(t *testing.T) {
	path := writeFixture(t, fixtureJSON)
	src, err := NewFixtureSource(path)
	if err != nil {
		t.Fatalf("NewFixtureSource: %v", err)
	}
	defer src.Close()

	ev, err := src.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ev.BlockID.SeqNo != 42 {
		t.Fatalf("SeqNo = %d, want 42", ev.BlockID.SeqNo)
	}
	if len(ev.Block.AccountBlocks) != 1 {
		t.Fatalf("len(AccountBlocks) = %d, want 1", len(ev.Block.AccountBlocks))
	}
	if len(ev.Block.AccountBlocks[0].Transaction) != 1 {
		t.Fatalf("len(Transaction) = %d, want 1", len(ev.Block.AccountBlocks[0].Transaction))
	}
	tx := ev.Block.AccountBlocks[0].Transaction[0]
	if tx.Now != 1000 {
		t.Fatalf("tx.Now = %d, want 1000", tx.Now)
	}
	if tx.InMsg == nil || tx.InMsg.Header.Kind != types.HeaderExternalInbound {
		t.Fatalf("in_msg header kind = %v, want HeaderExternalInbound", tx.InMsg)
	}
	if tx.InMsg.Body == nil || len(tx.InMsg.Body.Data) != 4 {
		t.Fatalf("in_msg body = %v, want 4 decoded bytes from body_hex", tx.InMsg.Body)
	}

	if _, err := src.Next(context.Background()); !errors.Is(err, ErrExhausted) {
		t.Fatalf("Next after last block: err = %v, want ErrExhausted", err)
	}
}

func TestFixtureSource_SynthesizesMissingHashes(t *testing.T) {
	body := `{"blocks":[{"workchain":0,"seq_no":1,"account_blocks":[]}]}`
	path := writeFixture(t, body)
	src, err := NewFixtureSource(path)
	if err != nil {
		t.Fatalf("NewFixtureSource: %v", err)
	}

	ev, err := src.Next(context.Background())
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ev.BlockID.RootHash.IsZero() {
		t.Fatalf("expected a synthesized non-zero root hash")
	}
}

func TestFixtureSource_UnknownMessageKindRejected(t *testing.T) {
	body := `{"blocks":[{"workchain":0,"seq_no":1,"account_blocks":[{"account_id":"","transactions":[{"now":1,"in_msg":{"kind":"bogus"}}]}]}]}`
	path := writeFixture(t, body)
	if _, err := NewFixtureSource(path); err == nil {
		t.Fatalf("expected error for unknown message kind")
	}
}

func TestFixtureSource_MissingFileRejected(t *testing.T) {
	if _, err := NewFixtureSource(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing fixture file")
	}
}
