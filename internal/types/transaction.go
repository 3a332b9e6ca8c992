package types

// Transaction is the opaque decoded transaction record the filter engine
// operates on.
type Transaction struct {
	Now       uint32
	InMsg     *Message
	OutMsgs   []*Message
	AccountID AccountID
	OldHash   Hash256
	NewHash   Hash256
	hash      Hash256
}

// NewTransaction constructs a Transaction and memoizes its representation
// hash from the supplied cell (mirrors the codec handing back an
// already-hashed record).
func NewTransaction(cell *Cell, now uint32, inMsg *Message, outMsgs []*Message, accountID AccountID, oldHash, newHash Hash256) *Transaction {
	return &Transaction{
		Now:       now,
		InMsg:     inMsg,
		OutMsgs:   outMsgs,
		AccountID: accountID,
		OldHash:   oldHash,
		NewHash:   newHash,
		hash:      cell.Hash(),
	}
}

// Hash returns the transaction's representation hash, or the zero hash if
// unavailable.
func (tx *Transaction) Hash() Hash256 {
	if tx == nil {
		return ZeroHash256
	}
	return tx.hash
}
