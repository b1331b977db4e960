package concurrency

import (
	"github.com/medakadb/medakadb/types"
)

/**
 * Transaction states:
 *
 * GROWING -> COMMITTED
 *    |______ ABORTED
 *
 * Locking, rollback and deadlock handling belong to the external
 * transaction/lock manager. This layer only carries the identity and the
 * state the storage core must observe and propagate.
 */

type TransactionState int32

const (
	GROWING TransactionState = iota
	COMMITTED
	ABORTED
)

type Transaction struct {
	txnID types.TxnID
	state TransactionState
}

func NewTransaction(txnID types.TxnID) *Transaction {
	return &Transaction{txnID, GROWING}
}

func (t *Transaction) GetTransactionId() types.TxnID {
	return t.txnID
}

func (t *Transaction) GetState() TransactionState {
	return t.state
}

func (t *Transaction) SetState(state TransactionState) {
	t.state = state
}

func (t *Transaction) IsAborted() bool {
	return t.state == ABORTED
}
