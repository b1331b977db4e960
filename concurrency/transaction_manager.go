package concurrency

import (
	"sync/atomic"

	"github.com/medakadb/medakadb/types"
)

// TransactionManager hands out transaction identities. Commit and Abort only
// flip the observable state; there is no rollback at this layer.
type TransactionManager struct {
	nextTxnID int32
}

func NewTransactionManager() *TransactionManager {
	return &TransactionManager{}
}

func (tm *TransactionManager) Begin() *Transaction {
	id := atomic.AddInt32(&tm.nextTxnID, 1)
	return NewTransaction(types.TxnID(id))
}

func (tm *TransactionManager) Commit(txn *Transaction) {
	txn.SetState(COMMITTED)
}

func (tm *TransactionManager) Abort(txn *Transaction) {
	txn.SetState(ABORTED)
}
