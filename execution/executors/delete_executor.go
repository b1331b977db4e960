package executors

import (
	"github.com/medakadb/medakadb/common"
	"github.com/medakadb/medakadb/concurrency"
	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/buffer"
	"github.com/medakadb/medakadb/storage/table/column"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/types"
)

// DeleteExecutor drains its child and requests a delete through the buffer
// pool for every child tuple. Draining is itself the side effect: the
// operator emits exactly one tuple holding the count of successful deletes
// and is exhausted afterwards. A delete that fails for one tuple is logged
// and skipped; the count reflects only successes.
type DeleteExecutor struct {
	Operator
	child     OpIterator
	txn       *concurrency.Transaction
	bpm       *buffer.BufferPoolManager
	outSchema *schema.Schema
	done      bool
}

func NewDeleteExecutor(child OpIterator, txn *concurrency.Transaction, bpm *buffer.BufferPoolManager) *DeleteExecutor {
	outSchema := schema.NewSchema([]*column.Column{
		column.NewColumn("deleted_count", types.Integer),
	})
	e := &DeleteExecutor{child: child, txn: txn, bpm: bpm, outSchema: outSchema}
	e.Operator = NewOperator(e)
	return e
}

func (e *DeleteExecutor) fetchNext() (*tuple.Tuple, error) {
	if e.done {
		return nil, nil
	}

	deleted := int32(0)
	for {
		hasNext, err := e.child.HasNext()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			break
		}
		t, err := e.child.Next()
		if err != nil {
			return nil, err
		}

		if err := e.bpm.DeleteTuple(e.txn, t); err != nil {
			if err == errors.ErrTxnAborted {
				return nil, err
			}
			common.MdPrintf(common.WARN, "delete of tuple %v failed and skipped: %v\n", t.GetRID(), err)
			continue
		}
		deleted++
	}

	e.done = true
	return tuple.NewTupleFromSchema([]types.Value{types.NewInteger(deleted)}, e.outSchema), nil
}

func (e *DeleteExecutor) open() error {
	e.done = false
	return e.child.Open()
}

func (e *DeleteExecutor) rewind() error {
	e.done = false
	return e.child.Rewind()
}

func (e *DeleteExecutor) close() {
	e.child.Close()
}

func (e *DeleteExecutor) GetTupleDesc() *schema.Schema {
	return e.outSchema
}
