package executors

import (
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
)

// FilterExecutor pulls from its child until the predicate accepts a tuple
// or the child is exhausted. Schema passes through unchanged.
type FilterExecutor struct {
	Operator
	child     OpIterator
	predicate *Predicate
}

func NewFilterExecutor(child OpIterator, predicate *Predicate) *FilterExecutor {
	e := &FilterExecutor{child: child, predicate: predicate}
	e.Operator = NewOperator(e)
	return e
}

func (e *FilterExecutor) fetchNext() (*tuple.Tuple, error) {
	for {
		hasNext, err := e.child.HasNext()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			return nil, nil
		}
		t, err := e.child.Next()
		if err != nil {
			return nil, err
		}
		if e.predicate.Filter(t, e.child.GetTupleDesc()) {
			return t, nil
		}
	}
}

func (e *FilterExecutor) open() error {
	return e.child.Open()
}

func (e *FilterExecutor) rewind() error {
	return e.child.Rewind()
}

func (e *FilterExecutor) close() {
	e.child.Close()
}

func (e *FilterExecutor) GetTupleDesc() *schema.Schema {
	return e.child.GetTupleDesc()
}
