package executors

import (
	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
)

const ErrAlreadyOpen = errors.Error("operator is already open")
const ErrNotOpen = errors.Error("operator is not open")

// OpIterator is the pull contract every operator and the heap file scan
// satisfy: Closed -> Open -> Closed, with a buffered lookahead tuple while
// open.
//
// HasNext computes and buffers the next result when none is buffered.
// Next fails when nothing is buffered and never advances state in that
// case. Rewind resets position without a close/open cycle. GetTupleDesc is
// usable while closed.
type OpIterator interface {
	Open() error
	HasNext() (bool, error)
	Next() (*tuple.Tuple, error)
	Rewind() error
	Close()
	GetTupleDesc() *schema.Schema
}

// executorImpl is the narrow contract a concrete operator implements: a
// plain "compute one more or signal exhaustion" function plus lifecycle
// hooks for its children. The buffering protocol lives in Operator, once,
// so no operator carries its own peek state.
type executorImpl interface {
	// fetchNext returns the next result tuple, or nil at exhaustion.
	fetchNext() (*tuple.Tuple, error)
	open() error
	rewind() error
	close()
	GetTupleDesc() *schema.Schema
}

// Operator implements the OpIterator lifecycle generically over an
// executorImpl. Concrete operators embed it and pass themselves in.
type Operator struct {
	impl      executorImpl
	opened    bool
	nextTuple *tuple.Tuple
}

func NewOperator(impl executorImpl) Operator {
	return Operator{impl: impl}
}

func (o *Operator) Open() error {
	if o.opened {
		return ErrAlreadyOpen
	}
	if err := o.impl.open(); err != nil {
		return err
	}
	o.opened = true
	return nil
}

func (o *Operator) HasNext() (bool, error) {
	if !o.opened {
		return false, nil
	}
	if o.nextTuple != nil {
		return true, nil
	}
	t, err := o.impl.fetchNext()
	if err != nil {
		return false, err
	}
	o.nextTuple = t
	return t != nil, nil
}

func (o *Operator) Next() (*tuple.Tuple, error) {
	hasNext, err := o.HasNext()
	if err != nil {
		return nil, err
	}
	if !hasNext {
		return nil, errors.ErrNotFound
	}
	t := o.nextTuple
	o.nextTuple = nil
	return t, nil
}

func (o *Operator) Rewind() error {
	if !o.opened {
		return ErrNotOpen
	}
	o.nextTuple = nil
	return o.impl.rewind()
}

func (o *Operator) Close() {
	if !o.opened {
		return
	}
	o.impl.close()
	o.nextTuple = nil
	o.opened = false
}

func (o *Operator) GetTupleDesc() *schema.Schema {
	return o.impl.GetTupleDesc()
}
