package executors

import (
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/storage/tuple"
	"github.com/medakadb/medakadb/types"
)

type ComparisonType int32

const (
	Equal ComparisonType = iota
	NotEqual
	GreaterThan
	GreaterThanOrEqual
	LessThan
	LessThanOrEqual
)

// Predicate compares one column of a tuple against a constant operand.
type Predicate struct {
	colIndex    uint32
	compareType ComparisonType
	operand     types.Value
}

func NewPredicate(colIndex uint32, compareType ComparisonType, operand types.Value) *Predicate {
	return &Predicate{colIndex, compareType, operand}
}

// Filter reports whether the tuple satisfies the predicate.
func (p *Predicate) Filter(t *tuple.Tuple, schema_ *schema.Schema) bool {
	value := t.GetValue(schema_, p.colIndex)
	switch p.compareType {
	case Equal:
		return value.CompareEquals(p.operand)
	case NotEqual:
		return value.CompareNotEquals(p.operand)
	case GreaterThan:
		return value.CompareGreaterThan(p.operand)
	case GreaterThanOrEqual:
		return value.CompareGreaterThanOrEqual(p.operand)
	case LessThan:
		return value.CompareLessThan(p.operand)
	case LessThanOrEqual:
		return value.CompareLessThanOrEqual(p.operand)
	}
	return false
}
