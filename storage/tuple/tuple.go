package tuple

import (
	"strings"

	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/table/schema"
	"github.com/medakadb/medakadb/types"
)

/**
 * Tuple format:
 * ------------------------------------------------------------------
 * | FIXED-WIDTH COLUMN 0 | FIXED-WIDTH COLUMN 1 | ... | COLUMN N-1 |
 * ------------------------------------------------------------------
 * Every column serializes at the fixed width its type declares, so a
 * tuple of a given schema always occupies schema.Length() bytes.
 */
type Tuple struct {
	rid  *types.RID
	data []byte
}

// NewTuple creates a zeroed tuple of the schema's fixed size. Columns can
// be assigned one by one with SetValue before the tuple is placed on a page.
func NewTuple(schema_ *schema.Schema) *Tuple {
	return &Tuple{nil, make([]byte, schema_.Length())}
}

// NewTupleFromSchema creates a tuple with every column serialized from the
// given values, in schema order.
func NewTupleFromSchema(values []types.Value, schema_ *schema.Schema) *Tuple {
	tuple_ := NewTuple(schema_)
	for i := uint32(0); i < schema_.GetColumnCount(); i++ {
		tuple_.Copy(schema_.GetColumn(i).GetOffset(), values[i].Serialize())
	}
	return tuple_
}

// NewTupleFromBytes wraps raw slot bytes decoded from a page.
func NewTupleFromBytes(data []byte) *Tuple {
	return &Tuple{nil, data}
}

func (t *Tuple) GetValue(schema_ *schema.Schema, colIndex uint32) types.Value {
	column_ := schema_.GetColumn(colIndex)
	value := types.NewValueFromBytes(t.data[column_.GetOffset():], column_.GetType())
	if value == nil {
		panic("value deserialization failed")
	}
	return *value
}

// SetValue overwrites one column in place. The value's type must match the
// column's declared type.
func (t *Tuple) SetValue(schema_ *schema.Schema, colIndex uint32, value types.Value) error {
	if colIndex >= schema_.GetColumnCount() {
		return errors.ErrInvalidArgument
	}
	column_ := schema_.GetColumn(colIndex)
	if column_.GetType() != value.ValueType() {
		return errors.ErrInvalidArgument
	}
	t.Copy(column_.GetOffset(), value.Serialize())
	return nil
}

func (t *Tuple) Size() uint32 {
	return uint32(len(t.data))
}

func (t *Tuple) Data() []byte {
	return t.data
}

func (t *Tuple) GetRID() *types.RID {
	return t.rid
}

func (t *Tuple) SetRID(rid *types.RID) {
	t.rid = rid
}

func (t *Tuple) Copy(offset uint32, data []byte) {
	copy(t.data[offset:], data)
}

func (t *Tuple) String(schema_ *schema.Schema) string {
	parts := make([]string, 0, schema_.GetColumnCount())
	for i := uint32(0); i < schema_.GetColumnCount(); i++ {
		parts = append(parts, t.GetValue(schema_, i).String())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
