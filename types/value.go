package types

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/medakadb/medakadb/common"
)

// Value is a tagged column value. Fields are held by value, not by
// pointer, so two Values compare equal iff they have the same type tag
// and payload. Values are used as aggregation group keys.
type Value struct {
	valueType TypeID
	integer   int32
	varchar   string
}

func NewInteger(value int32) Value {
	return Value{valueType: Integer, integer: value}
}

// NewVarchar truncates the payload to VarcharMaxSize bytes. The on-page
// representation has a fixed maximum width, so longer strings cannot
// round-trip and are cut at construction.
func NewVarchar(value string) Value {
	if len(value) > common.VarcharMaxSize {
		value = value[:common.VarcharMaxSize]
	}
	return Value{valueType: Varchar, varchar: value}
}

func (v Value) ValueType() TypeID {
	return v.valueType
}

func (v Value) ToInteger() int32 {
	return v.integer
}

func (v Value) ToVarchar() string {
	return v.varchar
}

func (v Value) CompareEquals(right Value) bool {
	if v.valueType != right.valueType {
		return false
	}
	switch v.valueType {
	case Integer:
		return v.integer == right.integer
	case Varchar:
		return v.varchar == right.varchar
	}
	return false
}

func (v Value) CompareNotEquals(right Value) bool {
	return !v.CompareEquals(right)
}

func (v Value) CompareGreaterThan(right Value) bool {
	switch v.valueType {
	case Integer:
		return v.integer > right.integer
	case Varchar:
		return v.varchar > right.varchar
	}
	return false
}

func (v Value) CompareLessThan(right Value) bool {
	switch v.valueType {
	case Integer:
		return v.integer < right.integer
	case Varchar:
		return v.varchar < right.varchar
	}
	return false
}

func (v Value) CompareGreaterThanOrEqual(right Value) bool {
	return !v.CompareLessThan(right)
}

func (v Value) CompareLessThanOrEqual(right Value) bool {
	return !v.CompareGreaterThan(right)
}

// Size returns the serialized width of the value.
func (v Value) Size() uint32 {
	return v.valueType.Size()
}

// Serialize encodes the value at its fixed width.
// Integer: 4 byte little-endian int32.
// Varchar: 4 byte little-endian length followed by the payload,
// zero-padded to VarcharMaxSize bytes.
func (v Value) Serialize() []byte {
	switch v.valueType {
	case Integer:
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.LittleEndian, v.integer)
		return buf.Bytes()
	case Varchar:
		buf := new(bytes.Buffer)
		binary.Write(buf, binary.LittleEndian, int32(len(v.varchar)))
		payload := make([]byte, common.VarcharMaxSize)
		copy(payload, v.varchar)
		buf.Write(payload)
		return buf.Bytes()
	}
	panic("invalid type id of the value")
}

// NewValueFromBytes decodes a value of the given type from the head of data.
func NewValueFromBytes(data []byte, valueType TypeID) *Value {
	switch valueType {
	case Integer:
		var v int32
		binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &v)
		ret := NewInteger(v)
		return &ret
	case Varchar:
		var length int32
		binary.Read(bytes.NewBuffer(data), binary.LittleEndian, &length)
		if length < 0 || length > common.VarcharMaxSize {
			return nil
		}
		ret := NewVarchar(string(data[common.IntColumnSize : common.IntColumnSize+length]))
		return &ret
	}
	return nil
}

func (v Value) String() string {
	switch v.valueType {
	case Integer:
		return fmt.Sprintf("%d", v.integer)
	case Varchar:
		return v.varchar
	default:
		return "invalid"
	}
}
