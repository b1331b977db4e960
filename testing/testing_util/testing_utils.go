package testing_util

import (
	"github.com/medakadb/medakadb/types"
)

// GetValue converts a plain Go value into a column value.
func GetValue(data interface{}) (value types.Value) {
	switch v := data.(type) {
	case int:
		value = types.NewInteger(int32(v))
	case int32:
		value = types.NewInteger(v)
	case string:
		value = types.NewVarchar(v)
	case types.Value:
		value = v
	}
	return
}

// GetValueType reports the column type a plain Go value maps to.
func GetValueType(data interface{}) types.TypeID {
	switch v := data.(type) {
	case int, int32:
		return types.Integer
	case string:
		return types.Varchar
	case types.Value:
		return v.ValueType()
	}
	panic("not implemented")
}
