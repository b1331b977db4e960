package types

import "github.com/medakadb/medakadb/common"

type TypeID int32

const (
	Invalid TypeID = iota
	Integer
	Varchar
)

// Size returns the number of bytes a serialized value of this type
// occupies inside a tuple slot. Every type serializes to a fixed width.
func (t TypeID) Size() uint32 {
	switch t {
	case Integer:
		return common.IntColumnSize
	case Varchar:
		// 4 byte length prefix + zero-padded payload
		return common.IntColumnSize + common.VarcharMaxSize
	default:
		panic("invalid type id")
	}
}

func (t TypeID) String() string {
	switch t {
	case Integer:
		return "INTEGER"
	case Varchar:
		return "VARCHAR"
	default:
		return "INVALID"
	}
}
