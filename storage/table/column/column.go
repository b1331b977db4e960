package column

import (
	"fmt"

	"github.com/medakadb/medakadb/types"
)

type Column struct {
	columnName   string // may be empty for anonymous columns
	columnType   types.TypeID
	fixedLength  uint32 // serialized size of the column inside a tuple slot
	columnOffset uint32 // column offset in the tuple, set by the schema
}

func NewColumn(name string, columnType types.TypeID) *Column {
	return &Column{name, columnType, columnType.Size(), 0}
}

func (c *Column) GetType() types.TypeID {
	return c.columnType
}

func (c *Column) GetColumnName() string {
	return c.columnName
}

func (c *Column) GetOffset() uint32 {
	return c.columnOffset
}

func (c *Column) SetOffset(offset uint32) {
	c.columnOffset = offset
}

func (c *Column) FixedLength() uint32 {
	return c.fixedLength
}

func (c *Column) String() string {
	return fmt.Sprintf("%s(%s)", c.columnName, c.columnType)
}
