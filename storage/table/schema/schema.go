package schema

import (
	"strings"

	"github.com/medakadb/medakadb/common"
	"github.com/medakadb/medakadb/errors"
	"github.com/medakadb/medakadb/storage/table/column"
	"github.com/medakadb/medakadb/types"
)

// Schema describes the layout of a tuple: an ordered sequence of columns,
// each with a fixed serialized width. Column offsets are assigned at
// construction time.
type Schema struct {
	length  uint32 // number of bytes used by one tuple of this schema
	columns []*column.Column
}

// NewSchema builds a schema from columns. A schema has at least one column.
func NewSchema(columns []*column.Column) *Schema {
	common.MD_Assert(len(columns) > 0, "schema must have at least one column")

	schema := &Schema{}
	var currentOffset uint32
	for i := 0; i < len(columns); i++ {
		col := columns[i]
		col.SetOffset(currentOffset)
		currentOffset += col.FixedLength()
		schema.columns = append(schema.columns, col)
	}
	schema.length = currentOffset
	return schema
}

// NewSchemaFromTypeList builds a schema from parallel type and name lists.
// Name entries may be empty. Mismatched lengths and empty lists are
// construction-time errors, not deferred ones.
func NewSchemaFromTypeList(typeIDs []types.TypeID, names []string) (*Schema, error) {
	if len(typeIDs) == 0 {
		return nil, errors.ErrInvalidArgument
	}
	if len(typeIDs) != len(names) {
		return nil, errors.ErrInvalidArgument
	}
	columns := make([]*column.Column, 0, len(typeIDs))
	for i, tid := range typeIDs {
		columns = append(columns, column.NewColumn(names[i], tid))
	}
	return NewSchema(columns), nil
}

func (s *Schema) GetColumn(colIndex uint32) *column.Column {
	common.MD_Assert(colIndex < s.GetColumnCount(), "column index out of range")
	return s.columns[colIndex]
}

func (s *Schema) GetColumnCount() uint32 {
	return uint32(len(s.columns))
}

// Length returns the number of bytes used by one tuple of this schema.
func (s *Schema) Length() uint32 {
	return s.length
}

// GetColIndex returns the index of the first column with the given name.
func (s *Schema) GetColIndex(columnName string) (uint32, error) {
	for i := uint32(0); i < s.GetColumnCount(); i++ {
		if s.columns[i].GetColumnName() == columnName {
			return i, nil
		}
	}
	return 0, errors.ErrNotFound
}

func (s *Schema) GetColumns() []*column.Column {
	return s.columns
}

// Merge concatenates two schemas, the columns of a first. Offsets are
// recomputed for the combined layout.
func Merge(a *Schema, b *Schema) *Schema {
	merged := make([]*column.Column, 0, a.GetColumnCount()+b.GetColumnCount())
	for _, col := range a.columns {
		merged = append(merged, column.NewColumn(col.GetColumnName(), col.GetType()))
	}
	for _, col := range b.columns {
		merged = append(merged, column.NewColumn(col.GetColumnName(), col.GetType()))
	}
	return NewSchema(merged)
}

// Equals compares only the type sequences. Column names do not participate.
func (s *Schema) Equals(other *Schema) bool {
	if other == nil {
		return false
	}
	if s.GetColumnCount() != other.GetColumnCount() {
		return false
	}
	for i := uint32(0); i < s.GetColumnCount(); i++ {
		if s.columns[i].GetType() != other.columns[i].GetType() {
			return false
		}
	}
	return true
}

func (s *Schema) String() string {
	parts := make([]string, 0, len(s.columns))
	for _, col := range s.columns {
		parts = append(parts, col.String())
	}
	return strings.Join(parts, ",")
}
