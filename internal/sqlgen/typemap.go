// Package sqlgen maps datapackage field schemas to PostgreSQL column
// definitions.
package sqlgen

import (
	"strings"

	"github.com/datasets-br/try-psql/internal/datapackage"
)

// StorageType is a PostgreSQL column type.
type StorageType string

// Storage types produced by MapType.
const (
	TypeInteger StorageType = "integer"
	TypeBoolean StorageType = "boolean"
	TypeNumeric StorageType = "numeric"
	TypeFloat   StorageType = "float"
	TypeText    StorageType = "text"
)

// typeMap is keyed by lower-cased descriptor type tags.
var typeMap = map[string]StorageType{
	"integer": TypeInteger,
	"boolean": TypeBoolean,
	"number":  TypeNumeric,
	"float":   TypeFloat,
}

// MapType returns the storage type for a descriptor type tag. Matching is
// case-insensitive; unknown tags (string, date, year, ...) map to text.
func MapType(tag string) StorageType {
	if t, ok := typeMap[strings.ToLower(tag)]; ok {
		return t
	}
	return TypeText
}

// Column is a column definition derived from a descriptor field.
type Column struct {
	Name string
	Type StorageType
}

// Definition renders the column as it appears inside CREATE TABLE, quoting
// the name when it is not a plain identifier.
func (c Column) Definition() string {
	return QuoteIdentifier(c.Name) + " " + string(c.Type)
}

// ColumnFor converts one descriptor field into a column definition.
func ColumnFor(f datapackage.Field) Column {
	return Column{
		Name: NormalizeName(f.Name),
		Type: MapType(f.Type),
	}
}

// Columns converts fields in schema order.
func Columns(fields []datapackage.Field) []Column {
	cols := make([]Column, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, ColumnFor(f))
	}
	return cols
}
