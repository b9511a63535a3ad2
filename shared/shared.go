package shared

import (
	"carrental/shared/dto"
	"reflect"
	"slices"
)

// UpdateColumns returns every column the record owns (no joined or computed field),
// including zero values, except the skipped ones.
func UpdateColumns(record any, skip ...string) map[string]any {
	val := reflect.ValueOf(record)
	typ := reflect.TypeOf(record)

	columns := make(map[string]any)

	for index := range val.NumField() {
		field := typ.Field(index)

		name := field.Tag.Get("db")
		if name == "" || field.Tag.Get("table") != "" || field.Tag.Get("expr") != "" {
			continue
		}

		if slices.Contains(skip, name) {
			continue
		}

		columns[name] = val.Field(index).Interface()
	}

	return columns
}

func FilterByID(id int64, fieldID, table string) dto.FilterGroup {
	return dto.Eq(table, fieldID, id)
}
