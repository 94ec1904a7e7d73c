package schema

import (
	"database/sql/driver"
	"reflect"
)

// Columns returns column names of a model in field order,
// as given by `db` tags.
func Columns(model any) []string {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	var res []string
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" {
			res = append(res, tag)
		}
	}
	return res
}

// Values returns field values of a model in the order of Columns.
// Nullable fields are returned as their driver values, so nil
// stands for NULL.
func Values(model any) []any {
	v := reflect.ValueOf(model)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	t := v.Type()

	var res []any
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("db") == "" {
			continue
		}
		f := v.Field(i).Interface()
		if val, ok := f.(driver.Valuer); ok {
			dv, err := val.Value()
			if err == nil {
				f = dv
			}
		}
		res = append(res, f)
	}
	return res
}
