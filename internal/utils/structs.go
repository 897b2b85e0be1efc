package utils

import (
	"reflect"
)

var ColumnTag = "db"

func StructTagValues(input any) []string {

	targetValue := reflect.ValueOf(input)
	if targetValue.Kind() == reflect.Ptr {
		targetValue = targetValue.Elem()
	}

	if targetValue.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	targetType := targetValue.Type()

	result := make([]string, 0, targetValue.NumField())

	for i := 0; i < targetValue.NumField(); i++ {

		if targetType.Field(i).PkgPath != "" {
			continue
		}

		tagValue := targetType.Field(i).Tag.Get(ColumnTag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		result = append(result, tagValue)

	}

	return result

}

func StructToMap(input any) map[string]any {

	result := make(map[string]any)

	itemValue := reflect.ValueOf(input)
	if itemValue.Kind() == reflect.Ptr {
		itemValue = itemValue.Elem()
	}

	if itemValue.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	itemType := itemValue.Type()

	for i := 0; i < itemValue.NumField(); i++ {

		if itemType.Field(i).PkgPath != "" {
			continue
		}

		tagValue := itemType.Field(i).Tag.Get(ColumnTag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		result[tagValue] = itemValue.Field(i).Interface()

	}

	return result

}

// PatchToMap collects the non-nil pointer fields of a patch struct into a
// column map, dereferenced. Non-pointer and untagged fields are ignored.
func PatchToMap(patch any) map[string]any {

	result := make(map[string]any)

	patchValue := reflect.ValueOf(patch)
	if patchValue.Kind() == reflect.Ptr {
		if patchValue.IsNil() {
			return result
		}
		patchValue = patchValue.Elem()
	}

	if patchValue.Kind() != reflect.Struct {
		panic("patch must be a pointer to a struct or a struct")
	}

	patchType := patchValue.Type()

	for i := 0; i < patchValue.NumField(); i++ {
		field := patchType.Field(i)
		if field.PkgPath != "" {
			continue
		}

		tagValue := field.Tag.Get(ColumnTag)
		if tagValue == "" || tagValue == "-" {
			continue
		}

		value := patchValue.Field(i)
		if value.Kind() != reflect.Ptr || value.IsNil() {
			continue
		}

		result[tagValue] = value.Elem().Interface()
	}

	return result
}
