package utils

import (
	"reflect"
	"strings"
)

// JSONTagName для validator.RegisterTagNameFunc: поля в ошибках называются как в json
func JSONTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}
