package entities

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// FieldErrors сопоставляет имя поля формы с сообщением об ошибке
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := slices.Sorted(maps.Keys(fe))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, fe[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
