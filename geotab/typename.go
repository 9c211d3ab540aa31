package geotab

import (
	"reflect"
	"strings"
)

const (
	datumSuffix = "Datum"
	dataSuffix  = "Data"
	groupName   = "Group"
)

// groupedTypeNames lists entity types the API represents as Group nodes
// rather than as types of their own.
var groupedTypeNames = map[string]struct{}{
	"Defect":     {},
	"DefectList": {},
}

// ResolveTypeName maps a bare entity type name to the type name string the
// API expects. It is pure and deterministic:
//   - names the API stores as Group nodes resolve to "Group"
//   - a "Datum" suffix is rewritten to "Data" (StatusDatum -> StatusData)
//   - every other name passes through unchanged
func ResolveTypeName(name string) string {
	if _, isGrouped := groupedTypeNames[name]; isGrouped {
		return groupName
	}

	if strings.HasSuffix(name, datumSuffix) {
		return strings.TrimSuffix(name, datumSuffix) + dataSuffix
	}

	return name
}

// TypeNameFor resolves the API type name for a Go entity type from its bare
// type name, applying the same rewrites as ResolveTypeName.
func TypeNameFor[T any]() string {
	entityType := reflect.TypeOf((*T)(nil)).Elem()

	for entityType.Kind() == reflect.Pointer {
		entityType = entityType.Elem()
	}

	return ResolveTypeName(entityType.Name())
}
