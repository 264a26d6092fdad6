// Package output renders extraction results as JSON.
package output

import (
	"encoding/json"
)

// ToJSON serializes v, indented with two spaces when pretty is set.
func ToJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// TablesToJSON renders a table list in the {"tables_list": [...]} shape.
func TablesToJSON(names []string, pretty bool) ([]byte, error) {
	if names == nil {
		names = []string{}
	}
	return ToJSON(map[string][]string{"tables_list": names}, pretty)
}
