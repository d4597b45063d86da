// Package utils contains small helper functions used across the project.
//
// These are usually generic helpers that don't belong to a specific domain.
package utils

import (
	"encoding/json"
	"io"
)

// WriteJSON writes v to w as tab-indented JSON followed by a newline.
//
// Values json cannot encode (channels, funcs, cycles) return the
// marshalling error and nothing is written.
func WriteJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
