package report

import (
	"encoding/json"
	"io"
)

// RenderJSON writes c to w as an indented JSON document.
func RenderJSON(w io.Writer, c *Comparison) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
