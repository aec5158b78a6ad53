package cmdhelper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Fprintf writes one line of command output to w, appending the newline
// when format lacks one. The write error is dropped.
func Fprintf(w io.Writer, format string, args ...any) {
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	_, _ = fmt.Fprintf(w, format, args...)
}

// PrettifyJSON renders data as indented JSON. Byte and string inputs are
// reindented as they are, anything else is marshalled first.
func PrettifyJSON(data any) ([]byte, error) {
	switch v := data.(type) {
	case []byte:
		return reindentJSON(v)
	case string:
		return reindentJSON([]byte(v))
	default:
		return json.MarshalIndent(data, "", "  ")
	}
}

func reindentJSON(data []byte) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to prettify: %w", err)
	}
	return buf.Bytes(), nil
}
