package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/storyboard/pkg/types"
)

// codecVersion tags every envelope written by this build.
const codecVersion = 1

// envelope wraps a nested value stored in a TEXT column.
type envelope struct {
	V int             `json:"v"`
	D json.RawMessage `json:"d"`
}

// decoders maps an envelope version to the function that reads its payload.
// Adding a version means adding an entry here, never rewriting rows.
var decoders = map[int]func(raw json.RawMessage, dst any) error{
	1: func(raw json.RawMessage, dst any) error {
		return json.Unmarshal(raw, dst)
	},
}

// encodeValue serializes v into a versioned envelope.
func encodeValue(v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding value: %w", err)
	}
	out, err := json.Marshal(envelope{V: codecVersion, D: payload})
	if err != nil {
		return "", fmt.Errorf("encoding envelope: %w", err)
	}
	return string(out), nil
}

// decodeValue reads an envelope into dst. An empty column leaves dst at its
// zero value.
func decodeValue(s string, dst any) error {
	if s == "" {
		return nil
	}
	var env envelope
	if err := json.Unmarshal([]byte(s), &env); err != nil {
		return fmt.Errorf("decoding envelope: %w", err)
	}
	decode, ok := decoders[env.V]
	if !ok {
		return fmt.Errorf("decoding envelope v%d: %w", env.V, types.ErrSchemaVersion)
	}
	if err := decode(env.D, dst); err != nil {
		return fmt.Errorf("decoding envelope v%d: %w", env.V, err)
	}
	return nil
}

// timeLayout is fixed-width so that TEXT comparison orders chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time %q: %w", s, err)
	}
	return t, nil
}

// fields collects column values for an INSERT or UPDATE, remembering the
// first encoding failure so call sites stay linear.
type fields struct {
	cols []string
	args []any
	err  error
}

func (f *fields) set(col string, v any) {
	f.cols = append(f.cols, col)
	f.args = append(f.args, v)
}

func (f *fields) setJSON(col string, v any) {
	if f.err != nil {
		return
	}
	s, err := encodeValue(v)
	if err != nil {
		f.err = fmt.Errorf("column %s: %w", col, err)
		return
	}
	f.set(col, s)
}

func (f *fields) setTime(col string, t time.Time) {
	f.set(col, formatTime(t))
}

// nullString maps the empty string to SQL NULL.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// decoder mirrors fields for the read side: it decodes envelope and time
// columns, keeping the first failure.
type decoder struct {
	err error
}

func (d *decoder) json(col, src string, dst any) {
	if d.err != nil {
		return
	}
	if err := decodeValue(src, dst); err != nil {
		d.err = fmt.Errorf("column %s: %w", col, err)
	}
}

func (d *decoder) time(col, src string, dst *time.Time) {
	if d.err != nil {
		return
	}
	t, err := parseTime(src)
	if err != nil {
		d.err = fmt.Errorf("column %s: %w", col, err)
		return
	}
	*dst = t
}
