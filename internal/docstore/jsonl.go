package docstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// fileSpec binds a collection to its JSONL file.
type fileSpec struct {
	name string
	load func(dataDir string, st *state) error
	save func(dataDir string, st *state) error
}

func specFor[E any](k kind[E], pick func(*state) **collection[E]) fileSpec {
	return fileSpec{
		name: k.name,
		load: func(dataDir string, st *state) error {
			path := jsonlPath(dataDir, k.name)
			records, err := readJSONL(path)
			if errors.Is(err, os.ErrNotExist) {
				return writeJSONL(path, nil)
			}
			if err != nil {
				return err
			}
			c := *pick(st)
			for _, rec := range records {
				row := new(E)
				if err := json.Unmarshal(rec, row); err != nil {
					continue
				}
				if k.id(row) == "" {
					continue
				}
				if k.norm != nil {
					k.norm(row)
				}
				c.put(k, row)
			}
			return nil
		},
		save: func(dataDir string, st *state) error {
			c := *pick(st)
			ids := make([]string, 0, len(c.rows))
			for id := range c.rows {
				ids = append(ids, id)
			}
			slices.SortFunc(ids, strings.Compare)

			records := make([]json.RawMessage, 0, len(ids))
			for _, id := range ids {
				data, err := json.Marshal(c.rows[id])
				if err != nil {
					return fmt.Errorf("marshaling %s %s: %w", k.name, id, err)
				}
				records = append(records, data)
			}
			return writeJSONL(jsonlPath(dataDir, k.name), records)
		},
	}
}

func jsonlPath(dataDir, name string) string {
	return filepath.Join(dataDir, name+".jsonl")
}

// readJSONL reads a JSONL file and returns each non-empty, parseable line
// as a json.RawMessage. Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, json.RawMessage(cp))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically writes records to path: temp file, fsync, rename.
func writeJSONL(path string, records []json.RawMessage) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	fail := func(step string, err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%s: %w", step, err)
	}

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fail("writing record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fail("writing newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fail("flushing buffer", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("syncing temp file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
