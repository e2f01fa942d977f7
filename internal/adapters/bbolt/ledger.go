// Package bbolt implements ports.RenderLedger using bbolt (embedded B+ tree).
// A single "figures" bucket maps each output path to a JSON entry holding the
// render settings and the fingerprints of the input files it was rendered from.
package bbolt

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketFigures = []byte("figures")

// fingerprint identifies the state of an input file.
type fingerprint struct {
	Path    string `json:"path"`
	Size    int64  `json:"size"`
	ModTime int64  `json:"mod_time"`
}

// entry is the stored value of one figure.
type entry struct {
	Settings string        `json:"settings"`
	Inputs   []fingerprint `json:"inputs"`
}

// Ledger implements ports.RenderLedger backed by bbolt.
type Ledger struct {
	db *bolt.DB
}

// NewLedger opens (or creates) a ledger database at the given path.
func NewLedger(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketFigures)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}
	return &Ledger{db: db}, nil
}

// Close closes the underlying bbolt database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Unchanged reports whether output exists and was recorded with the same
// settings and with inputs matching their current state.
func (l *Ledger) Unchanged(output, settings string, inputs []string) (bool, error) {
	if _, err := os.Stat(output); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	current, err := fingerprints(inputs)
	if err != nil {
		return false, err
	}

	var stored []byte
	err = l.db.View(func(tx *bolt.Tx) error {
		// Copy bytes out of the transaction (bbolt slices are only valid within tx)
		if v := tx.Bucket(bucketFigures).Get([]byte(output)); v != nil {
			stored = make([]byte, len(v))
			copy(stored, v)
		}
		return nil
	})
	if err != nil || stored == nil {
		return false, err
	}

	var previous entry
	if err := json.Unmarshal(stored, &previous); err != nil {
		return false, fmt.Errorf("decode ledger entry %s: %w", output, err)
	}
	if previous.Settings != settings {
		return false, nil
	}
	return sameFingerprints(previous.Inputs, current), nil
}

// Record stores settings and the current fingerprints of inputs for output.
func (l *Ledger) Record(output, settings string, inputs []string) error {
	current, err := fingerprints(inputs)
	if err != nil {
		return err
	}
	data, err := json.Marshal(entry{Settings: settings, Inputs: current})
	if err != nil {
		return fmt.Errorf("marshal ledger entry: %w", err)
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketFigures).Put([]byte(output), data)
	})
}

func fingerprints(paths []string) ([]fingerprint, error) {
	out := make([]fingerprint, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		out = append(out, fingerprint{Path: p, Size: info.Size(), ModTime: info.ModTime().UnixNano()})
	}
	return out, nil
}

func sameFingerprints(a, b []fingerprint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
