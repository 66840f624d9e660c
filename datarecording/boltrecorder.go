package datarecording

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/boltdb/bolt"
	"github.com/tebeka/atexit"
)

// boltWriter stores every table as a bucket of JSON-encoded entries keyed by
// insertion order.
type boltWriter struct {
	db *bolt.DB

	types   map[string]reflect.Type
	order   []string
	pending map[string][]any
}

// NewBolt creates a DataRecorder that writes into the BoltDB file at path.
func NewBolt(path string) (DataRecorder, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	fmt.Fprintf(os.Stderr, "Database created for recording: %s\n", path)

	w := &boltWriter{
		db:      db,
		types:   make(map[string]reflect.Type),
		pending: make(map[string][]any),
	}

	atexit.Register(func() { _ = w.Flush() })

	return w, nil
}

func (w *boltWriter) CreateTable(tableName string, sampleEntry any) {
	if err := checkEntry(sampleEntry); err != nil {
		panic(err)
	}

	err := w.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucket([]byte(tableName))
		return err
	})
	if err != nil {
		panic(fmt.Errorf("creating bucket %s: %w", tableName, err))
	}

	w.types[tableName] = reflect.TypeOf(sampleEntry)
	w.order = append(w.order, tableName)
}

func (w *boltWriter) InsertData(tableName string, entry any) {
	t, exists := w.types[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != t {
		panic(fmt.Sprintf("entry of type %T does not match table %s",
			entry, tableName))
	}

	w.pending[tableName] = append(w.pending[tableName], entry)
}

func (w *boltWriter) ListTables() []string {
	return append([]string(nil), w.order...)
}

func (w *boltWriter) Flush() error {
	if len(w.pending) == 0 {
		return nil
	}

	err := w.db.Update(func(tx *bolt.Tx) error {
		for _, name := range w.order {
			b := tx.Bucket([]byte(name))

			for _, entry := range w.pending[name] {
				seq, err := b.NextSequence()
				if err != nil {
					return err
				}

				data, err := json.Marshal(entry)
				if err != nil {
					return err
				}

				if err := b.Put(sequenceKey(seq), data); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	w.pending = make(map[string][]any)

	return nil
}

func (w *boltWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}

	return w.db.Close()
}

// sequenceKey encodes a sequence number so that keys sort in insertion
// order.
func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)

	return key
}
