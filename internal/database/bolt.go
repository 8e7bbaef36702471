package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/diarypush/internal/model"
	"go.etcd.io/bbolt"
)

const (
	boltBucketRuns = "runs" // key: started-at timestamp + uid -> RunRecord JSON

	runKeyLayout = "20060102T150405.000000000Z"
)

var _ Store = (*Bolt)(nil)

type Bolt struct {
	db *bbolt.DB
}

// NewBolt opens (creating if needed) the history database at path. The file
// stays exclusively locked until Close.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		if errors.Is(err, bbolt.ErrTimeout) {
			return nil, ErrLocked
		}

		return nil, err
	}

	if err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketRuns))
		return err
	}); err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) Ping() error {
	return b.db.View(func(tx *bbolt.Tx) error {
		return nil
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

// SaveRun stores run, assigning a UID when it has none.
func (b *Bolt) SaveRun(run *model.RunRecord) error {
	if run == nil {
		return errors.New("run is required")
	}

	if run.StartedAt.IsZero() {
		return errors.New("run start time is required")
	}

	if run.UID == "" {
		run.UID = uuid.New().String()
	}

	data, err := json.Marshal(run)
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		runs := tx.Bucket([]byte(boltBucketRuns))

		return runs.Put(runKey(run), data)
	})
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all.
func (b *Bolt) ListRuns(limit int) ([]model.RunRecord, error) {
	var out []model.RunRecord

	err := b.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(boltBucketRuns)).Cursor()

		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(out) >= limit {
				break
			}

			var r model.RunRecord

			if err := json.Unmarshal(v, &r); err != nil {
				return fmt.Errorf("corrupt run %s: %w", k, err)
			}

			out = append(out, r)
		}

		return nil
	})

	return out, err
}

// LastRun returns the most recent run or ErrNoRuns.
func (b *Bolt) LastRun() (*model.RunRecord, error) {
	runs, err := b.ListRuns(1)
	if err != nil {
		return nil, err
	}

	if len(runs) == 0 {
		return nil, ErrNoRuns
	}

	return &runs[0], nil
}

func runKey(run *model.RunRecord) []byte {
	return []byte(run.StartedAt.UTC().Format(runKeyLayout) + "/" + run.UID)
}
