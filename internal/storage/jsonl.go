package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"liquidityPilot/internal/model"
)

// DefaultJournalMode is the permission a new journal file is created with.
const DefaultJournalMode fs.FileMode = 0o600

// JsonlStorage is an append-only operation journal, one JSON record per line.
// A batch is fully encoded before the file is touched and is synced to disk
// before PutOperationBatch returns.
type JsonlStorage struct {
	path string
	mode fs.FileMode
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path, mode: DefaultJournalMode}
}

// WithMode sets the permission bits used when the journal file is created.
func (s *JsonlStorage) WithMode(mode fs.FileMode) *JsonlStorage {
	s.mode = mode
	return s
}

// PutOperationBatch appends a batch of records as JSON lines.
func (s *JsonlStorage) PutOperationBatch(_ context.Context, records []model.OperationRecord) error {
	if len(records) == 0 {
		return nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, record := range records {
		if err := enc.Encode(record); err != nil {
			return fmt.Errorf("marshal operation record: %w", err)
		}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create journal dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, s.mode)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if _, err := file.Write(buf.Bytes()); err != nil {
		file.Close()
		return fmt.Errorf("write journal: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("sync journal: %w", err)
	}
	return file.Close()
}

// RecentOperations returns up to limit records for account, newest first.
// A missing journal yields no records.
func (s *JsonlStorage) RecentOperations(_ context.Context, account string, limit int) ([]model.OperationRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	var matched []model.OperationRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec model.OperationRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("journal line %d: %w", line, err)
		}
		if !strings.EqualFold(rec.Account, account) {
			continue
		}
		matched = append(matched, rec)
		if len(matched) > limit {
			matched = matched[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	out := make([]model.OperationRecord, 0, len(matched))
	for i := len(matched) - 1; i >= 0; i-- {
		out = append(out, matched[i])
	}
	return out, nil
}
