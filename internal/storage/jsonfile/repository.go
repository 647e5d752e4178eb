package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/honeycarbs/vacancy-scanner/internal/domain"
	"github.com/honeycarbs/vacancy-scanner/internal/domain/vacancy"
)

const (
	lockSuffix    = ".lock"
	lockRetry     = 50 * time.Millisecond
	filePerm      = 0o644
	indent        = "  "
	defaultLockTO = 5 * time.Second
)

// Ensure Repository implements vacancy.Repository
var _ vacancy.Repository = (*Repository)(nil)

// Repository stores vacancies as a JSON array in a file
type Repository struct {
	lockTimeout time.Duration
}

// NewRepository creates a file-backed Repository
func NewRepository() *Repository {
	return &Repository{lockTimeout: defaultLockTO}
}

// Save merges vacancies into the file at path. Entries already in the file keep
// their order; new ones are appended in input order, skipping equal vacancies.
// A missing file is created with exactly the given vacancies.
func (r *Repository) Save(ctx context.Context, path string, vacancies []domain.Vacancy) error {
	if path == "" {
		return fmt.Errorf("jsonfile: path is required")
	}

	unlock, err := r.lock(ctx, path)
	if err != nil {
		return err
	}
	defer unlock()

	existing, err := readFile(path)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return writeFile(path, vacancies)
	case err != nil:
		return err
	}

	return writeFile(path, merge(existing, vacancies))
}

// Load reads every vacancy stored at path. Any invalid entry aborts the load.
// A missing file is reported before locking so no lock file is left behind.
func (r *Repository) Load(ctx context.Context, path string) ([]domain.Vacancy, error) {
	if path == "" {
		return nil, fmt.Errorf("jsonfile: path is required")
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, &domain.NotFoundError{Resource: path, Err: err}
	}

	unlock, err := r.lock(ctx, path)
	if err != nil {
		return nil, err
	}
	defer unlock()

	return readFile(path)
}

func (r *Repository) lock(ctx context.Context, path string) (func(), error) {
	fl := flock.New(path + lockSuffix)

	lockCtx, cancel := context.WithTimeout(ctx, r.lockTimeout)
	defer cancel()

	ok, err := fl.TryLockContext(lockCtx, lockRetry)
	if err != nil {
		return nil, fmt.Errorf("jsonfile: lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("jsonfile: lock %s: timed out", path)
	}

	return func() { _ = fl.Unlock() }, nil
}

func merge(existing, incoming []domain.Vacancy) []domain.Vacancy {
	seen := make(map[domain.Vacancy]struct{}, len(existing)+len(incoming))
	out := make([]domain.Vacancy, 0, len(existing)+len(incoming))

	for _, v := range existing {
		seen[v] = struct{}{}
		out = append(out, v)
	}
	for _, v := range incoming {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func readFile(path string) ([]domain.Vacancy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Resource: path, Err: err}
		}
		return nil, fmt.Errorf("jsonfile: read %s: %w", path, err)
	}

	var entries []domain.VacancyJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, &domain.ValidationError{Field: "file", Value: path, Reason: "not a JSON array of vacancies", Err: err}
	}

	out := make([]domain.Vacancy, 0, len(entries))
	for i, entry := range entries {
		v, err := entry.Vacancy()
		if err != nil {
			return nil, fmt.Errorf("jsonfile: %s entry %d: %w", path, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func writeFile(path string, vacancies []domain.Vacancy) error {
	entries := make([]domain.VacancyJSON, 0, len(vacancies))
	for _, v := range vacancies {
		entries = append(entries, v.ToJSON())
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: write %s: %w", tmpName, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("jsonfile: chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("jsonfile: replace %s: %w", path, err)
	}
	return nil
}
