package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists rendered reports under opaque identifiers. The identifier
// is the generated filename; retention and cleanup are the caller's concern.
type Store struct {
	dir string
}

// NewStore ensures the report directory exists and returns a store over it.
func NewStore(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("report directory is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating report directory %q: %w", dir, err)
	}

	return &Store{dir: dir}, nil
}

// Save writes one report through the provided render callback and returns
// its identifier. The file handle is closed and flushed on every exit path;
// a failed write leaves no partial file behind.
func (s *Store) Save(render func(w io.Writer) error) (id string, err error) {
	id = strings.ReplaceAll(uuid.New().String(), "-", "") + ".pdf"
	path := filepath.Join(s.dir, id)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating report file: %w", err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing report file: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
			id = ""
		}
	}()

	if err = render(f); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}

	if err = f.Sync(); err != nil {
		return "", fmt.Errorf("flushing report file: %w", err)
	}

	return id, nil
}

// Path resolves a report identifier to its location on disk.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id)
}
