package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/alma-imf/contsel/internal/domain"
)

const reportFileName = "coverage.json"

// FileRepository implements Repository using a JSON file.
type FileRepository struct {
	dir string
}

// NewFileRepository creates a new FileRepository for the given directory.
func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Load retrieves the last saved report from disk.
// Returns an empty report and nil error if no report file exists.
func (r *FileRepository) Load(ctx context.Context) (domain.Report, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Report{}, nil
		}
		return domain.Report{}, err
	}

	var rep domain.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return domain.Report{}, err
	}
	return rep, nil
}

// Save persists the report atomically (write to temp file, then rename).
func (r *FileRepository) Save(ctx context.Context, rep domain.Report) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return err
	}

	path := r.Path()
	tmp := path + ".tmp"

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}

// Publish implements ports.ReportSink.
func (r *FileRepository) Publish(ctx context.Context, rep domain.Report) error {
	return r.Save(ctx, rep)
}

// Path returns the full path to the report file.
func (r *FileRepository) Path() string {
	return filepath.Join(r.dir, reportFileName)
}
