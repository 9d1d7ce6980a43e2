package validation

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"ecofuturo/internal/errors"
	"ecofuturo/internal/infrastructure"
)

// FileValidator checks input and output locations before the pipeline touches them
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that path is a readable regular file. Any extension
// other than .xlsx is read as delimited text, so the extension is not checked.
// A missing file yields a FILE_ACCESS error wrapping fs.ErrNotExist.
func (v *FileValidator) ValidateInputFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		infrastructure.WithError(v.logger, err).ErrorContext(ctx, "Input file is not accessible",
			slog.String("file", path))
		return errors.NewFileAccessError("input file is not accessible", err).
			WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.ErrorContext(ctx, "Input path is a directory, not a file",
			slog.String("path", path))
		return errors.NewFileAccessError("input path is a directory", nil).
			WithContext("path", path)
	}

	// Office lock files share the workbook's name and extension
	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.WarnContext(ctx, "Input is a temporary Excel file",
			slog.String("file", path))
		return errors.NewValidationError("input is a temporary Excel file").
			WithContext("path", path)
	}

	f, err := os.Open(path)
	if err != nil {
		infrastructure.WithError(v.logger, err).ErrorContext(ctx, "Input file is not readable",
			slog.String("file", path))
		return errors.NewFileAccessError("input file is not readable", err).
			WithContext("path", path)
	}
	f.Close()

	v.logger.DebugContext(ctx, "Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputDirectory checks that dir is, or can become, a directory.
// Nothing is created; the closest existing ancestor must be a directory.
func (v *FileValidator) ValidateOutputDirectory(ctx context.Context, dir string) error {
	for current := filepath.Clean(dir); ; current = filepath.Dir(current) {
		info, err := os.Stat(current)
		switch {
		case err == nil && info.IsDir():
			v.logger.DebugContext(ctx, "Output directory validated",
				slog.String("directory", dir),
				slog.String("existing", current))
			return nil
		case err == nil:
			v.logger.ErrorContext(ctx, "Output path is blocked by a file",
				slog.String("directory", dir),
				slog.String("file", current))
			return errors.NewFileAccessError("output directory is blocked by a file", nil).
				WithContext("path", dir).
				WithContext("blocked_by", current)
		case !stderrors.Is(err, fs.ErrNotExist) && !stderrors.Is(err, syscall.ENOTDIR):
			return errors.NewFileAccessError("output directory is not accessible", err).
				WithContext("path", dir)
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil
		}
	}
}
