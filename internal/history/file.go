package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"themepark/internal/domain/entities"
)

// Export writes the ride's history to path, replacing any existing file and
// creating missing parent directories. It returns the number of visitors
// written. Every failure is an *entities.OperationError wrapping
// entities.ErrFileOperation.
func Export(ride *entities.Ride, path string) (int, error) {
	if isBlankPath(path) {
		return 0, fileError("export", ride, "filename cannot be empty", fmt.Errorf("invalid filename %q", path))
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fileError("export", ride, fmt.Sprintf("error exporting ride history to '%s'", path),
				fmt.Errorf("create directory %s: %w", dir, err))
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fileError("export", ride, fmt.Sprintf("error exporting ride history to '%s'", path), err)
	}

	visitors := ride.History()
	writeErr := Write(f, visitors)
	closeErr := f.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		return 0, fileError("export", ride, fmt.Sprintf("error exporting ride history to '%s'", path), err)
	}
	return len(visitors), nil
}

// Import reads visitors from path and appends them to the ride's history,
// after whatever is already there. Malformed lines are skipped and listed in
// the report. A blank path, a missing file, or an unreadable file fails the
// whole import with an *entities.OperationError wrapping
// entities.ErrFileOperation, and nothing is appended.
func Import(ride *entities.Ride, path string) (Report, error) {
	if isBlankPath(path) {
		return Report{}, fileError("import", ride, "filename cannot be empty", fmt.Errorf("invalid filename %q", path))
	}

	f, err := os.Open(path)
	if err != nil {
		msg := fmt.Sprintf("cannot read file '%s'", path)
		if errors.Is(err, os.ErrNotExist) {
			msg = fmt.Sprintf("file not found: '%s'", path)
		}
		return Report{}, fileError("import", ride, msg, err)
	}
	defer func() { _ = f.Close() }()

	visitors, report, err := Read(f)
	if err != nil {
		return Report{}, fileError("import", ride, fmt.Sprintf("error importing ride history from '%s'", path), err)
	}

	for _, v := range visitors {
		// Read never yields nil visitors.
		_ = ride.AppendToHistory(v)
	}
	return report, nil
}

func fileError(op string, ride *entities.Ride, msg string, cause error) error {
	return &entities.OperationError{
		Op:    op,
		Ride:  ride.Name(),
		Msg:   msg,
		Err:   entities.ErrFileOperation,
		Cause: cause,
	}
}

func isBlankPath(path string) bool {
	return strings.TrimSpace(path) == ""
}
