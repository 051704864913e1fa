package audit

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rosemer/ledger/internal/domain/shared"
)

const entryTimeLayout = "2006-01-02 15:04:05"

// FileAuditLog appends human readable audit lines to a plain text file.
// Each line carries a timestamp prefix so the file reads as a journal
// of everything operators did.
type FileAuditLog struct {
	path string
	now  func() string
	mu   sync.Mutex
}

var _ shared.AuditLog = (*FileAuditLog)(nil)

// NewFileAuditLog creates an audit log writing to the given path. The
// parent directory is created if missing.
func NewFileAuditLog(path string) (*FileAuditLog, error) {
	if path == "" {
		return nil, fmt.Errorf("audit log path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create audit log directory: %w", err)
		}
	}
	return &FileAuditLog{path: path, now: defaultTimestamp}, nil
}

// Append writes a single timestamped line to the audit file.
func (l *FileAuditLog) Append(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "[%s] %s\n", l.now(), text); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func defaultTimestamp() string {
	return time.Now().Format(entryTimeLayout)
}
