package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DefaultBackupSuffix is appended to the database path to name the backup file.
const DefaultBackupSuffix = ".backup"

var (
	// ErrRestoreFailed is returned when the backup was taken but the
	// database file could not be overwritten. The backup file holds the
	// pre-import contents.
	ErrRestoreFailed = errors.New("import failed after backup was taken")

	// ErrNoBackup is returned when no backup file exists to restore from
	ErrNoBackup = errors.New("no backup file")

	// ErrNoDatabase is returned when the database file does not exist
	ErrNoDatabase = errors.New("database file not found")
)

// SnapshotError represents a snapshot operation error with file context
type SnapshotError struct {
	Op         string // Operation that failed (export, backup, import, restore)
	Path       string // Database file path
	BackupPath string // Backup file path, set once a backup exists
	Err        error  // Underlying error
}

func (e *SnapshotError) Error() string {
	if e.BackupPath != "" {
		return fmt.Sprintf("snapshot %s failed for '%s' (backup at '%s'): %v", e.Op, e.Path, e.BackupPath, e.Err)
	}
	return fmt.Sprintf("snapshot %s failed for '%s': %v", e.Op, e.Path, e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}

// IsRestoreFailed reports whether err means the caller must recover from the backup file
func IsRestoreFailed(err error) bool {
	return errors.Is(err, ErrRestoreFailed)
}

// SnapshotManager reads and replaces the database file as a whole. Callers
// must make sure no connection is writing to the file while it runs.
type SnapshotManager struct {
	fs           afero.Fs
	path         string
	backupSuffix string
	logger       *logrus.Logger
}

// NewSnapshotManager creates a snapshot manager for the database at path.
// A nil fs uses the OS filesystem.
func NewSnapshotManager(fs afero.Fs, path, backupSuffix string, logger *logrus.Logger) *SnapshotManager {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if backupSuffix == "" {
		backupSuffix = DefaultBackupSuffix
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &SnapshotManager{
		fs:           fs,
		path:         path,
		backupSuffix: backupSuffix,
		logger:       logger,
	}
}

// Path returns the database file path
func (m *SnapshotManager) Path() string {
	return m.path
}

// BackupPath returns the sibling backup file path
func (m *SnapshotManager) BackupPath() string {
	return m.path + m.backupSuffix
}

// Export returns the raw bytes of the database file
func (m *SnapshotManager) Export() ([]byte, error) {
	data, err := afero.ReadFile(m.fs, m.path)
	if err != nil {
		if os.IsNotExist(err) {
			err = ErrNoDatabase
		}
		return nil, &SnapshotError{Op: "export", Path: m.path, Err: err}
	}

	m.logger.WithFields(logrus.Fields{
		"path":  m.path,
		"bytes": len(data),
	}).Info("Database exported")

	return data, nil
}

// Import backs up the current database file, if any, then replaces it with
// data verbatim. The contents are not validated.
func (m *SnapshotManager) Import(data []byte) error {
	backupPath := ""

	exists, err := afero.Exists(m.fs, m.path)
	if err != nil {
		return &SnapshotError{Op: "backup", Path: m.path, Err: err}
	}

	if exists {
		if err := m.copyFile(m.path, m.BackupPath()); err != nil {
			return &SnapshotError{Op: "backup", Path: m.path, Err: err}
		}
		backupPath = m.BackupPath()
		m.logger.WithField("backup_path", backupPath).Info("Database backed up before import")
	}

	if err := m.writeFile(m.path, data); err != nil {
		if backupPath != "" {
			m.logger.WithError(err).WithField("backup_path", backupPath).Error("Import failed after backup")
			return &SnapshotError{
				Op:         "import",
				Path:       m.path,
				BackupPath: backupPath,
				Err:        fmt.Errorf("%w: %v", ErrRestoreFailed, err),
			}
		}
		return &SnapshotError{Op: "import", Path: m.path, Err: err}
	}

	m.logger.WithFields(logrus.Fields{
		"path":  m.path,
		"bytes": len(data),
	}).Info("Database imported")

	return nil
}

// RestoreBackup copies the backup file back over the database file
func (m *SnapshotManager) RestoreBackup() error {
	backupPath := m.BackupPath()

	exists, err := afero.Exists(m.fs, backupPath)
	if err != nil {
		return &SnapshotError{Op: "restore", Path: m.path, BackupPath: backupPath, Err: err}
	}
	if !exists {
		return &SnapshotError{Op: "restore", Path: m.path, Err: ErrNoBackup}
	}

	if err := m.copyFile(backupPath, m.path); err != nil {
		return &SnapshotError{Op: "restore", Path: m.path, BackupPath: backupPath, Err: err}
	}

	m.logger.WithField("backup_path", backupPath).Info("Database restored from backup")
	return nil
}

// copyFile reads src and writes it to dst, overwriting dst
func (m *SnapshotManager) copyFile(src, dst string) error {
	data, err := afero.ReadFile(m.fs, src)
	if err != nil {
		return err
	}
	return m.writeFile(dst, data)
}

// writeFile writes to a temp file first and renames it into place, so dst
// is never left half written.
func (m *SnapshotManager) writeFile(dst string, data []byte) error {
	if err := m.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	tempPath := fmt.Sprintf("%s.%s.tmp", dst, uuid.NewString())
	if err := afero.WriteFile(m.fs, tempPath, data, 0644); err != nil {
		m.fs.Remove(tempPath)
		return err
	}

	if err := m.fs.Rename(tempPath, dst); err != nil {
		m.fs.Remove(tempPath)
		return err
	}

	return nil
}
