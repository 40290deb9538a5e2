package fsutil

import (
	"context"
	"fmt"
	"os"
)

// BackupMode specifies how backups are stored.
type BackupMode string

const (
	// BackupModeSidecar writes the previous content next to the file with BackupSuffix.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to a file's path to name its sidecar backup.
const BackupSuffix = ".bak"

// BackupConfig controls backup behavior.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// DefaultBackupConfig returns the defaults: sidecar backups, enabled.
func DefaultBackupConfig() BackupConfig {
	return BackupConfig{Enabled: true, Mode: BackupModeSidecar}
}

// Active reports whether the config produces backups.
func (c BackupConfig) Active() bool {
	return c.Enabled && c.Mode != BackupModeNone
}

// BackupPath returns the sidecar path for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// WriteBackup stores content as the backup of path, replacing any earlier
// backup so it always holds the state before the latest edit.
func WriteBackup(ctx context.Context, path string, content []byte, mode os.FileMode, cfg BackupConfig) (bool, error) {
	if !cfg.Active() {
		return false, nil
	}
	if err := WriteAtomic(ctx, BackupPath(path), content, mode); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup copies the backup of path back over it.
// Returns false if no backup exists.
func RestoreBackup(ctx context.Context, path string) (bool, error) {
	content, info, err := ReadFile(ctx, BackupPath(path))
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}
	if err := WriteAtomic(ctx, path, content, info.Mode); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return true, nil
}
