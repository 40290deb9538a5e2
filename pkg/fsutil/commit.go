package fsutil

import (
	"context"
	"errors"
	"fmt"
)

// CommitResult describes a completed write.
type CommitResult struct {
	Path       string
	BackupPath string
	Written    bool
}

// Commit replaces the file described by info with content.
//
// It refuses to write if the file changed since it was read, stores the
// original content as a backup when cfg is active, and writes atomically
// with the original mode. Identical content is not rewritten.
func Commit(ctx context.Context, info *FileInfo, original, content []byte, cfg BackupConfig) (*CommitResult, error) {
	if info == nil {
		return nil, ErrNilFileInfo
	}

	result := &CommitResult{Path: info.Path}
	if string(original) == string(content) {
		return result, nil
	}

	modified, err := CheckModified(ctx, info)
	if err != nil {
		return nil, err
	}
	if modified {
		return nil, fmt.Errorf("%w: %s", ErrModified, info.Path)
	}

	backedUp, err := WriteBackup(ctx, info.Path, original, info.Mode, cfg)
	if err != nil {
		return nil, err
	}
	if backedUp {
		result.BackupPath = BackupPath(info.Path)
	}

	if err := WriteAtomic(ctx, info.Path, content, info.Mode); err != nil {
		return nil, err
	}
	result.Written = true

	return result, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
