// =============================================================================
// PayPal to QuickBooks Converter - File Manager Utility
// =============================================================================
//
// This module provides the file-handling helpers the batch run needs:
//   - Directory creation
//   - Stale-output removal (every run starts from a fresh IIF file)
//   - Input archival after a successful run
//   - Output naming with {timestamp} and {uuid} placeholders
//
// ARCHIVAL STRATEGY:
//   - The input export is moved to the archive directory after a successful
//     conversion, so the input directory only ever holds unprocessed work.
//   - Failed runs leave the input where it was.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// RemoveIfExists deletes path. A missing file is not an error; the point is
// only that the file is gone afterwards.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// ExpandName substitutes the {uuid} and {timestamp} placeholders in an
// output name format.
func ExpandName(format, runID string) string {
	name := strings.ReplaceAll(format, "{uuid}", runID)
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	return name
}

// ArchiveFile moves src into archiveDir, creating the directory if needed.
// If a file with the same name already exists there, a timestamp is appended
// to keep both.
func ArchiveFile(src, archiveDir string) (string, error) {
	if err := EnsureDir(archiveDir); err != nil {
		return "", err
	}

	dest := filepath.Join(archiveDir, filepath.Base(src))
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(dest)
		base := strings.TrimSuffix(filepath.Base(dest), ext)
		dest = filepath.Join(archiveDir,
			fmt.Sprintf("%s_%s%s", base, time.Now().Format("20060102_150405"), ext))
	}

	if err := os.Rename(src, dest); err != nil {
		// Rename fails across filesystems; fall back to copy + remove.
		if copyErr := copyFile(src, dest); copyErr != nil {
			return "", fmt.Errorf("failed to archive %s: %w", src, copyErr)
		}
		if err := os.Remove(src); err != nil {
			return "", fmt.Errorf("failed to remove %s after archiving: %w", src, err)
		}
	}
	return dest, nil
}

// copyFile copies src to dest, preserving nothing but the bytes.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
