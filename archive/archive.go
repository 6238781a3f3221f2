// Package archive files processed statements under their canonical name,
// either on the mounted network share or in a Cloud Storage bucket.
package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor/common"
)

// DateLayout is the date part of a canonical file name.
const DateLayout = "20060102"

// CanonicalName is "<type>-<YYYYMMDD><suffix>", e.g.
// "DBSPaylahStatement-20240131.pdf".
func CanonicalName(t common.StatementType, date string, suffix string) string {
	return fmt.Sprintf("%s-%s%s", t, date, suffix)
}

// NameFor builds the canonical name of a parsed statement from its original
// file name.
func NameFor(statement common.Statement) (string, error) {
	if statement.StatementDate == nil {
		return "", &common.StructuralError{Page: -1, Reason: "statement has no date to name it by"}
	}
	return CanonicalName(statement.Type, statement.StatementDate.Format(DateLayout), filepath.Ext(statement.Source)), nil
}

// Archiver stores the file at srcPath under name and returns where it went.
type Archiver interface {
	Archive(ctx context.Context, srcPath, name string) (string, error)
}

// New returns a GCSArchiver when a bucket is configured and a LocalArchiver
// otherwise.
func New(cfg config.Archive) (Archiver, error) {
	if cfg.GCSBucket != "" {
		return NewGCSArchiver(cfg.GCSBucket, cfg.GCSPrefix), nil
	}
	return NewLocalArchiver(cfg)
}

// Rename gives the file at srcPath a new name in its own directory.
func Rename(srcPath, name string) (string, error) {
	dst := filepath.Join(filepath.Dir(srcPath), name)
	if err := os.Rename(srcPath, dst); err != nil {
		return "", fmt.Errorf("rename %q: %w", srcPath, err)
	}
	return dst, nil
}

// LocalArchiver moves files into a directory, normally the local mount
// point of the NAS share.
type LocalArchiver struct {
	Dir   string
	Share string
}

func NewLocalArchiver(cfg config.Archive) (*LocalArchiver, error) {
	if cfg.LocalDir == "" {
		return nil, &common.ConfigError{Key: "archive.local_dir", Reason: "NAS_ADDR01_LOCAL is not set"}
	}
	info, err := os.Stat(cfg.LocalDir)
	if err != nil || !info.IsDir() {
		reason := fmt.Sprintf("%q is not a directory", cfg.LocalDir)
		if cfg.Share != "" {
			reason += fmt.Sprintf(", is %s mounted?", cfg.Share)
		}
		return nil, &common.ConfigError{Key: "archive.local_dir", Reason: reason}
	}
	return &LocalArchiver{Dir: cfg.LocalDir, Share: cfg.Share}, nil
}

func (a *LocalArchiver) Archive(ctx context.Context, srcPath, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(a.Dir, name)
	if _, err := os.Stat(dst); err == nil {
		return "", fmt.Errorf("archive target %q already exists", dst)
	}

	if err := os.Rename(srcPath, dst); err == nil {
		return dst, nil
	}

	// the share is usually another device, so fall back to copy and remove
	if err := copyFile(srcPath, dst); err != nil {
		return "", err
	}
	if err := os.Remove(srcPath); err != nil {
		return "", fmt.Errorf("remove %q after copy: %w", srcPath, err)
	}
	return dst, nil
}

func copyFile(srcPath, dst string) error {
	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open file %q: %w", srcPath, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %q: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %q: %w", dst, err)
	}
	return out.Close()
}
