package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aqlanhadi/pbsm/config"
	"github.com/aqlanhadi/pbsm/extractor/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "DBSPaylahStatement-20240131.pdf", CanonicalName(common.DBSPaylah, "20240131", ".pdf"))
	assert.Equal(t, "DBSCreditCardStatement-20231215", CanonicalName(common.DBSCreditCard, "20231215", ""))
}

func TestNameFor(t *testing.T) {
	date := time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local)
	name, err := NameFor(common.Statement{Source: "PDF文档1.pdf", Type: common.DBSPaylah, StatementDate: &date})
	require.NoError(t, err)
	assert.Equal(t, "DBSPaylahStatement-20240131.pdf", name)

	_, err = NameFor(common.Statement{Source: "x.pdf", Type: common.DBSPaylah})
	var serr *common.StructuralError
	assert.True(t, errors.As(err, &serr))
}

func TestRename(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "PDF文档1.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF"), 0644))

	dst, err := Rename(src, "DBSPaylahStatement-20240131.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "DBSPaylahStatement-20240131.pdf"), dst)
	assert.FileExists(t, dst)
	assert.NoFileExists(t, src)
}

func TestNew_LocalRequiresDirectory(t *testing.T) {
	_, err := New(config.Archive{})
	var cerr *common.ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "archive.local_dir", cerr.Key)

	_, err = New(config.Archive{LocalDir: filepath.Join(t.TempDir(), "missing"), Share: "smb://10.0.0.1/data"})
	require.True(t, errors.As(err, &cerr))
	assert.Contains(t, cerr.Reason, "smb://10.0.0.1/data")
}

func TestNew_PicksGCSWhenBucketSet(t *testing.T) {
	a, err := New(config.Archive{GCSBucket: "statements-bucket", GCSPrefix: "pbsm"})
	require.NoError(t, err)
	_, ok := a.(*GCSArchiver)
	assert.True(t, ok)
}

func TestLocalArchiver_Archive(t *testing.T) {
	srcDir, nas := t.TempDir(), t.TempDir()
	src := filepath.Join(srcDir, "in.pdf")
	require.NoError(t, os.WriteFile(src, []byte("%PDF-1.4"), 0644))

	a, err := New(config.Archive{LocalDir: nas})
	require.NoError(t, err)

	dst, err := a.Archive(context.Background(), src, "DBSPaylahStatement-20240131.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nas, "DBSPaylahStatement-20240131.pdf"), dst)
	assert.NoFileExists(t, src)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	require.NoError(t, os.WriteFile(src, []byte("again"), 0644))
	_, err = a.Archive(context.Background(), src, "DBSPaylahStatement-20240131.pdf")
	assert.Error(t, err)
	assert.FileExists(t, src)
}

type fakeUploader struct {
	bucket, object, path string
	err                  error
}

func (f *fakeUploader) UploadFile(_ context.Context, bucketName, objectName, filePath string) error {
	f.bucket, f.object, f.path = bucketName, objectName, filePath
	return f.err
}

func TestGCSArchiver_Archive(t *testing.T) {
	up := &fakeUploader{}
	a := NewGCSArchiver("statements-bucket", "pbsm").WithUploader(up)

	uri, err := a.Archive(context.Background(), "/tmp/in.pdf", "DBSPaylahStatement-20240131.pdf")
	require.NoError(t, err)
	assert.Equal(t, "gs://statements-bucket/pbsm/DBSPaylahStatement-20240131.pdf", uri)
	assert.Equal(t, "statements-bucket", up.bucket)
	assert.Equal(t, "pbsm/DBSPaylahStatement-20240131.pdf", up.object)
	assert.Equal(t, "/tmp/in.pdf", up.path)

	up.err = errors.New("denied")
	_, err = NewGCSArchiver("b", "").WithUploader(up).Archive(context.Background(), "/tmp/in.pdf", "x.pdf")
	assert.EqualError(t, err, "denied")
	assert.Equal(t, "x.pdf", up.object)
}
