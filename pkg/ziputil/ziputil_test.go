/*
Copyright The Artifactory-Go Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ziputil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipDirRoundTrip(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "conf", "env"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(src, "empty"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "main.txt"), []byte("top level"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "conf", "env", "prod.yaml"), []byte("replicas: 3"), 0644))

	archive := filepath.Join(t.TempDir(), "bundle.zip")
	require.NoError(t, ZipDir(src, archive))

	dest := t.TempDir()
	require.NoError(t, Unzip(archive, dest))

	got, err := os.ReadFile(filepath.Join(dest, "main.txt"))
	require.NoError(t, err)
	assert.Equal(t, "top level", string(got))

	got, err = os.ReadFile(filepath.Join(dest, "conf", "env", "prod.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "replicas: 3", string(got))

	// Empty directories survive the round trip.
	info, err := os.Stat(filepath.Join(dest, "empty"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestZipDirEntries(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "sub", "file.bin"), []byte("data"), 0644))

	archive := filepath.Join(t.TempDir(), "bundle.zip")
	require.NoError(t, ZipDir(src, archive))

	zr, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
		if !f.FileInfo().IsDir() {
			assert.Equal(t, uint16(zip.Deflate), f.Method, "file entries are deflate compressed")
		}
	}
	sort.Strings(names)
	assert.Equal(t, []string{"sub/", "sub/file.bin"}, names)
}

func TestZipDirSkipsNonRegularFiles(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "real.txt"), []byte("real"), 0644))
	require.NoError(t, os.Symlink(filepath.Join(src, "real.txt"), filepath.Join(src, "link.txt")))

	archive := filepath.Join(t.TempDir(), "bundle.zip")
	require.NoError(t, ZipDir(src, archive))

	zr, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer zr.Close()

	for _, f := range zr.File {
		assert.NotEqual(t, "link.txt", f.Name, "symlinks must not enter the archive")
	}
	assert.Len(t, zr.File, 1)
}

func TestUnzipRejectsTraversal(t *testing.T) {
	for _, name := range []string{"../escape.txt", "ok/../../escape.txt", "/abs.txt", "c:evil.txt"} {
		archive := filepath.Join(t.TempDir(), "evil.zip")
		out, err := os.Create(archive)
		require.NoError(t, err)
		zw := zip.NewWriter(out)
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte("boom"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, out.Close())

		dest := t.TempDir()
		err = Unzip(archive, dest)
		assert.Errorf(t, err, "entry %q must be rejected", name)
	}
}
