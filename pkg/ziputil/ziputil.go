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

// Package ziputil packages a directory into a deflate-compressed zip
// archive and extracts such archives again. It is a standalone collaborator
// for publishing directory-shaped artifacts; the client gateway itself
// never packages anything.
package ziputil // import "github.com/silverbp/artifactory-go/pkg/ziputil"

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/klauspost/compress/flate"
	"github.com/pkg/errors"
)

// ZipDir walks srcDir and writes a deflate-compressed zip archive to dest.
// Every subdirectory gets a directory entry, empty ones included, so the
// tree shape survives a round trip. Only regular files have their contents
// archived; sockets, devices, and symlinks are skipped. Entry names are
// forward-slash relative paths.
func ZipDir(srcDir, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return errors.Wrapf(err, "unable to create archive %q", dest)
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	walkErr := filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		name := filepath.ToSlash(rel)

		if info.IsDir() {
			_, err := zw.CreateHeader(&zip.FileHeader{Name: name + "/"})
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = name
		header.Method = zip.Deflate

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		src, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(w, src)
		src.Close()
		return err
	})
	if walkErr != nil {
		zw.Close()
		out.Close()
		os.Remove(dest)
		return errors.Wrapf(walkErr, "unable to archive %q", srcDir)
	}

	if err := zw.Close(); err != nil {
		out.Close()
		os.Remove(dest)
		return errors.Wrap(err, "unable to finalize archive")
	}
	return out.Close()
}

// Unzip extracts the archive at src into destDir. Every entry name is
// vetted before anything touches the filesystem: absolute paths, drive
// letters, and parent-directory references are rejected, and the final
// location is confined to destDir.
func Unzip(src, destDir string) error {
	zr, err := zip.OpenReader(src)
	if err != nil {
		return errors.Wrapf(err, "unable to open archive %q", src)
	}
	defer zr.Close()

	for _, entry := range zr.File {
		if err := validateEntryName(entry.Name); err != nil {
			return err
		}
		target, err := securejoin.SecureJoin(destDir, entry.Name)
		if err != nil {
			return err
		}

		if entry.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return err
		}
		if err := extractFile(entry, target); err != nil {
			return errors.Wrapf(err, "unable to extract %q", entry.Name)
		}
	}
	return nil
}

func extractFile(entry *zip.File, target string) error {
	rc, err := entry.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func validateEntryName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return errors.Errorf("archive entry %q has an absolute path", name)
	}
	if strings.Contains(name, ":") {
		return errors.Errorf("archive entry %q contains a drive or stream separator", name)
	}
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == ".." {
			return errors.Errorf("archive entry %q references a parent directory", name)
		}
	}
	return nil
}
