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

package checksum

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestSumReader(t *testing.T) {
	// Digests of "The quick brown fox jumps over the lazy dog" are well known.
	sum, err := SumReader(bytes.NewReader([]byte("The quick brown fox jumps over the lazy dog")))
	if err != nil {
		t.Fatal(err)
	}
	if sum.MD5 != "9e107d9d372bb6826bd81d3542a419d6" {
		t.Errorf("wrong MD5: %s", sum.MD5)
	}
	if sum.SHA1 != "2fd4e1c67a2d28fced849ee1bb76e7391b93eb12" {
		t.Errorf("wrong SHA1: %s", sum.SHA1)
	}
}

func TestSumReaderChunkBoundaries(t *testing.T) {
	// Same content must digest identically regardless of where chunk
	// boundaries fall: below, at, and above the 64 KiB chunk size.
	for _, size := range []int{chunkSize - 1, chunkSize, chunkSize + 1, 3*chunkSize + 17} {
		content := bytes.Repeat([]byte{0xa5}, size)

		first, err := SumReader(bytes.NewReader(content))
		if err != nil {
			t.Fatal(err)
		}
		second, err := SumReader(bytes.NewReader(content))
		if err != nil {
			t.Fatal(err)
		}

		if first != second {
			t.Errorf("size %d: digests differ between passes: %v vs %v", size, first, second)
		}
		if len(first.MD5) != 32 || len(first.SHA1) != 40 {
			t.Errorf("size %d: unexpected digest lengths: %v", size, first)
		}
	}
}

func TestSumFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.bin")
	if err := os.WriteFile(path, []byte("The quick brown fox jumps over the lazy dog"), 0644); err != nil {
		t.Fatal(err)
	}

	sum, err := SumFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if sum.MD5 != "9e107d9d372bb6826bd81d3542a419d6" || sum.SHA1 != "2fd4e1c67a2d28fced849ee1bb76e7391b93eb12" {
		t.Errorf("unexpected digests: %v", sum)
	}
}

func TestSumFileMissing(t *testing.T) {
	if _, err := SumFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
