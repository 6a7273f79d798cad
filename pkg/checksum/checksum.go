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

// Package checksum computes the MD5 and SHA-1 digests the repository
// manager verifies on upload. Input is streamed in fixed-size chunks so
// memory use is independent of file size.
package checksum // import "github.com/silverbp/artifactory-go/pkg/checksum"

import (
	"crypto/md5"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
)

// chunkSize is the copy buffer used when streaming input through the
// digest accumulators.
const chunkSize = 64 * 1024

// Sum holds the lowercase hex digests of one byte stream.
type Sum struct {
	MD5  string
	SHA1 string
}

// SumReader streams r through MD5 and SHA-1 accumulators in a single pass
// and returns both hex digests. The digests depend only on the byte
// content, never on how reads are chunked.
func SumReader(r io.Reader) (Sum, error) {
	md5sum := md5.New()
	sha1sum := sha1.New()

	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(io.MultiWriter(md5sum, sha1sum), r, buf); err != nil {
		return Sum{}, errors.Wrap(err, "unable to stream content through digests")
	}

	return Sum{
		MD5:  hex.EncodeToString(md5sum.Sum(nil)),
		SHA1: hex.EncodeToString(sha1sum.Sum(nil)),
	}, nil
}

// SumFile opens path and digests its content. The file handle is closed on
// every exit path.
func SumFile(path string) (Sum, error) {
	f, err := os.Open(path)
	if err != nil {
		return Sum{}, errors.Wrapf(err, "unable to open %q for hashing", path)
	}
	defer f.Close()

	return SumReader(f)
}
