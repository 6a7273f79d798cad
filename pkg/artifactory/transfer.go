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

package artifactory

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/silverbp/artifactory-go/internal/fileutil"
	"github.com/silverbp/artifactory-go/pkg/artifact"
	"github.com/silverbp/artifactory-go/pkg/checksum"
)

// DownloadResult reports where a downloaded artifact was written. Path is
// empty when the server did not respond with 200.
type DownloadResult struct {
	Response
	Path string
}

// Download fetches the artifact and writes its content to dest, atomically
// and overwriting any previous content. A non-200 status returns before
// anything touches dest; the body is then retained in the Response for
// inspection.
func (c *Client) Download(a *artifact.Artifact, dest string) (*DownloadResult, error) {
	if a == nil {
		return nil, ErrNilArtifact
	}
	u, err := a.URL(c.baseURL)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s failed", u)
	}
	defer resp.Body.Close()

	c.log.WithFields(logrus.Fields{
		"method":   http.MethodGet,
		"url":      u,
		"status":   resp.StatusCode,
		"artifact": a.String(),
	}).Debug("artifact download")

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read response from GET %s", u)
		}
		return &DownloadResult{Response: Response{StatusCode: resp.StatusCode, Body: body}}, nil
	}

	if err := fileutil.AtomicWriteFile(dest, resp.Body, 0644); err != nil {
		return nil, errors.Wrapf(err, "unable to write %q", dest)
	}
	return &DownloadResult{
		Response: Response{StatusCode: resp.StatusCode},
		Path:     dest,
	}, nil
}

// Checksums are the digests the repository manager computed for a deployed
// item.
type Checksums struct {
	MD5    string `json:"md5"`
	SHA1   string `json:"sha1"`
	SHA256 string `json:"sha256"`
}

// DeployedItem is the manager's record of a successful deployment.
type DeployedItem struct {
	URI               string    `json:"uri"`
	DownloadURI       string    `json:"downloadUri"`
	Repo              string    `json:"repo"`
	Path              string    `json:"path"`
	Created           string    `json:"created"`
	CreatedBy         string    `json:"createdBy"`
	Size              string    `json:"size"`
	MimeType          string    `json:"mimeType"`
	Checksums         Checksums `json:"checksums"`
	OriginalChecksums Checksums `json:"originalChecksums"`
}

// PublishResult carries the manager's deployment record. Item is nil on
// non-success statuses.
type PublishResult struct {
	Response
	Item *DeployedItem
}

// Publish uploads the file at src as the artifact. The file is first
// streamed through MD5 and SHA-1 accumulators and both digests are declared
// in checksum headers, letting the manager verify integrity and, where
// supported, satisfy the upload from already-stored content.
func (c *Client) Publish(a *artifact.Artifact, src string) (*PublishResult, error) {
	if a == nil {
		return nil, ErrNilArtifact
	}
	u, err := a.URL(c.baseURL)
	if err != nil {
		return nil, err
	}

	sum, err := checksum.SumFile(src)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %q for upload", src)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to stat %q", src)
	}

	req, err := c.newRequest(http.MethodPut, u, f)
	if err != nil {
		return nil, err
	}
	req.ContentLength = info.Size()
	req.Header.Set("X-Checksum-Md5", sum.MD5)
	req.Header.Set("X-Checksum-Sha1", sum.SHA1)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "PUT %s failed", u)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read response from PUT %s", u)
	}

	c.log.WithFields(logrus.Fields{
		"method":   http.MethodPut,
		"url":      u,
		"status":   resp.StatusCode,
		"artifact": a.String(),
		"sha1":     sum.SHA1,
	}).Debug("artifact publish")

	out := &PublishResult{Response: Response{StatusCode: resp.StatusCode, Body: body}}
	if !out.OK() {
		return out, nil
	}

	item := &DeployedItem{}
	if err := json.Unmarshal(body, item); err != nil {
		return out, errors.Wrap(err, "unable to decode deploy response")
	}
	out.Item = item
	return out, nil
}
