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
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/silverbp/artifactory-go/pkg/artifact"
)

// Message is one line of the manager's copy report.
type Message struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// CopyResult carries the manager's copy report.
type CopyResult struct {
	Response
	Messages []Message
}

// Copy copies the artifact into destRepo on the server side. The
// destination path reuses the artifact's group, id, version, extension,
// and separator under the new repository; an archive subpath is never part
// of the destination.
func (c *Client) Copy(a *artifact.Artifact, destRepo string) (*CopyResult, error) {
	if a == nil {
		return nil, ErrNilArtifact
	}
	srcURL, err := a.URL(c.apiURL + "/copy")
	if err != nil {
		return nil, err
	}

	dest := a.InRepo(destRepo)
	dest.SetSubpath("")
	destPath, err := dest.Path()
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("to", destPath)

	res, err := c.do(http.MethodPost, srcURL+"?"+q.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	out := &CopyResult{Response: res}
	if !res.OK() {
		return out, nil
	}

	var payload struct {
		Messages []Message `json:"messages"`
	}
	if err := json.Unmarshal(res.Body, &payload); err != nil {
		return out, errors.Wrap(err, "unable to decode copy response")
	}
	out.Messages = payload.Messages
	return out, nil
}
