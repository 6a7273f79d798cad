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
	"regexp"

	"github.com/pkg/errors"

	"github.com/silverbp/artifactory-go/pkg/artifact"
)

// SemVersionProperty is the derived property the client adds to metadata
// responses, resolving a NuGet informational version into a deterministic
// semantic version.
const SemVersionProperty = "nuget.sem_version"

// semVersionPattern matches a package-manager-style informational version
// embedding a commit count and a short commit hash, e.g.
// "1.2.3.4+56g1a2b3c4".
var semVersionPattern = regexp.MustCompile(`\d+\.\d+(\.\d+)?(\.\d+)?\+\d+g[0-9a-f]{7}`)

// ItemProperties is the storage API's properties view of one item.
type ItemProperties struct {
	URI        string              `json:"uri"`
	Properties map[string][]string `json:"properties"`
}

// MetadataResult carries the decoded properties of one artifact. Item is
// nil on non-success statuses.
type MetadataResult struct {
	Response
	Item *ItemProperties
}

// Metadata fetches the properties of the artifact from the storage API.
// When the properties carry a NuGet description, the derived
// nuget.sem_version property is added: the informational version embedded
// in the description when present, the artifact's own version otherwise.
// Responses without a properties object are returned undecorated.
func (c *Client) Metadata(a *artifact.Artifact) (*MetadataResult, error) {
	if a == nil {
		return nil, ErrNilArtifact
	}
	u, err := a.URL(c.apiURL + "/storage")
	if err != nil {
		return nil, err
	}

	res, err := c.do(http.MethodGet, u+"?properties", nil, nil)
	if err != nil {
		return nil, err
	}

	out := &MetadataResult{Response: res}
	if !res.OK() {
		return out, nil
	}

	item := &ItemProperties{}
	if err := json.Unmarshal(res.Body, item); err != nil {
		return out, errors.Wrap(err, "unable to decode properties response")
	}
	if item.Properties != nil {
		deriveSemVersion(item.Properties, a.Version())
	}
	out.Item = item
	return out, nil
}

func deriveSemVersion(props map[string][]string, fallback string) {
	descriptions := props["nuget.description"]
	if len(descriptions) == 0 {
		return
	}
	if match := semVersionPattern.FindString(descriptions[0]); match != "" {
		props[SemVersionProperty] = []string{match}
		return
	}
	props[SemVersionProperty] = []string{fallback}
}
