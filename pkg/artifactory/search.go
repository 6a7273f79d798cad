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
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"

	"github.com/silverbp/artifactory-go/pkg/artifact"
)

// LatestVersionResult carries the raw text body of a latest-version query.
type LatestVersionResult struct {
	Response
	Version string
}

// LatestVersion resolves the latest version of the artifact known to the
// repository manager. The artifact's version, when set, acts as a wildcard
// prefix filter; the filter is always wildcard-suffixed, so an identity-only
// artifact matches every version.
func (c *Client) LatestVersion(a *artifact.Artifact) (*LatestVersionResult, error) {
	if a == nil {
		return nil, ErrNilArtifact
	}

	q := url.Values{}
	q.Set("g", a.GroupID())
	q.Set("a", a.ArtifactID())
	q.Set("repos", a.Repo())
	q.Set("remote", remoteFlag(a))
	q.Set("v", a.Version()+"*")

	res, err := c.do(http.MethodGet, c.apiURL+"/search/latestVersion?"+q.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	out := &LatestVersionResult{Response: res}
	if res.OK() {
		out.Version = string(res.Body)
	}
	return out, nil
}

// VersionEntry is one version known to the version search endpoint.
type VersionEntry struct {
	Version     string `json:"version"`
	Integration bool   `json:"integration"`
}

// VersionsResult lists every version of an artifact.
type VersionsResult struct {
	Response
	Results []VersionEntry
}

// Versions lists the versions of the artifact known to the repository
// manager.
func (c *Client) Versions(a *artifact.Artifact) (*VersionsResult, error) {
	if a == nil {
		return nil, ErrNilArtifact
	}

	q := url.Values{}
	q.Set("g", a.GroupID())
	q.Set("a", a.ArtifactID())
	q.Set("repos", a.Repo())
	q.Set("remote", remoteFlag(a))

	res, err := c.do(http.MethodGet, c.apiURL+"/search/versions?"+q.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	out := &VersionsResult{Response: res}
	if !res.OK() {
		return out, nil
	}

	var payload struct {
		Results []VersionEntry `json:"results"`
	}
	if err := json.Unmarshal(res.Body, &payload); err != nil {
		return out, errors.Wrap(err, "unable to decode version search response")
	}
	out.Results = payload.Results
	return out, nil
}

// Highest resolves the highest semantic version in the result set matching
// the given constraint, e.g. "^1.0" or ">=2.0.0-0". An empty constraint
// matches everything. Entries that do not parse as semver are ignored.
func (r *VersionsResult) Highest(constraint string) (string, error) {
	var cons *semver.Constraints
	if constraint != "" {
		parsed, err := semver.NewConstraint(constraint)
		if err != nil {
			return "", errors.Wrapf(err, "invalid version constraint %q", constraint)
		}
		cons = parsed
	}

	var best *semver.Version
	var bestRaw string
	for _, entry := range r.Results {
		v, err := semver.NewVersion(entry.Version)
		if err != nil {
			continue
		}
		if cons != nil && !cons.Check(v) {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best = v
			bestRaw = entry.Version
		}
	}
	if best == nil {
		return "", errors.Errorf("no version satisfies constraint %q", constraint)
	}
	return bestRaw, nil
}

// SearchEntry is one hit of an artifact name search.
type SearchEntry struct {
	URI string `json:"uri"`
}

// SearchResult lists the storage URIs matching a name search.
type SearchResult struct {
	Response
	Results []SearchEntry
}

// SearchArtifacts searches the given repositories for artifacts matching
// name. With no repositories given, the manager searches everywhere it is
// allowed to.
func (c *Client) SearchArtifacts(name string, repos ...string) (*SearchResult, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("repos", strings.Join(repos, ","))

	res, err := c.do(http.MethodGet, c.apiURL+"/search/artifact?"+q.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	out := &SearchResult{Response: res}
	if !res.OK() {
		return out, nil
	}

	var payload struct {
		Results []SearchEntry `json:"results"`
	}
	if err := json.Unmarshal(res.Body, &payload); err != nil {
		return out, errors.Wrap(err, "unable to decode artifact search response")
	}
	out.Results = payload.Results
	return out, nil
}
