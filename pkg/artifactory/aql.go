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
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// aqlTimeFormat is the timestamp layout AQL modified-time comparisons use.
const aqlTimeFormat = "2006-01-02T15:04:05"

// AQLResult carries the items matched by an AQL query. Results is decoded
// only on status 200; other statuses keep the raw body only.
type AQLResult struct {
	Response
	Results []map[string]interface{}
}

// ArtifactsSince queries the repository manager for every item in repo
// modified after since. Additional property names, when given, are
// requested through an AQL include clause so each result row carries them.
func (c *Client) ArtifactsSince(repo string, since time.Time, additionalProps ...string) (*AQLResult, error) {
	headers := http.Header{}
	headers.Set("Content-Type", "text/plain")

	body := aqlQuery(repo, since, additionalProps)
	res, err := c.do(http.MethodPost, c.apiURL+"/search/aql", headers, strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	out := &AQLResult{Response: res}
	if res.StatusCode != http.StatusOK {
		return out, nil
	}

	var payload struct {
		Results []map[string]interface{} `json:"results"`
	}
	if err := json.Unmarshal(res.Body, &payload); err != nil {
		return out, errors.Wrap(err, "unable to decode aql response")
	}
	out.Results = payload.Results
	return out, nil
}

// aqlQuery renders the items.find body. The spacing inside the find
// criteria is wire-visible and kept stable.
func aqlQuery(repo string, since time.Time, additionalProps []string) string {
	q := fmt.Sprintf(`items.find({"$and": [{"repo": {"$eq": %s}}, {"modified": {"$gt": %s}}]})`,
		jsonString(repo), jsonString(since.Format(aqlTimeFormat)))
	if len(additionalProps) > 0 {
		quoted := make([]string, len(additionalProps))
		for i, prop := range additionalProps {
			quoted[i] = jsonString(prop)
		}
		q += ".include(" + strings.Join(quoted, ",") + ")"
	}
	return q
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
