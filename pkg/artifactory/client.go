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

// Package artifactory is a client for a JFrog Artifactory-style binary
// repository manager. Every operation is a single stateless HTTP round
// trip; the client holds nothing but its configuration, so concurrent use
// from multiple goroutines is safe by construction.
//
// Transport-level failures are returned as data, not errors: each result
// embeds the raw Response so bulk callers can inspect the status code and
// keep going. The error return covers validation, transport, local I/O,
// and malformed-success-body failures only.
package artifactory // import "github.com/silverbp/artifactory-go/pkg/artifactory"

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/silverbp/artifactory-go/internal/tlsutil"
	"github.com/silverbp/artifactory-go/internal/version"
	"github.com/silverbp/artifactory-go/pkg/artifact"
)

// apiKeyHeader carries the static API key on every request.
const apiKeyHeader = "X-JFrog-Art-Api"

// ErrNilArtifact is returned when a nil artifact is passed to an operation.
var ErrNilArtifact = errors.New("nil artifact")

type (
	// Client is a gateway to one repository manager, bound to a base URL
	// and an API key. It is stateless across calls.
	Client struct {
		baseURL   string
		apiURL    string
		apiKey    string
		userAgent string
		timeout   time.Duration
		log       logrus.FieldLogger

		httpClient *http.Client

		certFile              string
		keyFile               string
		caFile                string
		insecureSkipVerifyTLS bool

		err error // pass any errors from the ClientOption functions
	}

	// ClientOption allows specifying various settings configurable by the
	// user for overriding the defaults used when creating a new client
	ClientOption func(*Client)
)

// NewClient returns a client for the repository manager at baseURL,
// authenticating every request with apiKey. Trailing slashes are stripped
// from baseURL; the manager's /api root is derived from it.
func NewClient(baseURL, apiKey string, options ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	client := &Client{
		baseURL:   baseURL,
		apiURL:    baseURL + "/api",
		apiKey:    apiKey,
		userAgent: version.GetUserAgent(),
		timeout:   time.Second * 120,
		log:       logrus.StandardLogger(),
	}
	for _, option := range options {
		option(client)
		if client.err != nil {
			return nil, client.popError()
		}
	}
	if client.httpClient == nil {
		transport := &http.Transport{
			Proxy: http.ProxyFromEnvironment,
		}
		if (client.certFile != "" && client.keyFile != "") || client.caFile != "" || client.insecureSkipVerifyTLS {
			tlsConf, err := tlsutil.NewTLSConfig(
				tlsutil.WithInsecureSkipVerify(client.insecureSkipVerifyTLS),
				tlsutil.WithCertKeyPairFiles(client.certFile, client.keyFile),
				tlsutil.WithCAFile(client.caFile),
			)
			if err != nil {
				return nil, errors.Wrap(err, "can't create TLS config for client")
			}
			transport.TLSClientConfig = tlsConf
		}
		client.httpClient = &http.Client{
			Transport: transport,
			Timeout:   client.timeout,
		}
	}
	return client, nil
}

func (c *Client) popError() error {
	err := c.err
	c.err = nil
	return err
}

// ClientOptHTTPClient returns a function that sets the httpClient setting
// on a client options set. A caller-provided client is used as-is; the
// timeout and TLS options only apply to the default client.
func ClientOptHTTPClient(httpClient *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = httpClient
	}
}

// ClientOptTimeout returns a function that sets the request timeout of the
// default HTTP client. Defaults to 120 seconds.
func ClientOptTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) {
		client.timeout = timeout
	}
}

// ClientOptUserAgent returns a function that sets the User-Agent sent on
// every request.
func ClientOptUserAgent(userAgent string) ClientOption {
	return func(client *Client) {
		client.userAgent = userAgent
	}
}

// ClientOptLogger returns a function that sets the logger the client emits
// debug lines to. The logger is injected, not owned; it defaults to the
// logrus standard logger.
func ClientOptLogger(log logrus.FieldLogger) ClientOption {
	return func(client *Client) {
		client.log = log
	}
}

// ClientOptTLSClientConfig returns a function that sets the TLS client
// material loaded into the default transport.
func ClientOptTLSClientConfig(certFile, keyFile, caFile string) ClientOption {
	return func(client *Client) {
		client.certFile = certFile
		client.keyFile = keyFile
		client.caFile = caFile
	}
}

// ClientOptInsecureSkipVerifyTLS returns a function that disables server
// certificate verification on the default transport.
func ClientOptInsecureSkipVerifyTLS(insecureSkipVerifyTLS bool) ClientOption {
	return func(client *Client) {
		client.insecureSkipVerifyTLS = insecureSkipVerifyTLS
	}
}

// Response is the uniform raw result of one HTTP round trip. The status
// code and body are always retained, whatever the status; typed payloads
// are decoded from the body only on success statuses.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response carries a 2xx status.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// newRequest builds a request carrying the API key and User-Agent headers.
func (c *Client) newRequest(method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	return req, nil
}

// do performs one round trip and drains the response body into a Response.
func (c *Client) do(method, url string, headers http.Header, body io.Reader) (Response, error) {
	req, err := c.newRequest(method, url, body)
	if err != nil {
		return Response{}, err
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, errors.Wrapf(err, "%s %s failed", method, url)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, errors.Wrapf(err, "unable to read response from %s %s", method, url)
	}

	c.log.WithFields(logrus.Fields{
		"method": method,
		"url":    url,
		"status": resp.StatusCode,
	}).Debug("artifactory round trip")

	return Response{StatusCode: resp.StatusCode, Body: b}, nil
}

// remoteFlag serializes the artifact's remote-search flag the way the
// search API expects it.
func remoteFlag(a *artifact.Artifact) string {
	if a.Remote() {
		return "1"
	}
	return "0"
}
