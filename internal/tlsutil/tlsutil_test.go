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

package tlsutil

import (
	"path/filepath"
	"testing"
)

func TestNewTLSConfigDefaults(t *testing.T) {
	cfg, err := NewTLSConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify to default to false")
	}
	if len(cfg.Certificates) != 0 || cfg.RootCAs != nil {
		t.Error("expected no cert material without options")
	}
}

func TestNewTLSConfigInsecureSkipVerify(t *testing.T) {
	cfg, err := NewTLSConfig(WithInsecureSkipVerify(true))
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.InsecureSkipVerify {
		t.Error("expected InsecureSkipVerify to be set")
	}
}

func TestNewTLSConfigMissingFiles(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.pem")

	if _, err := NewTLSConfig(WithCertKeyPairFiles(missing, missing)); err == nil {
		t.Error("expected an error for a missing cert file")
	}
	if _, err := NewTLSConfig(WithCAFile(missing)); err == nil {
		t.Error("expected an error for a missing CA file")
	}
}

func TestNewTLSConfigEmptyFilenamesIgnored(t *testing.T) {
	if _, err := NewTLSConfig(WithCertKeyPairFiles("", ""), WithCAFile("")); err != nil {
		t.Errorf("empty file names are not an error: %s", err)
	}
}
