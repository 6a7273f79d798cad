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

// Package artifact models the coordinates of a single versioned binary
// artifact within a repository manager and derives the canonical paths,
// URLs, and file names used to address it.
package artifact // import "github.com/silverbp/artifactory-go/pkg/artifact"

import (
	"fmt"
	"strings"
)

// NuGetExtension is the artifact extension that selects the dotted
// version separator used by NuGet-style package names.
const NuGetExtension = "nupkg"

const (
	defaultSeparator = "-"
	nugetSeparator   = "."
)

// MissingFieldError is returned when a path, URL, or file name is requested
// from an artifact whose version or extension has not been set yet.
// Identity-only artifacts are valid arguments for search operations; the
// transfer coordinates are required lazily, at use time.
type MissingFieldError struct {
	Fields []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("artifact is missing %s", strings.Join(e.Fields, " and "))
}

// Artifact identifies one binary artifact version within a repository.
// Construct it with the three required identity coordinates and apply
// options or setters for the rest before calling any of the
// path-producing methods.
type Artifact struct {
	artifactID string
	groupID    string
	repo       string
	version    string
	extension  string
	subpath    string
	remote     bool

	// versionSeparator joins the artifact id and version in file names.
	// It is derived exactly once, at construction time.
	versionSeparator string
}

// Option configures optional artifact coordinates at construction time.
type Option func(*Artifact)

// WithVersion sets the artifact version.
func WithVersion(version string) Option {
	return func(a *Artifact) {
		a.version = version
	}
}

// WithExtension sets the artifact extension, e.g. "jar" or "nupkg".
func WithExtension(extension string) Option {
	return func(a *Artifact) {
		a.extension = extension
	}
}

// WithVersionSeparator overrides the separator placed between the artifact
// id and version in file names. An explicit separator wins over the
// extension-derived default.
func WithVersionSeparator(separator string) Option {
	return func(a *Artifact) {
		a.versionSeparator = separator
	}
}

// WithSubpath addresses an entry inside an archive artifact. The subpath is
// appended to the artifact path after a "!/" marker.
func WithSubpath(subpath string) Option {
	return func(a *Artifact) {
		a.subpath = subpath
	}
}

// WithRemote controls whether remote and virtual repositories are included
// when searching for versions of the artifact. Defaults to true.
func WithRemote(remote bool) Option {
	return func(a *Artifact) {
		a.remote = remote
	}
}

// New returns an artifact addressed by the given id, group, and repository.
//
// The version separator is fixed here: an explicit WithVersionSeparator
// wins, NuGet packages get ".", and everything else gets "-". Setting the
// extension later does not re-derive it.
func New(artifactID, groupID, repo string, opts ...Option) *Artifact {
	a := &Artifact{
		artifactID: artifactID,
		groupID:    groupID,
		repo:       repo,
		remote:     true,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.versionSeparator == "" {
		if a.extension == NuGetExtension {
			a.versionSeparator = nugetSeparator
		} else {
			a.versionSeparator = defaultSeparator
		}
	}
	return a
}

// ArtifactID returns the stable artifact identifier.
func (a *Artifact) ArtifactID() string { return a.artifactID }

// GroupID returns the hierarchical namespace of the artifact.
func (a *Artifact) GroupID() string { return a.groupID }

// SetGroupID replaces the artifact group.
func (a *Artifact) SetGroupID(groupID string) { a.groupID = groupID }

// Repo returns the name of the repository the artifact lives in.
func (a *Artifact) Repo() string { return a.repo }

// Version returns the artifact version, which may be empty until set.
func (a *Artifact) Version() string { return a.version }

// SetVersion sets the artifact version.
func (a *Artifact) SetVersion(version string) { a.version = version }

// Extension returns the artifact extension, which may be empty until set.
func (a *Artifact) Extension() string { return a.extension }

// SetExtension sets the artifact extension. The version separator derived
// at construction time is left untouched.
func (a *Artifact) SetExtension(extension string) { a.extension = extension }

// Subpath returns the archive-entry subpath, empty when the artifact is
// addressed as a whole.
func (a *Artifact) Subpath() string { return a.subpath }

// SetSubpath sets the archive-entry subpath.
func (a *Artifact) SetSubpath(subpath string) { a.subpath = subpath }

// Remote reports whether remote and virtual repositories participate in
// version searches for this artifact.
func (a *Artifact) Remote() bool { return a.remote }

// SetRemote sets the remote search flag.
func (a *Artifact) SetRemote(remote bool) { a.remote = remote }

// VersionSeparator returns the separator between id and version in file
// names.
func (a *Artifact) VersionSeparator() string { return a.versionSeparator }

// SetVersionSeparator overrides the derived version separator.
func (a *Artifact) SetVersionSeparator(separator string) { a.versionSeparator = separator }

// missingFields returns the lazily required coordinates that are unset.
func (a *Artifact) missingFields() error {
	var fields []string
	if a.version == "" {
		fields = append(fields, "version")
	}
	if a.extension == "" {
		fields = append(fields, "extension")
	}
	if len(fields) > 0 {
		return &MissingFieldError{Fields: fields}
	}
	return nil
}

// FileName returns the file name segment of the artifact,
// id<separator>version.extension.
func (a *Artifact) FileName() (string, error) {
	if err := a.missingFields(); err != nil {
		return "", err
	}
	return a.artifactID + a.versionSeparator + a.version + "." + a.extension, nil
}

// Path returns the repository-relative path of the artifact:
// /repo/groupID/artifactID/<FileName>. The group is inserted verbatim as a
// single path segment, never expanded from dotted notation. When a subpath
// is set, "!/" and the subpath are appended to address an entry inside the
// archive.
func (a *Artifact) Path() (string, error) {
	name, err := a.FileName()
	if err != nil {
		return "", err
	}
	p := "/" + a.repo + "/" + a.groupID + "/" + a.artifactID + "/" + name
	if a.subpath != "" {
		p += "!/" + a.subpath
	}
	return p, nil
}

// URL returns the artifact path joined onto base. The base is used as
// given; callers are expected to pass it without a trailing slash.
func (a *Artifact) URL(base string) (string, error) {
	p, err := a.Path()
	if err != nil {
		return "", err
	}
	return base + p, nil
}

// Name returns the dot-joined display name, artifactID.version.extension,
// regardless of the version separator.
func (a *Artifact) Name() (string, error) {
	if err := a.missingFields(); err != nil {
		return "", err
	}
	return a.artifactID + "." + a.version + "." + a.extension, nil
}

// InRepo returns a copy of the artifact addressed under another
// repository. Every other coordinate, including the derived separator, is
// carried over.
func (a *Artifact) InRepo(repo string) *Artifact {
	copied := *a
	copied.repo = repo
	return &copied
}

// String renders the artifact for logs: artifactID.version when the
// version is set, the bare artifactID otherwise. Display only, never an
// identity comparison.
func (a *Artifact) String() string {
	if a.version != "" {
		return a.artifactID + "." + a.version
	}
	return a.artifactID
}
