// Copyright 2026 The Dhall Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

// ImportMode selects how an import's target is interpreted.
type ImportMode int

const (
	// Code parses the target as a Dhall expression.
	Code ImportMode = iota
	// RawText imports the target verbatim as a text literal ("as Text").
	RawText
)

// FilePrefix anchors a local import path.
type FilePrefix int

const (
	// Absolute paths start at the filesystem root: /foo/bar.
	Absolute FilePrefix = iota
	// Here paths are relative to the importing file's directory: ./foo.
	Here
	// Parent paths are relative to its parent directory: ../foo.
	Parent
	// Home paths are relative to the user's home directory: ~/foo.
	Home
)

func (p FilePrefix) String() string {
	switch p {
	case Absolute:
		return ""
	case Here:
		return "."
	case Parent:
		return ".."
	case Home:
		return "~"
	}
	return "FilePrefix(?)"
}

// LocationKind discriminates the variants of an import location.
type LocationKind int

const (
	// Local is a filesystem path anchored by a FilePrefix.
	Local LocationKind = iota
	// Remote is an http(s) URL.
	Remote
	// Env reads the import from an environment variable.
	Env
	// Missing always fails to resolve; it exists to combine with ?.
	Missing
)

// An ImportLocation names where an import's content comes from. Only
// the fields relevant to Kind are meaningful.
type ImportLocation struct {
	Kind   LocationKind
	Prefix FilePrefix // Local only
	Path   string     // Local: slash-separated relative path
	URL    string     // Remote only
	Var    string     // Env only
}

func (l ImportLocation) String() string {
	switch l.Kind {
	case Local:
		return l.Prefix.String() + "/" + l.Path
	case Remote:
		return l.URL
	case Env:
		return "env:" + l.Var
	case Missing:
		return "missing"
	}
	return "ImportLocation(?)"
}

// An Import describes an external reference before resolution. The
// integrity hash, when present, is carried through but not verified by
// this front end.
type Import struct {
	Mode     ImportMode
	Hash     string // "sha256:..." or empty
	Location ImportLocation
}

func (i *Import) String() string {
	s := i.Location.String()
	if i.Mode == RawText {
		s += " as Text"
	}
	return s
}
