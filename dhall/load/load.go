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

// Package load loads Dhall files and resolves their imports.
//
// Imports are resolved depth-first: each imported file is itself loaded
// and resolved, rooted at its own directory, before it is spliced into
// the importing expression. The a ? b operator tries its left operand
// first and falls back to the right one; when both fail, the error of
// the right operand is reported, as it is the last alternative tried.
package load // import "dhall-lang.org/go/dhall/load"

import (
	"fmt"
	"os"
	"path/filepath"

	"dhall-lang.org/go/dhall/ast"
	"dhall-lang.org/go/dhall/errors"
	"dhall-lang.org/go/dhall/parser"
	"dhall-lang.org/go/dhall/token"
)

// A Root anchors the relative imports of an expression: the directory
// of the file the expression came from.
type Root struct {
	// Dir is the directory relative imports are interpreted against.
	// Empty means the process working directory.
	Dir string
}

// A Config configures loading. A nil Config stands for the zero one.
type Config struct {
	// SkipResolve leaves imports in the returned tree as [*ast.Embed]
	// nodes instead of resolving them.
	SkipResolve bool

	// RejectImports makes [LoadFile] fail with a positioned error when
	// the file contains any import, instead of resolving it. It is for
	// callers that must reject unresolved input outright, such as a
	// formatting-only analysis. It takes precedence over SkipResolve.
	RejectImports bool
}

// LoadFile reads, parses and, unless cfg.SkipResolve is set, resolves
// the Dhall file at path. Relative imports inside the file are rooted
// at the file's own directory. The resolved tree contains no Embed
// nodes.
func LoadFile(path string, cfg *Config) (ast.Expr, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	l := &loader{cfg: cfg, inProgress: map[string]bool{}}
	return l.loadFile(path)
}

// Resolve resolves every import of e relative to root. It is for
// expressions obtained outside [LoadFile], such as parsed command line
// arguments; files imported by e still root their own imports at their
// own directories.
func Resolve(e ast.Expr, root Root, cfg *Config) (ast.Expr, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	l := &loader{cfg: cfg, inProgress: map[string]bool{}}
	return l.resolve(e, root)
}

type loader struct {
	cfg *Config

	// inProgress holds the canonical paths of the files on the current
	// import chain. Reaching one of them again is a cycle. Entries are
	// removed on the way out so that a diamond (two imports of the same
	// file through different paths) is not mistaken for a cycle.
	inProgress map[string]bool
}

func (l *loader) loadFile(path string) (ast.Expr, error) {
	canon, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if l.inProgress[canon] {
		return nil, &CycleError{Path: canon}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	e, err := parser.ParseFile(path, src)
	if err != nil {
		return nil, err
	}
	if l.cfg.RejectImports {
		if em := ast.FirstEmbed(e); em != nil {
			file := token.NewFile(path, src)
			return nil, errors.Newf(file.Position(em.Span().Start),
				"unresolved import %s", em.Import)
		}
		return e, nil
	}
	if l.cfg.SkipResolve {
		return e, nil
	}

	l.inProgress[canon] = true
	defer delete(l.inProgress, canon)
	return l.resolve(e, Root{Dir: filepath.Dir(path)})
}

func (l *loader) resolve(e ast.Expr, root Root) (ast.Expr, error) {
	if l.cfg.SkipResolve {
		return e, nil
	}
	return ast.ResolveEmbeds(e, func(em *ast.Embed) (ast.Expr, error) {
		out, err := l.loadImport(em.Import, root)
		if err != nil {
			return nil, fmt.Errorf("import %s: %w", em.Import, err)
		}
		return out, nil
	})
}

func (l *loader) loadImport(imp *ast.Import, root Root) (ast.Expr, error) {
	target, err := l.targetPath(imp, root)
	if err != nil {
		return nil, err
	}
	if imp.Mode == ast.RawText {
		src, err := os.ReadFile(target)
		if err != nil {
			return nil, err
		}
		return &ast.TextLit{Chunks: []ast.Chunk{{Text: string(src)}}}, nil
	}
	return l.loadFile(target)
}

// targetPath maps a local import location to a filesystem path,
// interpreting it against the importing file's directory.
func (l *loader) targetPath(imp *ast.Import, root Root) (string, error) {
	loc := imp.Location
	if loc.Kind != ast.Local {
		return "", &UnsupportedError{Import: imp}
	}
	rel := filepath.FromSlash(loc.Path)
	switch loc.Prefix {
	case ast.Here:
		return filepath.Join(root.Dir, rel), nil
	case ast.Parent:
		return filepath.Join(root.Dir, "..", rel), nil
	case ast.Absolute:
		return string(filepath.Separator) + rel, nil
	case ast.Home:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, rel), nil
	}
	return "", &UnsupportedError{Import: imp}
}
