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

package load_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"
	"github.com/kr/pretty"
	"github.com/rogpeppe/go-internal/txtar"

	"dhall-lang.org/go/dhall/ast"
	"dhall-lang.org/go/dhall/errors"
	"dhall-lang.org/go/dhall/load"
)

// extract writes the files of a txtar archive to a fresh directory and
// returns its path.
func extract(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	ar := txtar.Parse([]byte(archive))
	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, f.Data, 0o666); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoadFile(t *testing.T) {
	dir := extract(t, `
-- a.dhall --
./b.dhall + 1
-- b.dhall --
5
`)
	e, err := load.LoadFile(filepath.Join(dir, "a.dhall"), nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(ast.DebugStr(e), "(5 + 1)"))
	qt.Assert(t, qt.IsFalse(ast.HasEmbeds(e)))
}

func TestLoadRootsImportsAtTargetDirectory(t *testing.T) {
	// c.dhall's own imports are relative to sub/, not to the directory
	// of the file that imported it.
	dir := extract(t, `
-- a.dhall --
./sub/c.dhall
-- sub/c.dhall --
./d.dhall + ../shared.dhall
-- sub/d.dhall --
2
-- shared.dhall --
3
`)
	e, err := load.LoadFile(filepath.Join(dir, "a.dhall"), nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(ast.DebugStr(e), "(2 + 3)"))
}

func TestLoadSkipResolve(t *testing.T) {
	dir := extract(t, `
-- a.dhall --
./b.dhall + 1
`)
	e, err := load.LoadFile(filepath.Join(dir, "a.dhall"), &load.Config{SkipResolve: true})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(ast.HasEmbeds(e)))

	em := ast.FirstEmbed(e)
	qt.Assert(t, qt.Equals(em.Import.Location.Path, "b.dhall"))
}

func TestLoadRejectImports(t *testing.T) {
	dir := extract(t, `
-- a.dhall --
1 + ./b.dhall
-- b.dhall --
5
`)
	_, err := load.LoadFile(filepath.Join(dir, "a.dhall"), &load.Config{RejectImports: true})
	qt.Assert(t, qt.ErrorMatches(err, `unresolved import \./b\.dhall`))

	var perr errors.Error
	qt.Assert(t, qt.ErrorAs(err, &perr))
	pos := perr.Position()
	qt.Assert(t, qt.Equals(pos.Line, 1))
	qt.Assert(t, qt.Equals(pos.Column, 5))

	// An import-free file passes through untouched.
	dir2 := extract(t, `
-- a.dhall --
1 + 2
`)
	e, err := load.LoadFile(filepath.Join(dir2, "a.dhall"), &load.Config{RejectImports: true})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(ast.DebugStr(e), "(1 + 2)"))
}

func TestLoadImportAlt(t *testing.T) {
	dir := extract(t, `
-- a.dhall --
./nonexistent.dhall ? ./b.dhall
-- b.dhall --
5
`)
	e, err := load.LoadFile(filepath.Join(dir, "a.dhall"), nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(ast.DebugStr(e), "5"))
}

func TestLoadImportAltReportsRightError(t *testing.T) {
	// When both alternatives fail, the error of the right one is
	// reported: it is the last alternative tried.
	dir := extract(t, `
-- a.dhall --
./nonexistent.dhall ? env:NO_SUCH_IMPORT
`)
	_, err := load.LoadFile(filepath.Join(dir, "a.dhall"), nil)
	qt.Assert(t, qt.IsNotNil(err))

	var unsupported *load.UnsupportedError
	qt.Assert(t, qt.ErrorAs(err, &unsupported), qt.Commentf("error: %v", err))
	qt.Assert(t, qt.Equals(unsupported.Import.Location.Var, "NO_SUCH_IMPORT"))
}

func TestLoadMissingAlwaysFails(t *testing.T) {
	dir := extract(t, `
-- a.dhall --
missing ? ./b.dhall
-- b.dhall --
1
`)
	e, err := load.LoadFile(filepath.Join(dir, "a.dhall"), nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(ast.DebugStr(e), "1"))

	dir2 := extract(t, `
-- a.dhall --
missing
`)
	_, err = load.LoadFile(filepath.Join(dir2, "a.dhall"), nil)
	var unsupported *load.UnsupportedError
	qt.Assert(t, qt.ErrorAs(err, &unsupported))
}

func TestLoadCycle(t *testing.T) {
	dir := extract(t, `
-- a.dhall --
./b.dhall
-- b.dhall --
./a.dhall
`)
	_, err := load.LoadFile(filepath.Join(dir, "a.dhall"), nil)
	qt.Assert(t, qt.IsNotNil(err))

	var cycle *load.CycleError
	qt.Assert(t, qt.ErrorAs(err, &cycle), qt.Commentf("error: %v", err))
	qt.Assert(t, qt.Equals(filepath.Base(cycle.Path), "a.dhall"))
}

func TestLoadSelfImportCycle(t *testing.T) {
	dir := extract(t, `
-- a.dhall --
./a.dhall
`)
	_, err := load.LoadFile(filepath.Join(dir, "a.dhall"), nil)
	var cycle *load.CycleError
	qt.Assert(t, qt.ErrorAs(err, &cycle))
}

func TestLoadDiamondIsNotACycle(t *testing.T) {
	// d is imported twice through different chains; only reaching a
	// file again on the same chain is a cycle.
	dir := extract(t, `
-- a.dhall --
./b.dhall + ./c.dhall
-- b.dhall --
./d.dhall
-- c.dhall --
./d.dhall
-- d.dhall --
1
`)
	e, err := load.LoadFile(filepath.Join(dir, "a.dhall"), nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(ast.DebugStr(e), "(1 + 1)"))
}

func TestLoadAsText(t *testing.T) {
	dir := extract(t, `
-- a.dhall --
./greeting.txt as Text
-- greeting.txt --
hello
`)
	e, err := load.LoadFile(filepath.Join(dir, "a.dhall"), nil)
	qt.Assert(t, qt.IsNil(err))

	lit, ok := e.(*ast.TextLit)
	qt.Assert(t, qt.IsTrue(ok), qt.Commentf("got %# v", pretty.Formatter(e)))
	qt.Assert(t, qt.Equals(lit.Chunks[0].Text, "hello\n"))
}

func TestResolveExpression(t *testing.T) {
	dir := extract(t, `
-- b.dhall --
5
`)
	em := &ast.Embed{Import: &ast.Import{
		Location: ast.ImportLocation{Kind: ast.Local, Prefix: ast.Here, Path: "b.dhall"},
	}}
	e, err := load.Resolve(em, load.Root{Dir: dir}, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(ast.DebugStr(e), "5"))
}

func TestLoadErrorNamesImport(t *testing.T) {
	dir := extract(t, `
-- a.dhall --
./nonexistent.dhall
`)
	_, err := load.LoadFile(filepath.Join(dir, "a.dhall"), nil)
	qt.Assert(t, qt.ErrorMatches(err, `import \./nonexistent\.dhall: .*`))
	qt.Assert(t, qt.IsTrue(errors.Is(err, os.ErrNotExist)))
}
