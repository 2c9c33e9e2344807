// Package yaegi loads generated artifacts through an embedded Go interpreter.
package yaegi

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"reflect"
	"strconv"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactLoader = (*Loader)(nil)

// Loader implements ports.ArtifactLoader on a single yaegi interpreter.
// All artifacts are evaluated into one shared package scope, so a unit can
// reference names declared by units loaded before it. The interpreter's
// load-once behavior is enforced by the caller, not here.
type Loader struct {
	interp    *interp.Interpreter
	include   func(name string) error
	contextFn func() domain.Context
}

// New creates a Loader. The interpreter is created lazily on first use so
// that OnInclude and OnContext can be installed beforehand.
func New() *Loader {
	return &Loader{}
}

// OnInclude installs the handler backing the runtime include function.
func (l *Loader) OnInclude(handler func(name string) error) {
	l.include = handler
}

// OnContext installs the shared context provider.
func (l *Loader) OnContext(provider func() domain.Context) {
	l.contextFn = provider
}

// ensure creates the interpreter and registers the stdlib plus the weld
// runtime package that generated artifacts import.
func (l *Loader) ensure() error {
	if l.interp != nil {
		return nil
	}

	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return zerr.Wrap(err, "failed to register stdlib symbols")
	}

	exports := interp.Exports{
		domain.RuntimePackage + "/" + domain.RuntimePackage: {
			domain.RuntimeIncludeFunc:       reflect.ValueOf(l.runtimeInclude),
			domain.RuntimeSharedContextFunc: reflect.ValueOf(l.runtimeSharedContext),
			domain.RuntimeNewContextFunc:    reflect.ValueOf(func() map[string]any { return domain.NewContext() }),
		},
	}
	if err := i.Use(exports); err != nil {
		return zerr.Wrap(err, "failed to register runtime symbols")
	}

	l.interp = i
	return nil
}

// runtimeInclude backs weld.Include inside artifacts. Includes are resolved
// depth-first before the dependent artifact is evaluated, so by the time this
// runs during evaluation the unit is normally already merged and the handler
// returns immediately.
func (l *Loader) runtimeInclude(name string) bool {
	if l.include == nil {
		return false
	}
	if err := l.include(name); err != nil {
		// Surfaced by the interpreter as an evaluation error.
		panic(err)
	}
	return true
}

func (l *Loader) runtimeSharedContext() map[string]any {
	if l.contextFn == nil {
		return domain.NewContext()
	}
	return l.contextFn()
}

// Includes returns the unit names referenced by the artifact's generated
// include calls, in order of appearance.
func (l *Loader) Includes(artifactPath string) ([]string, error) {
	file, err := parseArtifact(artifactPath)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok || len(vs.Names) != 1 || vs.Names[0].Name != "_" || len(vs.Values) != 1 {
				continue
			}
			if name, ok := includeCallArg(vs.Values[0]); ok {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// includeCallArg extracts the unit name from a weld.Include("name") call.
func includeCallArg(expr ast.Expr) (string, bool) {
	call, ok := expr.(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return "", false
	}
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != domain.RuntimeIncludeFunc {
		return "", false
	}
	pkg, ok := sel.X.(*ast.Ident)
	if !ok || pkg.Name != domain.RuntimePackage {
		return "", false
	}
	lit, ok := call.Args[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}
	name, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}
	return name, true
}

// Load evaluates the artifact and returns its export manifest: every
// top-level var, const and func, in declaration order. Type declarations stay
// interpreter-side; they are visible to later units through the shared scope
// but carry no value to merge.
func (l *Loader) Load(identifier, artifactPath string) (*domain.ExportManifest, error) {
	if err := l.ensure(); err != nil {
		return nil, err
	}

	names, err := topLevelNames(artifactPath)
	if err != nil {
		return nil, err
	}

	if err := l.eval(identifier, artifactPath); err != nil {
		return nil, err
	}

	manifest := domain.NewExportManifest()
	for _, name := range names {
		v, err := l.interp.Eval(name)
		if err != nil {
			return nil, zerr.With(
				zerr.With(zerr.Wrap(domain.ErrLoadFailed, err.Error()), "identifier", identifier),
				"symbol", name,
			)
		}
		manifest.Add(name, v)
	}
	return manifest, nil
}

// eval evaluates the artifact in two steps: the bootstrap declarations first,
// then the body. Yaegi's global-initializer analysis reports a spurious
// definition loop when a body var reads mycontext declared in the same
// source, but resolves the same reference fine against a binding evaluated
// earlier, just as it does for names declared by previously loaded units.
func (l *Loader) eval(identifier, artifactPath string) error {
	src, err := os.ReadFile(artifactPath) //nolint:gosec // Path is computed by the translator
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLoadFailed, err.Error()), "artifact", artifactPath)
	}

	head, body := splitBootstrap(src, artifactPath)
	for _, chunk := range [][]byte{head, body} {
		if len(bytes.TrimSpace(chunk)) == 0 {
			continue
		}
		if _, err := l.interp.Eval(string(chunk)); err != nil {
			return zerr.With(
				zerr.With(zerr.Wrap(domain.ErrLoadFailed, err.Error()), "identifier", identifier),
				"artifact", artifactPath,
			)
		}
	}
	return nil
}

// splitBootstrap cuts the artifact source after its last bootstrap var
// declaration (mycontext, callfunc, callargs). Sources without a bootstrap,
// including unparsable ones, evaluate in one piece.
func splitBootstrap(src []byte, artifactPath string) ([]byte, []byte) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, artifactPath, src, 0)
	if err != nil {
		return src, nil
	}

	cut := 0
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok || len(vs.Names) != 1 || !domain.IsInfraName(vs.Names[0].Name) {
				continue
			}
			if end := fset.Position(gen.End()).Offset; end > cut {
				cut = end
			}
		}
	}
	if cut == 0 || cut >= len(src) {
		return src, nil
	}
	return src[:cut], src[cut:]
}

// topLevelNames returns the artifact's top-level var, const and func names in
// declaration order.
func topLevelNames(artifactPath string) ([]string, error) {
	file, err := parseArtifact(artifactPath)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				names = append(names, d.Name.Name)
			}
		case *ast.GenDecl:
			if d.Tok != token.VAR && d.Tok != token.CONST {
				continue
			}
			for _, spec := range d.Specs {
				vs, ok := spec.(*ast.ValueSpec)
				if !ok {
					continue
				}
				for _, ident := range vs.Names {
					if ident.Name == "_" {
						continue
					}
					names = append(names, ident.Name)
				}
			}
		}
	}
	return names, nil
}

func parseArtifact(artifactPath string) (*ast.File, error) {
	file, err := parser.ParseFile(token.NewFileSet(), artifactPath, nil, 0)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrLoadFailed, err.Error()), "artifact", artifactPath)
	}
	return file, nil
}
