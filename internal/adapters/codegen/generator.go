// Package codegen emits host-runtime artifacts from source units.
package codegen

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/weld/internal/core/domain"
	"go.trai.ch/weld/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Generator = (*Generator)(nil)

// warningBlock tells readers not to edit the artifact by hand.
var warningBlock = []string{
	"// THIS FILE WILL BE OVERWRITTEN. Do not edit; edit the original source unit.",
	"// Deleting this file forces retranslation.",
}

// Generator writes artifacts: header metadata, a translated body with include
// directives rewritten into recursive merge calls, and a trailing completeness
// fence.
type Generator struct{}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes the artifact described by req. On any I/O failure the
// partially written artifact is removed so a later staleness check cannot
// mistake it for a truncated but genuine generation; if the removal itself
// fails, its error is swallowed and generation still fails.
func (g *Generator) Generate(req domain.GenerationRequest) error {
	absSource, err := filepath.Abs(req.SourcePath)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrGenerationFailed, err.Error()), "source", req.SourcePath)
	}

	if dir := filepath.Dir(req.ArtifactPath); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return zerr.With(zerr.Wrap(domain.ErrGenerationFailed, err.Error()), "dir", dir)
		}
	}

	f, err := os.Create(req.ArtifactPath) //nolint:gosec // Path is computed by the translator
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrGenerationFailed, err.Error()), "artifact", req.ArtifactPath)
	}

	if err := g.write(f, req, absSource); err != nil {
		_ = f.Close()
		_ = os.Remove(req.ArtifactPath)
		return zerr.With(
			zerr.With(zerr.Wrap(domain.ErrGenerationFailed, err.Error()), "source", req.SourcePath),
			"artifact", req.ArtifactPath,
		)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(req.ArtifactPath)
		return zerr.With(zerr.Wrap(domain.ErrGenerationFailed, err.Error()), "artifact", req.ArtifactPath)
	}
	return nil
}

func (g *Generator) write(f *os.File, req domain.GenerationRequest, absSource string) error {
	w := bufio.NewWriter(f)

	lines := []string{
		domain.GeneratedMarker,
		domain.TagLine(absSource),
		"",
	}
	lines = append(lines, warningBlock...)
	lines = append(lines,
		"",
		"package main",
		"",
		fmt.Sprintf("import %s %q", domain.RuntimePackage, domain.RuntimePackage),
		"",
	)

	if req.ShareContext {
		lines = append(lines, fmt.Sprintf("var mycontext = %s.%s()",
			domain.RuntimePackage, domain.RuntimeSharedContextFunc))
	} else {
		lines = append(lines, fmt.Sprintf("var mycontext = %s.%s()",
			domain.RuntimePackage, domain.RuntimeNewContextFunc))
	}
	lines = append(lines,
		fmt.Sprintf("var callfunc = %q", req.CallFunc),
		"var callargs = "+callArgsLiteral(req.CallArgs),
		"",
	)

	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}

	if err := g.writeBody(w, req.SourcePath); err != nil {
		return err
	}

	// The trailing tag is the completeness fence: an artifact whose last line
	// is not the tag was interrupted mid-write.
	if _, err := w.WriteString("\n" + domain.TagLine(absSource) + "\n"); err != nil {
		return err
	}
	return w.Flush()
}

// writeBody streams the source body. Include directives become recursive
// merge calls; every other line is copied unchanged.
func (g *Generator) writeBody(w *bufio.Writer, sourcePath string) error {
	src, err := os.Open(sourcePath) //nolint:gosec // Resolved by the unit resolver
	if err != nil {
		return err
	}
	defer src.Close() //nolint:errcheck // Read-only handle

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, domain.IncludeDirective) {
			name := strings.TrimSpace(line[len(domain.IncludeDirective):])
			line = fmt.Sprintf("var _ = %s.%s(%q)",
				domain.RuntimePackage, domain.RuntimeIncludeFunc, name)
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// callArgsLiteral renders the callargs list as a Go string-slice literal.
func callArgsLiteral(args []string) string {
	var b strings.Builder
	b.WriteString("[]string{")
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", a)
	}
	b.WriteString("}")
	return b.String()
}
