// SPDX-License-Identifier: MIT

package hcldiag

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/katalvlaran/sysdiag/diagram"
)

// fileExt is the extension LoadAll looks for inside directories.
const fileExt = ".hcl"

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger for load progress. Panics on nil.
func WithLogger(logger *slog.Logger) Option {
	if logger == nil {
		panic("hcldiag: WithLogger(nil)")
	}
	return func(l *Loader) { l.logger = logger }
}

// Loader reads diagram description files.
type Loader struct {
	logger *slog.Logger
}

// NewLoader returns a Loader; without options it logs nowhere.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Parse builds the System described by src. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*diagram.System, error) {
	return NewLoader().Parse(context.Background(), src, filename)
}

// Parse builds the System described by src.
func (l *Loader) Parse(ctx context.Context, src []byte, filename string) (*diagram.System, error) {
	// hclparse caches by filename, so every call gets its own parser.
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("Parse(%q): %w: %w", filename, ErrSyntax, diags)
	}
	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("Parse(%q): %w: %w", filename, ErrSyntax, diags)
	}
	if len(content.Blocks) != 1 {
		return nil, fmt.Errorf("Parse(%q): found %d: %w", filename, len(content.Blocks), ErrNoSystem)
	}

	sys, err := buildSystem(content.Blocks[0])
	if err != nil {
		return nil, fmt.Errorf("Parse(%q): %w", filename, err)
	}
	l.logger.DebugContext(ctx, "hcldiag: parsed system",
		"file", filename, "system", sys.Name(),
		"subsystems", len(sys.Subsystems()), "wires", len(sys.Wires()))
	return sys, nil
}

// LoadFile reads and parses one description file.
func (l *Loader) LoadFile(ctx context.Context, path string) (*diagram.System, error) {
	l.logger.DebugContext(ctx, "hcldiag: loading file", "path", path)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadFile: %w", err)
	}
	return l.Parse(ctx, src, path)
}

// LoadAll loads every path; directories are walked for *.hcl files in
// lexical order. A path that does not exist is skipped. The first failing
// file aborts the load.
func (l *Loader) LoadAll(ctx context.Context, paths ...string) ([]*diagram.System, error) {
	files, err := findFiles(paths)
	if err != nil {
		return nil, fmt.Errorf("LoadAll: %w", err)
	}
	l.logger.DebugContext(ctx, "hcldiag: discovered files", "count", len(files))

	out := make([]*diagram.System, 0, len(files))
	for _, f := range files {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("LoadAll: %w", err)
		}
		sys, err := l.LoadFile(ctx, f)
		if err != nil {
			return nil, err
		}
		out = append(out, sys)
	}
	return out, nil
}

func findFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if !info.IsDir() {
			add(path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == fileExt {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
