package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"

	"martianoff/tsbind/internal/diag"
	"martianoff/tsbind/internal/logger"
	"martianoff/tsbind/internal/transpiler"
	"martianoff/tsbind/internal/transpiler/compose"
	"martianoff/tsbind/internal/transpiler/generator"
	"martianoff/tsbind/internal/transpiler/imports"
)

// DeclarationSuffix selects the files translated by the builder.
const DeclarationSuffix = ".d.ts"

// ModFileName is the directory module file written for each output
// directory.
const ModFileName = "mod.rs"

// Builder orchestrates the translation of a declaration tree.
type Builder struct {
	config     *Config
	transpiler transpiler.Transpiler
	namer      imports.Namer
	// display receives terminal output of diagnostics and failures; nil
	// keeps the builder silent apart from logging.
	display io.Writer
}

// NewBuilder creates a builder for cfg.
func NewBuilder(cfg *Config) *Builder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Builder{
		config:     cfg,
		transpiler: NewTranspiler(cfg),
		namer:      imports.NewNamer(cfg.Output.ModuleSuffix),
	}
}

// NewTranspiler assembles the single-unit pipeline configured by cfg.
func NewTranspiler(cfg *Config) transpiler.Transpiler {
	return transpiler.NewDtsToRustTranspiler(
		transpiler.NewTreeSitterDeclarationParser(),
		compose.NewBinder(compose.Options{Catalog: cfg.BuildCatalog(), ModuleSuffix: cfg.Output.ModuleSuffix}),
		generator.NewRustPrinter(),
	)
}

// WithDisplay makes the builder print diagnostics and failures to w.
func (b *Builder) WithDisplay(w io.Writer) *Builder {
	b.display = w
	return b
}

// UnitReport is the outcome of one declaration file.
type UnitReport struct {
	// Path is the input path relative to the input root, slash separated.
	Path string
	// Output is the written file, empty when the unit produced nothing.
	Output      string
	Items       int
	Diagnostics []diag.Diagnostic
	Err         error
}

// Report summarizes a build.
type Report struct {
	Crate       *Crate
	Units       []UnitReport
	Failed      int
	Diagnostics int
}

// Err returns an error naming the failed units, or nil.
func (r *Report) Err() error {
	if r.Failed == 0 {
		return nil
	}
	var failed []string
	for _, u := range r.Units {
		if u.Err != nil {
			failed = append(failed, u.Path)
		}
	}
	return fmt.Errorf("%d of %d units failed: %s", r.Failed, len(r.Units), strings.Join(failed, ", "))
}

type unit struct {
	src  string
	rel  string
	dir  string // output directory
	stem string
}

// dirModules lists the child modules of one output directory.
type dirModules struct {
	names *treeset.Set
	paths map[string]string // module name -> path relative to the directory
}

// Build translates every declaration file under in into the mirrored tree
// under out. Every unit is attempted; failed units are recorded in the
// report rather than returned. The returned error covers setup problems and
// cancellation.
func (b *Builder) Build(ctx context.Context, in, out string) (*Report, error) {
	crate, err := FindCrateRoot(in)
	if err != nil {
		return nil, err
	}
	slog.Debug("found crate", "root", crate.Root, "name", crate.Name)

	units, err := b.discover(in, out)
	if err != nil {
		return nil, err
	}

	report := &Report{Crate: crate, Units: make([]UnitReport, len(units))}
	var (
		mu   sync.Mutex
		mods = make(map[string]*dirModules)
	)
	addChild := func(dir, name, path string) {
		mu.Lock()
		defer mu.Unlock()
		m, ok := mods[dir]
		if !ok {
			m = &dirModules{names: treeset.NewWithStringComparator(), paths: make(map[string]string)}
			mods[dir] = m
		}
		m.names.Add(name)
		m.paths[name] = path
	}

	jobs := b.config.Output.Jobs
	if jobs <= 0 {
		jobs = 1
	}
	sem := make(chan struct{}, jobs)
	var wg sync.WaitGroup

schedule:
	for i, u := range units {
		select {
		case <-ctx.Done():
			break schedule
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int, u unit) {
			defer wg.Done()
			defer func() { <-sem }()

			r := b.translate(ctx, u)
			if r.Output != "" {
				addChild(u.dir, b.namer.Scope(u.stem), filepath.Base(r.Output))
			}
			report.Units[i] = r
		}(i, u)
	}
	wg.Wait()

	for i := range report.Units {
		r := &report.Units[i]
		if r.Path == "" {
			// never scheduled
			r.Path = units[i].rel
			r.Err = ctx.Err()
		}
		if r.Err != nil {
			report.Failed++
		}
		report.Diagnostics += len(r.Diagnostics)
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	if err := b.writeModFiles(out, mods, addChild); err != nil {
		return report, err
	}
	return report, nil
}

// discover walks the input tree, creating the mirrored output directories.
func (b *Builder) discover(in, out string) ([]unit, error) {
	var units []unit
	err := filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(in, path)
		if err != nil {
			return err
		}
		target := filepath.Join(out, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		if !strings.HasSuffix(d.Name(), DeclarationSuffix) {
			return nil
		}
		units = append(units, unit{
			src:  path,
			rel:  filepath.ToSlash(rel),
			dir:  filepath.Dir(target),
			stem: imports.TrimExtension(d.Name()),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", in, err)
	}
	return units, nil
}

func (b *Builder) translate(ctx context.Context, u unit) UnitReport {
	r := UnitReport{Path: u.rel}
	src, err := os.ReadFile(u.src)
	if err != nil {
		r.Err = err
		return b.finish(r)
	}

	res, err := b.transpiler.Transpile(ctx, src, u.rel)
	if res != nil {
		r.Diagnostics = res.Diagnostics
		r.Items = res.Items
	}
	if err != nil {
		r.Err = err
		return b.finish(r)
	}
	if res.Code == "" {
		return b.finish(r)
	}

	target := filepath.Join(u.dir, u.stem+".rs")
	if err := os.WriteFile(target, []byte(res.Code), 0644); err != nil {
		r.Err = fmt.Errorf("writing %s: %w", target, err)
		return b.finish(r)
	}
	r.Output = target
	return b.finish(r)
}

// finish logs and displays the outcome of a unit.
func (b *Builder) finish(r UnitReport) UnitReport {
	log := logger.With("unit", r.Path)
	for _, d := range r.Diagnostics {
		log.Warn(d.Message, "kind", d.Kind.String(), "location", d.Location())
		if b.display != nil {
			logger.PrintDiagnostic(b.display, d)
		}
	}
	if r.Err != nil {
		logger.LogUnitFailed(r.Path, r.Err)
		if b.display != nil {
			logger.PrintError(b.display, r.Path, r.Err)
		}
		return r
	}
	logger.LogUnit(r.Path, r.Items, len(r.Diagnostics))
	return r
}

// writeModFiles declares the child modules of every output directory,
// deepest first so that a directory is listed in its parent once it has a
// module file of its own. A directory with a sibling `<dir>.rs` gets its
// declarations appended there instead of a mod.rs.
func (b *Builder) writeModFiles(out string, mods map[string]*dirModules, addChild func(dir, name, path string)) error {
	pending := make(map[string]bool, len(mods))
	for dir := range mods {
		pending[dir] = true
	}
	for len(pending) > 0 {
		dirs := make([]string, 0, len(pending))
		for dir := range pending {
			dirs = append(dirs, dir)
		}
		sort.Slice(dirs, func(i, j int) bool {
			di, dj := strings.Count(dirs[i], string(filepath.Separator)), strings.Count(dirs[j], string(filepath.Separator))
			if di != dj {
				return di > dj
			}
			return dirs[i] < dirs[j]
		})
		dir := dirs[0]
		delete(pending, dir)

		named := dir + ".rs"
		appendTo := fileExists(named)
		prefix := ""
		if appendTo {
			prefix = filepath.Base(dir) + "/"
		}
		var sb strings.Builder
		m := mods[dir]
		for _, v := range m.names.Values() {
			name := v.(string)
			fmt.Fprintf(&sb, "#[path = %q]\n#[allow(non_snake_case)]\npub mod %s;\n", prefix+filepath.ToSlash(m.paths[name]), name)
		}

		var err error
		if appendTo {
			err = appendFile(named, sb.String())
		} else {
			err = os.WriteFile(filepath.Join(dir, ModFileName), []byte(sb.String()), 0644)
		}
		if err != nil {
			return fmt.Errorf("writing modules of %s: %w", dir, err)
		}

		if filepath.Clean(dir) == filepath.Clean(out) {
			continue
		}
		parent := filepath.Dir(dir)
		if appendTo {
			addChild(parent, b.namer.Scope(filepath.Base(dir)), filepath.Base(named))
		} else {
			addChild(parent, b.namer.Scope(filepath.Base(dir)), filepath.Base(dir)+"/"+ModFileName)
		}
		pending[parent] = true
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func appendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	_, werr := f.WriteString(content)
	return errors.Join(werr, f.Close())
}
