package fixture

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/roach88/opflow/internal/bound"
	"github.com/roach88/opflow/internal/ir"
)

//go:embed schema.cue
var schemaSource string

// Format is a fixture encoding.
type Format string

const (
	FormatCUE  Format = "cue"
	FormatYAML Format = "yaml"
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		return FormatCUE, true
	case ".yaml", ".yml":
		return FormatYAML, true
	}
	return "", false
}

// Fixture is a loaded, fully resolved bound tree.
type Fixture struct {
	Name   string
	Path   string
	Format Format

	Root  *bound.Node
	Model *bound.Model

	// Types and Symbols index the fixture's declarations by name, for
	// assertions that need the symbol behind a translated reference.
	Types   map[string]*bound.Type
	Symbols map[string]*bound.Symbol

	// Hash identifies the fixture bytes.
	Hash string
}

// LoadCUE decodes a CUE fixture. The source is checked against the
// fixture schema, so misspelled fields fail with a position.
func LoadCUE(data []byte, filename string) (*Fixture, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("fixture schema: %w", err)
	}

	src := ctx.CompileBytes(data, cue.Filename(filename))
	if err := src.Err(); err != nil {
		return nil, cueError(filename, err)
	}
	v := schema.LookupPath(cue.ParsePath("#Fixture")).Unify(src)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, cueError(filename, err)
	}

	var doc Document
	if err := v.Decode(&doc); err != nil {
		return nil, cueError(filename, err)
	}
	return resolve(&doc, data, filename, FormatCUE, cueLocator{root: src})
}

// LoadYAML decodes a YAML fixture. Unknown fields are rejected.
func LoadYAML(data []byte, filename string) (*Fixture, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, yamlError(filename, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, yamlError(filename, err)
	}
	return resolve(&doc, data, filename, FormatYAML, yamlLocator{root: &root})
}

func yamlError(filename string, err error) *LoadError {
	le := &LoadError{Code: ErrCodeDecode, Message: err.Error(), Filename: filename}
	msg := err.Error()
	if te, ok := err.(*yaml.TypeError); ok && len(te.Errors) > 0 {
		msg = te.Errors[0]
	}
	msg = strings.TrimPrefix(msg, "yaml: ")
	var line int
	if n, _ := fmt.Sscanf(msg, "line %d:", &line); n == 1 {
		le.Line = line
		le.Message = strings.TrimSpace(msg[strings.Index(msg, ":")+1:])
	}
	return le
}

// LoadFile reads and decodes the fixture at path, choosing the decoder
// by extension.
func LoadFile(path string) (*Fixture, error) {
	return LoadFileAs(path, "")
}

// LoadFileAs is LoadFile with a forced decoder. An empty format falls back
// to the extension.
func LoadFileAs(path string, format Format) (*Fixture, error) {
	if format == "" {
		var ok bool
		if format, ok = FormatOf(path); !ok {
			return nil, &LoadError{Code: ErrCodeFormat, Message: "unsupported fixture extension " + filepath.Ext(path), Filename: path}
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: err.Error(), Filename: path}
	}
	var fx *Fixture
	switch format {
	case FormatCUE:
		fx, err = LoadCUE(data, path)
	case FormatYAML:
		fx, err = LoadYAML(data, path)
	default:
		return nil, &LoadError{Code: ErrCodeFormat, Message: fmt.Sprintf("unknown fixture format %q", format), Filename: path}
	}
	if err != nil {
		return nil, err
	}
	fx.Path = path
	return fx, nil
}

// FindFixtureFiles walks dir and returns every fixture file in lexical
// order.
func FindFixtureFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if _, ok := FormatOf(path); ok && !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// LoadDir loads every fixture under dir, at most workers at a time
// (workers <= 0 means unbounded). Fixtures come back in file order;
// every failure is reported, not only the first.
func LoadDir(dir string, workers int) ([]*Fixture, []error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeRead, Message: err.Error(), Filename: dir}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeRead, Message: "not a directory", Filename: dir}}
	}
	files, err := FindFixtureFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeRead, Message: fmt.Sprintf("scanning: %v", err), Filename: dir}}
	}

	fixtures := make([]*Fixture, len(files))
	errs := make([]error, len(files))
	var g errgroup.Group
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range files {
		g.Go(func() error {
			fixtures[i], errs[i] = LoadFile(path)
			return nil
		})
	}
	_ = g.Wait()

	var loaded []*Fixture
	var failed []error
	for i := range files {
		if errs[i] != nil {
			failed = append(failed, errs[i])
			continue
		}
		loaded = append(loaded, fixtures[i])
	}
	return loaded, failed
}

func resolve(doc *Document, data []byte, filename string, format Format, loc locator) (*Fixture, error) {
	r := newResolver(filename, loc)
	r.declareTypes(doc.Types)
	r.declareSymbols(doc.Symbols)
	if doc.Body == nil {
		r.fail(ErrCodeMissingBody, nil, "fixture has no body")
		return nil, r.err()
	}
	body := fieldPath{"body"}
	r.collectSyntax(doc.Body, body)
	root := r.node(doc.Body, body)
	if err := r.err(); err != nil {
		return nil, err
	}

	name := doc.Name
	if name == "" {
		base := filepath.Base(filename)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return &Fixture{
		Name:    name,
		Path:    filename,
		Format:  format,
		Root:    root,
		Model:   bound.NewModel(maps.Clone(r.types)),
		Types:   r.types,
		Symbols: r.symbols,
		Hash:    ir.FixtureHash(data),
	}, nil
}
