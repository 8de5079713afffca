package harness

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"
)

// SuiteResult summarizes a run over many scenarios.
type SuiteResult struct {
	TotalScenarios int               `json:"total_scenarios"`
	Passed         int               `json:"passed"`
	Failed         int               `json:"failed"`
	Failures       []ScenarioFailure `json:"failures,omitempty"`
	Results        []*Result         `json:"-"`
}

// ScenarioFailure is one failed scenario.
type ScenarioFailure struct {
	Scenario     string   `json:"scenario"`
	ScenarioPath string   `json:"scenario_path"`
	Errors       []string `json:"errors"`
}

// SuiteOptions tunes RunSuite.
type SuiteOptions struct {
	// Workers bounds concurrent scenarios; <= 0 means one per scenario.
	Workers int

	// GoldenDir, when set, is where golden scenarios are compared.
	GoldenDir string

	// Update rewrites golden files instead of comparing.
	Update bool
}

// FindScenarios returns every YAML file under dir in lexical order.
func FindScenarios(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ext := filepath.Ext(path); !info.IsDir() && (ext == ".yaml" || ext == ".yml") {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

// RunSuite loads and runs every scenario in paths. Scenarios are
// independent, so they run concurrently, each with its own Factory.
// A scenario that fails to load or run counts as failed; the suite
// itself only errors when ctx is cancelled.
func (h *Harness) RunSuite(ctx context.Context, paths []string, opts SuiteOptions) (*SuiteResult, error) {
	results := make([]*Result, len(paths))
	failures := make([]*ScenarioFailure, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			failures[i] = h.runOne(gctx, path, opts, &results[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	suite := &SuiteResult{TotalScenarios: len(paths)}
	for i := range paths {
		if results[i] != nil {
			suite.Results = append(suite.Results, results[i])
		}
		if failures[i] != nil {
			suite.Failed++
			suite.Failures = append(suite.Failures, *failures[i])
			continue
		}
		suite.Passed++
	}
	return suite, nil
}

func (h *Harness) runOne(ctx context.Context, path string, opts SuiteOptions, out **Result) *ScenarioFailure {
	scenario, err := LoadScenario(path)
	if err != nil {
		return &ScenarioFailure{Scenario: filepath.Base(path), ScenarioPath: path, Errors: []string{err.Error()}}
	}
	result, err := h.Run(ctx, scenario)
	if err != nil {
		return &ScenarioFailure{Scenario: scenario.Name, ScenarioPath: path, Errors: []string{err.Error()}}
	}
	if scenario.Golden && opts.GoldenDir != "" {
		if err := CheckGolden(opts.GoldenDir, result, opts.Update); err != nil {
			result.AddError(err.Error())
		}
	}
	*out = result
	if result.Pass {
		return nil
	}
	return &ScenarioFailure{Scenario: scenario.Name, ScenarioPath: path, Errors: result.Errors}
}
