// Package registry wires verification rules to discovered bundle files,
// executes them, and aggregates their findings into a report.
package registry

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/optave/SDK-optave-client-integration-sub000/internal/report"
	"github.com/optave/SDK-optave-client-integration-sub000/internal/rules"
	"github.com/optave/SDK-optave-client-integration-sub000/internal/scanner"
)

// defaultMaxWorkers caps concurrent file processing when the caller does not.
const defaultMaxWorkers = 4

// SourceFile is one discovered build artifact, read once before dispatch.
type SourceFile struct {
	Path       string
	RawContent string
}

// Options controls how RunAll schedules work.
type Options struct {
	Parallel   bool
	MaxWorkers int
}

// DuplicateRuleError is returned when two rules register under one name.
type DuplicateRuleError struct {
	Name string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule %q is already registered", e.Name)
}

// Registry holds the registered rules. Populate it at startup via Register;
// it is read-only during RunAll.
type Registry struct {
	rules   []rules.Rule
	byName  map[string]rules.Rule
	allowed map[rules.Severity]bool // nil means every severity registers
	log     *zap.SugaredLogger
}

// New creates a registry. When allowedSeverities is non-empty, rules whose
// declared severity is not in the set are skipped at registration time:
// never evaluated, never reported. logger may be nil.
func New(logger *zap.SugaredLogger, allowedSeverities ...rules.Severity) *Registry {
	var allowed map[rules.Severity]bool
	if len(allowedSeverities) > 0 {
		allowed = make(map[rules.Severity]bool, len(allowedSeverities))
		for _, s := range allowedSeverities {
			allowed[s] = true
		}
	}
	return &Registry{
		byName:  make(map[string]rules.Rule),
		allowed: allowed,
		log:     logger,
	}
}

// Register adds a rule, failing on duplicate names. Rules filtered out by the
// severity allow-set are silently skipped.
func (r *Registry) Register(rule rules.Rule) error {
	if r.allowed != nil && !r.allowed[rule.Severity()] {
		if r.log != nil {
			r.log.Debugw("skipping rule outside severity filter", "rule", rule.Name(), "severity", rule.Severity())
		}
		return nil
	}
	if _, exists := r.byName[rule.Name()]; exists {
		return &DuplicateRuleError{Name: rule.Name()}
	}
	r.byName[rule.Name()] = rule
	r.rules = append(r.rules, rule)
	return nil
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	return len(r.rules)
}

// ApplicableRules returns the rules whose applicability globs match the
// file's base name. "*" matches everything.
func (r *Registry) ApplicableRules(path string) []rules.Rule {
	base := filepath.Base(path)
	var applicable []rules.Rule
	for _, rule := range r.rules {
		for _, pattern := range rule.AppliesTo() {
			ok, err := doublestar.Match(pattern, base)
			if err != nil {
				// A malformed pattern is a programming error in the rule;
				// treat it as non-matching rather than aborting the run.
				continue
			}
			if ok {
				applicable = append(applicable, rule)
				break
			}
		}
	}
	return applicable
}

// RunAll strips and evaluates every file against its applicable rules and
// returns the finalized report. Files are processed concurrently when
// opts.Parallel is set and more than one file is present; the report
// accumulator is the only shared state and is guarded by a single mutex.
func (r *Registry) RunAll(files []SourceFile, opts Options) *report.Report {
	start := time.Now()
	rep := report.New()
	var mu sync.Mutex

	process := func(f SourceFile) {
		cleaned := scanner.Strip(f.RawContent)
		for _, rule := range r.ApplicableRules(f.Path) {
			if r.log != nil {
				r.log.Debugw("evaluating rule", "rule", rule.Name(), "file", f.Path)
			}
			violations := r.evaluate(rule, cleaned, f.RawContent, f.Path)
			mu.Lock()
			rep.Record(violations)
			mu.Unlock()
		}
	}

	if opts.Parallel && len(files) > 1 {
		workers := opts.MaxWorkers
		if workers <= 0 {
			workers = defaultMaxWorkers
		}
		g := new(errgroup.Group)
		g.SetLimit(workers)
		for _, f := range files {
			f := f
			g.Go(func() error {
				process(f)
				return nil
			})
		}
		// Workers never return errors; faults are captured as violations.
		_ = g.Wait()
	} else {
		for _, f := range files {
			process(f)
		}
	}

	rep.Finalize(time.Since(start))
	return rep
}

// evaluate runs one rule on one file, converting an unexpected panic into a
// high-severity violation attributed to the rule. A faulting rule must never
// take down sibling rules or files.
func (r *Registry) evaluate(rule rules.Rule, cleaned, raw, path string) (violations []rules.Violation) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.log != nil {
				r.log.Errorw("rule execution fault", "rule", rule.Name(), "file", path, "error", rec)
			}
			violations = []rules.Violation{{
				RuleName: rule.Name(),
				Severity: rules.SeverityHigh,
				Message:  fmt.Sprintf("rule execution failed: %v", rec),
				FilePath: path,
			}}
		}
	}()
	return rule.Evaluate(cleaned, raw, path)
}
