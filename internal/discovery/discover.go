// Package discovery locates the packaged bundle files eligible for
// verification and reads them into memory before dispatch.
package discovery

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/optave/SDK-optave-client-integration-sub000/internal/registry"
	"github.com/optave/SDK-optave-client-integration-sub000/internal/rules"
)

// Defaults for candidate selection: bundle files carry the marker substring
// in their base name and the bundler's code-split chunks use a numeric
// filename prefix.
const (
	DefaultMarker    = "sdk"
	DefaultExtension = ".js"
)

// chunkPrefix matches generated chunk files like "732.sdk.js".
var chunkPrefix = regexp.MustCompile(`^\d+\.`)

// Criteria selects candidate files inside the dist directory.
type Criteria struct {
	Marker    string
	Extension string
}

// withDefaults fills empty criteria fields.
func (c Criteria) withDefaults() Criteria {
	if c.Marker == "" {
		c.Marker = DefaultMarker
	}
	if c.Extension == "" {
		c.Extension = DefaultExtension
	}
	return c
}

// Error is a fatal discovery failure: missing directory or zero candidates.
// It predates rule execution and short-circuits the run.
type Error struct {
	Dir     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("discovery failed in %s: %s: %v", e.Dir, e.Message, e.Cause)
	}
	return fmt.Sprintf("discovery failed in %s: %s", e.Dir, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// DiscoverBundles walks distDir and returns the sorted paths of candidate
// bundle files. Finding none is an error.
func DiscoverBundles(distDir string, criteria Criteria) ([]string, error) {
	criteria = criteria.withDefaults()

	info, err := os.Stat(distDir)
	if err != nil {
		return nil, &Error{Dir: distDir, Message: "directory not accessible", Cause: err}
	}
	if !info.IsDir() {
		return nil, &Error{Dir: distDir, Message: "not a directory"}
	}

	var paths []string
	walkErr := filepath.WalkDir(distDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		base := d.Name()
		if !strings.HasSuffix(base, criteria.Extension) {
			return nil
		}
		if !strings.Contains(base, criteria.Marker) {
			return nil
		}
		if chunkPrefix.MatchString(base) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		return nil, &Error{Dir: distDir, Message: "walk failed", Cause: walkErr}
	}

	if len(paths) == 0 {
		return nil, &Error{Dir: distDir, Message: fmt.Sprintf(
			"no candidate bundle files found (marker %q, extension %q)", criteria.Marker, criteria.Extension)}
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadSources reads each candidate once. An unreadable file becomes a
// read-fault violation for that file only; the remaining files still load.
func LoadSources(paths []string) ([]registry.SourceFile, []rules.Violation) {
	files := make([]registry.SourceFile, 0, len(paths))
	var faults []rules.Violation

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			faults = append(faults, rules.Violation{
				RuleName: "read-fault",
				Severity: rules.SeverityHigh,
				Message:  fmt.Sprintf("cannot read candidate file: %v", err),
				FilePath: p,
			})
			continue
		}
		files = append(files, registry.SourceFile{Path: p, RawContent: string(data)})
	}

	return files, faults
}
