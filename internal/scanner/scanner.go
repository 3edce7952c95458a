// Package scanner walks a project tree, classifies feature artifacts through
// the content parsers and the legacy detector, groups them by feature and
// file-type, and resolves multi-instance groups to a single primary. A scan
// over a messy, partially-invalid tree always completes with a best-effort
// result; only an unusable project root aborts it.
package scanner

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/specforge/schemascan/internal/artifact"
	"github.com/specforge/schemascan/internal/legacy"
	"github.com/specforge/schemascan/internal/parser"
	"github.com/specforge/schemascan/internal/resolver"
	"github.com/specforge/schemascan/internal/schema"
)

// DefaultMaxDepth bounds the recursive walk when no override is configured.
const DefaultMaxDepth = 12

// DefaultIgnoreGlobs are the built-in ignore patterns, matched against
// root-relative slash paths.
var DefaultIgnoreGlobs = []string{
	".git/**",
	"node_modules/**",
	"vendor/**",
	"**/.DS_Store",
}

// Options configures a Scanner.
type Options struct {
	IgnoreGlobs    []string
	MaxDepth       int
	FollowSymlinks bool
	Resolver       resolver.Options
	Logger         *log.Logger
}

// Scanner discovers and classifies feature artifacts under a project root.
// A Scanner is safe to reuse: every Scan call owns its entire working set.
type Scanner struct {
	registry *schema.Registry
	detector *legacy.Detector
	opts     Options
	logger   *log.Logger
}

// New builds a Scanner over the given registry and legacy detector.
func New(registry *schema.Registry, detector *legacy.Detector, opts Options) *Scanner {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.IgnoreGlobs == nil {
		opts.IgnoreGlobs = DefaultIgnoreGlobs
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scanner{registry: registry, detector: detector, opts: opts, logger: logger}
}

// Scan walks the tree under root and returns the grouped, resolved result.
// root must be an existing directory; anything less is an explicit failure
// rather than an empty result.
func (s *Scanner) Scan(root string) (*ScanResult, error) {
	start := time.Now()

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("project root %s is not readable: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", root)
	}

	run := &scanRun{scanner: s, root: root, result: &ScanResult{
		Root:     root,
		Features: make(map[string]*FeatureScanResult),
	}}
	run.walk(root, 0)
	run.group()
	run.result.Stats.Elapsed = time.Since(start)

	s.logger.Debug("scan complete",
		"root", root,
		"visited", run.result.Stats.FilesVisited,
		"classified", run.result.Stats.FilesClassified,
		"features", len(run.result.Features),
		"elapsed", run.result.Stats.Elapsed)

	return run.result, nil
}

// ScanAsync runs Scan on its own goroutine and delivers the outcome on the
// returned channel. Offered purely for integration convenience; there is no
// mid-scan cancellation, a caller abandoning a scan simply discards the
// channel.
func (s *Scanner) ScanAsync(root string) <-chan AsyncResult {
	ch := make(chan AsyncResult, 1)
	go func() {
		res, err := s.Scan(root)
		ch <- AsyncResult{Result: res, Err: err}
		close(ch)
	}()
	return ch
}

// scanRun holds the working set of a single Scan call. Nothing here escapes
// to process-wide state.
type scanRun struct {
	scanner *Scanner
	root    string
	files   []*artifact.DiscoveredFile
	result  *ScanResult
}

func (r *scanRun) walk(dir string, depth int) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// Permission-denied subtrees are skipped, the scan continues.
		r.scanner.logger.Warn("skipping unreadable directory", "dir", dir, "err", err)
		return
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		rel, err := filepath.Rel(r.root, full)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)

		if r.ignored(rel) {
			r.scanner.logger.Debug("ignoring path", "path", rel)
			continue
		}

		isDir := entry.IsDir()
		if entry.Type()&fs.ModeSymlink != 0 {
			if !r.scanner.opts.FollowSymlinks {
				continue
			}
			target, err := os.Stat(full)
			if err != nil {
				continue
			}
			isDir = target.IsDir()
		}

		if isDir {
			if depth+1 > r.scanner.opts.MaxDepth {
				r.scanner.logger.Debug("max depth reached", "dir", rel)
				continue
			}
			r.walk(full, depth+1)
			continue
		}

		r.visitFile(full, rel)
	}
}

func (r *scanRun) ignored(rel string) bool {
	for _, pattern := range r.scanner.opts.IgnoreGlobs {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func (r *scanRun) visitFile(full, rel string) {
	carrier, ok := parser.CarrierForPath(rel)
	if !ok {
		return
	}
	r.result.Stats.FilesVisited++

	info, err := os.Stat(full)
	if err != nil {
		r.scanner.logger.Warn("skipping unreadable file", "path", rel, "err", err)
		return
	}
	data, err := os.ReadFile(full)
	if err != nil {
		r.scanner.logger.Warn("skipping unreadable file", "path", rel, "err", err)
		return
	}

	parsed := parser.Parse(carrier, data)
	if !parsed.OK {
		r.scanner.logger.Warn("skipping malformed file", "path", rel, "err", parsed.Err)
		return
	}

	if parsed.SchemaTag != "" {
		r.classifyTagged(rel, carrier, parsed, info)
		return
	}

	if f := r.scanner.detector.Detect(rel, parsed.Content, info.ModTime(), info.Size()); f != nil {
		r.result.Stats.FilesClassified++
		r.files = append(r.files, f)
	}
	// Untagged files matching no legacy rule carry no schema-relevant
	// information and are dropped silently.
}

func (r *scanRun) classifyTagged(rel string, carrier schema.Carrier, parsed parser.Result, info fs.FileInfo) {
	tag := parsed.SchemaTag
	isPrimary, status, version := parser.Metadata(parsed.Content)
	base := artifact.DiscoveredFile{
		Path:      rel,
		Carrier:   carrier,
		Content:   parsed.Content,
		ModTime:   info.ModTime(),
		Size:      info.Size(),
		IsPrimary: isPrimary,
		Status:    status,
		Version:   version,
	}

	if err := schema.ValidateIDFormat(tag); err != nil {
		r.result.Unknown = append(r.result.Unknown, artifact.UnknownSchemaItem{
			File:       base,
			Tag:        tag,
			Category:   artifact.CategoryInvalid,
			Suggestion: fmt.Sprintf("correct the schema tag to match namespace/name[@major.minor]: %v", err),
		})
		return
	}

	def, known := r.scanner.registry.Get(tag)
	if !known {
		category := artifact.CategoryUnknown
		suggestion := fmt.Sprintf("register schema %q or fix the tag to a known identifier", schema.BaseID(tag))
		// An unregistered tag on a conventionally-named file is probably a
		// typo; the filename rule says what the file wants to be.
		if lf := r.scanner.detector.Detect(rel, parsed.Content, info.ModTime(), info.Size()); lf != nil {
			category = artifact.CategoryLegacy
			suggestion = fmt.Sprintf("remove the unrecognized tag (or correct it to %q) to classify by filename convention", lf.SchemaID)
		}
		r.result.Unknown = append(r.result.Unknown, artifact.UnknownSchemaItem{
			File:       base,
			Tag:        tag,
			Category:   category,
			Suggestion: suggestion,
		})
		return
	}

	if !def.SupportsCarrier(carrier) {
		r.scanner.logger.Warn("schema does not list this carrier, accepting anyway",
			"path", rel, "schema", def.ID, "carrier", carrier)
	}

	f := base
	f.SchemaID = def.ID
	f.FeatureID = parser.ExtractFeatureID(parsed.Content, def.IdentifierField, def.FallbackFields)
	if f.FeatureID == "" && def.Scope == schema.ScopeFeature {
		f.FeatureID = legacy.FeatureFromPath(rel)
	}

	r.result.Stats.FilesClassified++
	if def.Scope == schema.ScopeProject {
		f.FeatureID = ""
		r.result.ProjectFiles = append(r.result.ProjectFiles, &f)
		return
	}
	r.files = append(r.files, &f)
}

// unassignedFeature groups feature-scoped files whose identifier could not be
// inferred from content or path.
const unassignedFeature = "unassigned"

func (r *scanRun) group() {
	byFeature := make(map[string]map[string][]*artifact.DiscoveredFile)
	for _, f := range r.files {
		featureID := f.FeatureID
		if featureID == "" {
			featureID = unassignedFeature
			f.FeatureID = featureID
		}
		if byFeature[featureID] == nil {
			byFeature[featureID] = make(map[string][]*artifact.DiscoveredFile)
		}
		ft := f.FileType()
		byFeature[featureID][ft] = append(byFeature[featureID][ft], f)
	}

	for featureID, groups := range byFeature {
		fr := &FeatureScanResult{
			FeatureID: featureID,
			Primary:   make(map[string]*artifact.DiscoveredFile),
			All:       make(map[string][]*artifact.DiscoveredFile),
		}

		fileTypes := make([]string, 0, len(groups))
		for ft := range groups {
			fileTypes = append(fileTypes, ft)
		}
		sort.Strings(fileTypes)

		var all []*artifact.DiscoveredFile
		for _, ft := range fileTypes {
			candidates := groups[ft]
			fr.All[ft] = candidates
			all = append(all, candidates...)

			res := resolver.Resolve(ft, candidates, r.scanner.opts.Resolver)
			if res.Primary != nil {
				fr.Primary[ft] = res.Primary
			}
			if res.Conflict != nil {
				fr.Conflicts = append(fr.Conflicts, *res.Conflict)
			}
			if res.Diagnostic != nil {
				fr.Diagnostics = append(fr.Diagnostics, *res.Diagnostic)
			}
		}

		fr.BaseDir = commonBaseDir(all)
		r.result.Features[featureID] = fr
	}

	// Stable order for project files regardless of walk order.
	sort.Slice(r.result.ProjectFiles, func(i, j int) bool {
		return r.result.ProjectFiles[i].Path < r.result.ProjectFiles[j].Path
	})
}

// commonBaseDir returns the shallowest common directory prefix of the given
// files' paths, "" when they share none.
func commonBaseDir(files []*artifact.DiscoveredFile) string {
	if len(files) == 0 {
		return ""
	}
	common := strings.Split(path.Dir(files[0].Path), "/")
	if len(common) == 1 && common[0] == "." {
		return ""
	}
	for _, f := range files[1:] {
		segs := strings.Split(path.Dir(f.Path), "/")
		n := 0
		for n < len(common) && n < len(segs) && common[n] == segs[n] {
			n++
		}
		common = common[:n]
		if len(common) == 0 {
			return ""
		}
	}
	return strings.Join(common, "/")
}
