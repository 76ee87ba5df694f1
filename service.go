package tex2site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/texpub/tex2site/internal/assets"
	"github.com/texpub/tex2site/internal/fileutil"
)

// Service runs the publish pipeline: convert, relocate figures, wrap,
// integrate.
type Service struct {
	site    Site
	engine  Engine
	loader  assets.AssetLoader
	timeout time.Duration
	verbose bool
	now     func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithEngine replaces the default LaTeXML engine.
func WithEngine(e Engine) Option {
	return func(s *Service) {
		s.engine = e
	}
}

// WithTimeout bounds the conversion step.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("tex2site: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.timeout = d
	}
}

// WithAssetLoader sets where page and entry templates come from.
func WithAssetLoader(l assets.AssetLoader) Option {
	return func(s *Service) {
		s.loader = l
	}
}

// WithVerbose makes the default engine log verbosely.
func WithVerbose(v bool) Option {
	return func(s *Service) {
		s.verbose = v
	}
}

// WithNow sets the clock used for default dates.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New creates a Service publishing into site.
func New(site Site, opts ...Option) *Service {
	s := &Service{
		site:    site,
		timeout: DefaultEngineTimeout,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.loader == nil {
		s.loader = assets.NewEmbeddedLoader()
	}
	if s.engine == nil {
		engine := NewLaTeXML(site.StylesheetPath())
		engine.Timeout = s.timeout
		engine.Verbose = s.verbose
		s.engine = engine
	}

	return s
}

// Site returns the site the service publishes into.
func (s *Service) Site() Site {
	return s.site
}

// Publish converts job.Source and publishes it according to job.Mode.
//
// Conversion and page writing failures are returned as errors. Everything
// after the page is written (figures, listing, graph) only degrades the
// result and is reported in Result.Warnings.
func (s *Service) Publish(ctx context.Context, job Job) (*Result, error) {
	meta, err := s.prepareMetadata(job.Meta)
	if err != nil {
		return nil, err
	}
	if err := ValidateSlug(job.Slug); err != nil {
		return nil, err
	}
	if !fileutil.FileExists(job.Source) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, job.Source)
	}

	artifact := ArtifactPath(job.Source, job.Slug)
	defer func() { _ = os.Remove(artifact) }()

	conv, err := s.convert(ctx, job.Source, artifact)
	if err != nil {
		return nil, err
	}

	result := &Result{EngineLog: conv.Log}

	if job.Mode != ModeOutputOnly {
		s.relocateFigures(job, result)
	}

	wrapper, err := NewPageWrapper(s.site, s.loader)
	if err != nil {
		return nil, err
	}
	outPath := s.site.OutputPath(job.Slug)
	bodyFound, err := wrapper.WriteFile(conv.ArtifactPath, outPath, meta)
	if err != nil {
		return nil, err
	}
	result.OutputPath = outPath
	result.BodyFound = bodyFound
	if !bodyFound {
		result.warn("no <body> markers in engine output, page contains the whole document")
	}

	if job.Mode == ModeFull {
		s.integrate(meta, job.Slug, result)
	}

	return result, nil
}

// prepareMetadata fills defaults into a copy of meta, validates it, and
// resolves the date to the text shown on the page.
func (s *Service) prepareMetadata(in *Metadata) (*Metadata, error) {
	if in == nil {
		return nil, ErrEmptyTitle
	}
	meta := *in
	meta.Tags = append([]string(nil), in.Tags...)

	if meta.Type == "" {
		meta.Type = DefaultType
	}
	if meta.Category == "" {
		meta.Category = DefaultCategory
	}
	if meta.Date == "" {
		meta.Date = "auto"
	}

	if err := meta.Validate(); err != nil {
		return nil, err
	}
	date, err := ResolveDate(meta.Date, s.now())
	if err != nil {
		return nil, err
	}
	meta.Date = date
	return &meta, nil
}

func (s *Service) convert(ctx context.Context, source, artifact string) (*ConvertResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	conv, err := s.engine.Convert(ctx, ConvertRequest{Source: source, Destination: artifact})
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrEngineTimeout) {
			return nil, fmt.Errorf("%w: exceeded %v", ErrEngineTimeout, s.timeout)
		}
		return nil, err
	}
	return conv, nil
}

func (s *Service) relocateFigures(job Job, result *Result) {
	relocator := &FigureRelocator{
		SourceDir: filepath.Dir(job.Source),
		DestDir:   s.site.FiguresDir(job.Slug),
	}

	report, err := relocator.Relocate()
	if err != nil {
		result.warn("figures not copied: %v", err)
		return
	}
	result.Figures = report

	if !report.Found() {
		result.warn("no figures found")
	}
	for _, src := range sortedKeys(report.Failed) {
		result.warn("figure %s not copied: %v", src, report.Failed[src])
	}
}

func (s *Service) integrate(meta *Metadata, slug string, result *Result) {
	integrator, err := NewSiteIntegrator(s.site, s.loader)
	if err != nil {
		result.warn("site not updated: %v", err)
		return
	}

	listing, err := integrator.AddToListing(meta, slug)
	switch {
	case err != nil:
		result.warn("listing not updated: %v", err)
	case !listing.Inserted:
		result.Listing = listing
		result.warn("listing not updated: %s", listing.Reason)
	default:
		result.Listing = listing
	}
	if listing != nil && listing.Duplicate {
		result.warn("listing already links %s, entry added again", s.site.PaperHref(slug))
	}

	node := integrator.SuggestGraphNode(meta, slug)
	result.GraphNode = node

	exists, err := integrator.GraphHasNode(node.ID)
	if err != nil {
		result.warn("graph data not checked: %v", err)
		return
	}
	result.GraphNodeExists = exists
	if exists {
		result.warn("graph data already has a node with id %q", node.ID)
	}
}

func sortedKeys(m map[string]error) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
