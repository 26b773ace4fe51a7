package build

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"lectern/internal/config"
	"lectern/internal/doctree"
	"lectern/internal/export"
	"lectern/internal/mcq"
	"lectern/internal/rst"
	"lectern/internal/transform"
	"lectern/internal/writer"
)

// Options configures one build.
type Options struct {
	Config config.Config
	// Root is the directory source and output dirs are resolved against,
	// normally the config file's directory.
	Root     string
	Logger   zerolog.Logger
	Observer Observer
}

// Result summarizes a completed build.
type Result struct {
	BuildID   string
	Pages     []PageEvent
	Questions int
	Warnings  []Warning
	Duration  time.Duration
}

// Run executes one build session: discover pages, parse, normalize, render,
// copy assets, and write the questions sidecar. MCQ anomalies degrade to
// warnings; only environment failures (unreadable tree, unwritable output)
// return an error.
func Run(ctx context.Context, opts Options) (Result, error) {
	started := time.Now()
	env := NewEnv(opts.Logger, opts.Observer)
	sourceDir := filepath.Join(opts.Root, opts.Config.SourceDir)
	outputDir := filepath.Join(opts.Root, opts.Config.OutputDir)

	pages, err := discoverPages(sourceDir)
	if err != nil {
		return Result{}, err
	}
	if opts.Observer != nil {
		opts.Observer.OnBuildStart(env.BuildID, pages)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}

	parser := rst.New(rst.Options{
		Reporter: env,
		Directives: map[string]rst.DirectiveFunc{
			mcq.DirectiveName: mcq.NewDirective(env),
		},
	})
	pipeline := &transform.Pipeline{}
	pipeline.Register(mcq.Transforms()...)

	result := Result{BuildID: env.BuildID}
	payload := export.Export{BuildID: env.BuildID}
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if opts.Observer != nil {
			opts.Observer.OnPageStart(page)
		}
		event, questions := buildPage(ctx, env, parser, pipeline, opts, sourceDir, outputDir, page)
		payload.Questions = append(payload.Questions, questions...)
		result.Pages = append(result.Pages, event)
		result.Questions += event.Questions
		if opts.Observer != nil {
			opts.Observer.OnPageDone(event)
		}
	}

	if err := writer.CopyAssets(outputDir); err != nil {
		return result, err
	}
	if err := export.Write(filepath.Join(outputDir, export.FileName), payload); err != nil {
		return result, err
	}

	result.Warnings = env.Warnings()
	result.Duration = time.Since(started)
	if opts.Observer != nil {
		opts.Observer.OnBuildEnd(result)
	}
	return result, nil
}

// buildPage parses and renders one page. Failures degrade to a warning and
// a PageEvent carrying the error; the build carries on.
func buildPage(ctx context.Context, env *Env, parser *rst.Parser, pipeline *transform.Pipeline, opts Options, sourceDir, outputDir, page string) (PageEvent, []export.Question) {
	event := PageEvent{Source: page}

	text, err := os.ReadFile(filepath.Join(sourceDir, page))
	if err != nil {
		event.Err = err.Error()
		env.Warnf(page, 0, "read page: %v", err)
		return event, nil
	}

	doc := parser.ParseDocument(page, string(text))
	pipeline.Run(&transform.Context{Document: doc, Reporter: env})
	applyDefaultClasses(doc, opts.Config.MCQ.DefaultClasses)

	questions := export.Collect(doc)
	event.Questions = len(questions)

	outputRel := outputName(page)
	outputPath := filepath.Join(outputDir, outputRel)
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		event.Err = err.Error()
		env.Warnf(page, 0, "create page dir: %v", err)
		return event, questions
	}

	html, err := writer.RenderPage(ctx, pageTitle(doc, opts.Config.Title), doc, assetsBase(opts.Config, page))
	if err != nil {
		event.Err = err.Error()
		env.Warnf(page, 0, "render page: %v", err)
		return event, questions
	}
	if err := os.WriteFile(outputPath, []byte(html), 0o644); err != nil {
		event.Err = err.Error()
		env.Warnf(page, 0, "write page: %v", err)
		return event, questions
	}
	event.Output = outputRel
	return event, questions
}

// discoverPages lists page files under the source dir, relative paths in
// lexical order.
func discoverPages(sourceDir string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(sourceDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".rst", ".txt":
		default:
			return nil
		}
		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		pages = append(pages, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover pages: %w", err)
	}
	sort.Strings(pages)
	return pages, nil
}

// applyDefaultClasses adds project-wide classes to every question that does
// not carry them already.
func applyDefaultClasses(doc *doctree.Document, classes []string) {
	if len(classes) == 0 {
		return
	}
	for _, node := range doctree.FindAll(doc, func(n doctree.Node) bool {
		_, ok := n.(*mcq.Question)
		return ok
	}) {
		attrs := node.Attrs()
		for _, class := range classes {
			if !slices.Contains(attrs.Classes, class) {
				attrs.Classes = append(attrs.Classes, class)
			}
		}
	}
}

// pageTitle prefers the page's first heading over the project title.
func pageTitle(doc *doctree.Document, fallback string) string {
	for _, child := range doc.Children() {
		if section, ok := child.(*doctree.Section); ok {
			return section.Title
		}
	}
	return fallback
}

// assetsBase points nested pages back at the copied assets directory, or at
// the configured external host.
func assetsBase(cfg config.Config, page string) string {
	if cfg.MCQ.AssetsBaseURL != "" {
		return cfg.MCQ.AssetsBaseURL
	}
	depth := strings.Count(page, "/")
	return strings.Repeat("../", depth) + writer.AssetsDirName
}

// outputName maps a source page path to its HTML output path.
func outputName(page string) string {
	return strings.TrimSuffix(page, filepath.Ext(page)) + ".html"
}
