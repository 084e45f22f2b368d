package polioviz

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/countries"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/parser"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/selection"
	"golang.org/x/sync/errgroup"
)

// Datasets is a loaded pair of tables plus the country table resolving
// codes to their rows.
type Datasets struct {
	Registry  *countries.Registry
	Incidence *parser.CachedSource
	Coverage  *parser.CachedSource

	cfg    Config
	logger *log.Logger
}

// Open loads both tables concurrently, picks the country table, and checks
// that its row order matches each table.
func Open(ctx context.Context, cfg Config, opts Options) (*Datasets, error) {
	for name, path := range map[string]string{"incidence": cfg.IncidencePath, "coverage": cfg.CoveragePath} {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, NewDatasetError(name, path, ErrFileNotFound)
		}
	}

	d := &Datasets{
		Incidence: parser.Cache(parser.FileSource{Path: cfg.IncidencePath, Options: cfg.LoadOptions()}),
		Coverage:  parser.Cache(parser.FileSource{Path: cfg.CoveragePath, Options: cfg.LoadOptions()}),
		cfg:       cfg,
		logger:    opts.logger(),
	}

	var incidence, coverage *models.Table
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := d.Incidence.Fetch(gctx)
		if err != nil {
			return NewDatasetError("incidence", cfg.IncidencePath, err)
		}
		incidence = t
		return nil
	})
	g.Go(func() error {
		t, err := d.Coverage.Fetch(gctx)
		if err != nil {
			return NewDatasetError("coverage", cfg.CoveragePath, err)
		}
		coverage = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	registry, err := chooseRegistry(cfg, opts, incidence)
	if err != nil {
		return nil, err
	}
	d.Registry = registry

	for _, t := range []*models.Table{incidence, coverage} {
		if err := registry.Validate(t); err != nil {
			if opts.ShouldFailOnMismatch() {
				return nil, err
			}
			d.logger.Printf("country table does not match %s: %v", t.Name, err)
		}
	}
	return d, nil
}

func chooseRegistry(cfg Config, opts Options, incidence *models.Table) (*countries.Registry, error) {
	switch {
	case opts.Registry != nil:
		return opts.Registry, nil
	case cfg.CountriesPath != "":
		r, err := countries.Load(cfg.CountriesPath)
		if err != nil {
			return nil, NewDatasetError("countries", cfg.CountriesPath, err)
		}
		return r, nil
	case cfg.CodeColumn != "" && incidence.HasColumn(cfg.CodeColumn):
		return countries.FromTable(incidence, cfg.CodeColumn)
	default:
		return countries.Default(), nil
	}
}

// Controller returns a selection controller over the datasets.
func (d *Datasets) Controller(render selection.RenderFunc, opts ...selection.Option) *selection.Controller {
	opts = append([]selection.Option{
		selection.WithExtractOptions(d.cfg.ExtractOptions()),
		selection.WithLogger(d.logger),
	}, opts...)
	return selection.New(d.Registry, d.Incidence, d.Coverage, render, opts...)
}

// Frame selects code on a fresh controller and returns the finished frame.
// The frame is returned even when err is set, so callers can still draw
// whatever series did load.
func (d *Datasets) Frame(ctx context.Context, code string, opts ...selection.Option) (models.Frame, error) {
	c := d.Controller(func(models.Frame) {}, opts...)
	err := c.Select(ctx, code)
	if err != nil {
		err = fmt.Errorf("select %s: %w", code, err)
	}
	return c.Frame(), err
}
