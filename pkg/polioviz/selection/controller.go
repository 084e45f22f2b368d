// Package selection turns country selections into chart frames.
package selection

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/countries"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/parser"
	"golang.org/x/sync/errgroup"
)

// DefaultTitle is shown until a country is selected.
const DefaultTitle = "Select a Country Below..."

// ErrSuperseded indicates a newer selection replaced this one before it finished.
var ErrSuperseded = errors.New("selection superseded")

// RenderFunc draws a frame. It is called with the controller lock held and
// must not call back into the controller.
type RenderFunc func(models.Frame)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for results dropped by a newer selection.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithExtractOptions sets the series extraction options.
func WithExtractOptions(o parser.Options) Option {
	return func(c *Controller) { c.extract = o }
}

// Controller holds the current selection and rebuilds the frame each time
// it changes. Every selection gets a new version; results fetched for an
// older version are dropped.
type Controller struct {
	registry *countries.Registry
	sources  map[models.Field]parser.Source
	render   RenderFunc
	extract  parser.Options
	logger   *log.Logger

	mu      sync.Mutex
	version uint64
	frame   models.Frame
	cancel  context.CancelFunc
}

// New returns a controller reading incidence and coverage from the given
// sources. A nil source leaves that series out of every frame.
func New(registry *countries.Registry, incidence, coverage parser.Source, render RenderFunc, opts ...Option) *Controller {
	c := &Controller{
		registry: registry,
		sources: map[models.Field]parser.Source{
			models.FieldIncidence: incidence,
			models.FieldCoverage:  coverage,
		},
		render: render,
		logger: log.Default(),
		frame:  models.Frame{Title: DefaultTitle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Frame returns the current frame.
func (c *Controller) Frame() models.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

// Version returns the current selection version.
func (c *Controller) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Start renders the initial frame, before any selection.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.render(c.frame)
}

// Select makes code the current selection. The chart is cleared at once,
// then both datasets are fetched concurrently and the frame is re-rendered
// as each series arrives. An unknown code leaves the chart blank and
// returns an UnknownCountryError. Select returns after both fetches finish.
func (c *Controller) Select(ctx context.Context, code string) error {
	idx, resolveErr := c.registry.Resolve(code)

	c.mu.Lock()
	c.version++
	version := c.version
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if resolveErr != nil {
		c.frame = models.Frame{Version: version, Title: DefaultTitle}
		c.render(c.frame)
		c.mu.Unlock()
		return resolveErr
	}
	country, _ := c.registry.Lookup(code)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancel = cancel
	c.frame = models.Frame{
		Version: version,
		Country: country,
		Title:   fmt.Sprintf("%s Polio Incidence", country.Name),
	}
	c.render(c.frame)
	c.mu.Unlock()

	var g errgroup.Group
	for _, field := range []models.Field{models.FieldIncidence, models.FieldCoverage} {
		field := field
		g.Go(func() error {
			return c.load(ctx, version, idx, field)
		})
	}
	err := g.Wait()

	if c.Version() != version {
		return ErrSuperseded
	}
	return err
}

func (c *Controller) load(ctx context.Context, version uint64, idx int, field models.Field) error {
	src := c.sources[field]
	if src == nil {
		return nil
	}

	table, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", field, err)
	}
	series, err := c.extract.Extract(table, idx, field)
	if err != nil {
		return fmt.Errorf("extract %s for row %d: %w", field, idx, err)
	}

	c.deliver(version, field, series)
	return nil
}

// deliver merges a series into the current frame and re-renders it, unless
// the selection has moved on.
func (c *Controller) deliver(version uint64, field models.Field, series models.Series) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != c.version {
		c.logger.Printf("dropping %s for stale selection %d (current %d)", field, version, c.version)
		return false
	}
	c.frame = c.frame.WithSeries(field, series)
	c.render(c.frame)
	return true
}
