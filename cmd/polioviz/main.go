// Package main provides the CLI entry point for polioviz.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/polioviz-go/pkg/polioviz"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/countries"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/export"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/output"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/parser"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/render"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/server"
)

var (
	cfg polioviz.Config

	country    string
	outputPath string
	format     string
	pretty     bool
	validate   bool
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("[POLIOVIZ] ")

	var err error
	cfg, err = polioviz.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "polioviz",
		Short: "Chart polio incidence against vaccine coverage",
		Long: `polioviz reads the WHO polio incidence and vaccine coverage tables
and charts both series for one country on a shared year axis.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.IncidencePath, "incidence", cfg.IncidencePath, "Incidence table (.csv or .xlsx)")
	flags.StringVar(&cfg.CoveragePath, "coverage", cfg.CoveragePath, "Coverage table (.csv or .xlsx)")
	flags.StringVar(&cfg.CountriesPath, "countries", cfg.CountriesPath, "Country list CSV (code,name) in table row order")
	flags.StringVar(&cfg.Sheet, "sheet", cfg.Sheet, "Worksheet to read from xlsx tables (default: first sheet)")
	flags.StringVar(&cfg.IDColumn, "id-column", cfg.IDColumn, "Column naming the country of each row")
	flags.BoolVar(&cfg.IncludeZeroYear, "include-zero-year", cfg.IncludeZeroYear, "Treat a \"0\" column header as a year")
	flags.IntVar(&cfg.Width, "width", cfg.Width, "Chart width in pixels")
	flags.IntVar(&cfg.Height, "height", cfg.Height, "Chart height in pixels")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the chart for a country as SVG or PNG",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&country, "country", "", "ISO 3166-1 alpha-3 country code")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().StringVar(&format, "format", "svg", "Image format: svg or png")

	seriesCmd := &cobra.Command{
		Use:   "series",
		Short: "Print the incidence and coverage series for a country as JSON",
		RunE:  runSeries,
	}
	seriesCmd.Flags().StringVar(&country, "country", "", "ISO 3166-1 alpha-3 country code")
	seriesCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	seriesCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the series and a dual-axis chart to an Excel workbook",
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&country, "country", "", "ISO 3166-1 alpha-3 country code")
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output workbook path (default: <country>.xlsx)")

	countriesCmd := &cobra.Command{
		Use:   "countries",
		Short: "List the selectable countries",
		RunE:  runCountries,
	}
	countriesCmd.Flags().BoolVar(&validate, "validate", false, "Fail if the country list does not match the table rows")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chart with a country selector over HTTP",
		RunE:  runServe,
	}
	serveCmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")

	for _, cmd := range []*cobra.Command{renderCmd, seriesCmd, exportCmd} {
		_ = cmd.MarkFlagRequired("country")
	}
	rootCmd.AddCommand(renderCmd, seriesCmd, exportCmd, countriesCmd, serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func open(ctx context.Context, opts polioviz.Options) (*polioviz.Datasets, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return polioviz.Open(ctx, cfg, opts)
}

// loadFrame selects country and returns its frame. A series that failed to
// load is reported as a warning as long as the other one is present.
func loadFrame(ctx context.Context) (models.Frame, error) {
	d, err := open(ctx, polioviz.DefaultOptions())
	if err != nil {
		return models.Frame{}, err
	}
	frame, err := d.Frame(ctx, country)
	if err != nil {
		if errors.Is(err, countries.ErrUnknownCountry) || frame.Empty() {
			return models.Frame{}, err
		}
		log.Printf("warning: %v", err)
	}
	return frame, nil
}

// writeOutput writes to outputPath, or to stdout when it is empty.
func writeOutput(write func(io.Writer) error) error {
	if outputPath == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runRender(cmd *cobra.Command, args []string) error {
	imgFormat, err := render.ParseFormat(format)
	if err != nil {
		return err
	}
	frame, err := loadFrame(cmd.Context())
	if err != nil {
		return err
	}
	plot := render.Layout(frame, cfg.Dimensions())
	return writeOutput(func(w io.Writer) error {
		return render.Render(w, plot, imgFormat)
	})
}

func runSeries(cmd *cobra.Command, args []string) error {
	frame, err := loadFrame(cmd.Context())
	if err != nil {
		return err
	}
	return writeOutput(func(w io.Writer) error {
		return output.WriteJSON(w, frame, pretty)
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	frame, err := loadFrame(cmd.Context())
	if err != nil {
		return err
	}
	path := outputPath
	if path == "" {
		path = frame.Country.Code + ".xlsx"
	}
	if err := export.WriteFile(path, frame); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	charts, err := parser.ReadCharts(path)
	if err != nil {
		return fmt.Errorf("read back %s: %w", path, err)
	}
	log.Printf("wrote %s with %d chart(s)", path, len(charts))
	return nil
}

func runCountries(cmd *cobra.Command, args []string) error {
	opts := polioviz.DefaultOptions()
	opts.Strict = &validate
	d, err := open(cmd.Context(), opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, c := range d.Registry.Countries() {
		fmt.Fprintf(out, "%s\t%s\n", c.Code, c.Name)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	d, err := open(cmd.Context(), polioviz.DefaultOptions())
	if err != nil {
		return err
	}
	srv := server.New(d, cfg.Dimensions(), log.Default())
	return srv.ListenAndServe(cmd.Context(), cfg.Addr)
}
