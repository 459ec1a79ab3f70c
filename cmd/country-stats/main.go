// Command country-stats shows the country stats table in the terminal and exports it.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"country-stats/internal/client"
	"country-stats/internal/config"
	"country-stats/internal/export"
	"country-stats/internal/logging"
	"country-stats/internal/stats"
	"country-stats/internal/view"
)

type options struct {
	configPath  string
	apiBase     string
	query       string
	sortKey     string
	orderBy     string
	desc        bool
	page        int
	pageSize    int
	csvDest     string
	interactive bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("country-stats", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "optional YAML config file")
	fs.StringVar(&opts.apiBase, "api", "", "API base URL (overrides API_BASE_URL)")
	fs.StringVar(&opts.query, "q", "", "filter by country name")
	fs.StringVar(&opts.sortKey, "sort", view.DefaultSortKey, "sort column: key, label or id")
	fs.StringVar(&opts.orderBy, "order-by", "", `order_by string, e.g. "population desc" (wins over -sort)`)
	fs.BoolVar(&opts.desc, "desc", false, "sort descending")
	fs.IntVar(&opts.page, "page", 1, "page number")
	fs.IntVar(&opts.pageSize, "page-size", 0, "rows per page (overrides PAGE_SIZE)")
	fs.StringVar(&opts.csvDest, "csv", "", "export destination: path, directory or blob URL")
	fs.BoolVar(&opts.interactive, "i", false, "interactive mode")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdin, color.Output); err != nil {
		if errors.Is(err, stats.ErrDataSourceUnavailable) {
			color.New(color.FgRed).Fprintln(os.Stderr, stats.ErrDataSourceUnavailable.Message)
		} else {
			color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func loadClientConfig(opts options) (config.Client, error) {
	cfg, err := config.LoadClient(opts.configPath)
	if err != nil {
		return config.Client{}, err
	}
	if opts.apiBase != "" {
		cfg.APIBase = strings.TrimRight(strings.TrimSpace(opts.apiBase), "/")
	}
	if opts.pageSize > 0 {
		cfg.PageSize = opts.pageSize
	}
	return cfg, cfg.Validate()
}

func sortSpec(opts options) (view.SortSpec, error) {
	if strings.TrimSpace(opts.orderBy) != "" {
		return view.ParseOrderBy(opts.orderBy)
	}
	col, ok := view.LookupColumn(opts.sortKey)
	if !ok {
		return view.SortSpec{}, fmt.Errorf("unknown sort column %q", opts.sortKey)
	}
	spec := view.SortSpec{Key: col.Key, Dir: view.Asc}
	if opts.desc {
		spec.Dir = view.Desc
	}
	return spec, nil
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	cfg, err := loadClientConfig(opts)
	if err != nil {
		return err
	}
	logging.Setup(logging.Config{Format: "text", Level: "warn"})

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	spec, err := sortSpec(opts)
	if err != nil {
		return err
	}

	vm := view.NewViewModel(view.NewFormatter(loc), cfg.PageSize)
	vm.SetQuery(opts.query)
	vm.SetSort(spec)

	loader := client.NewLoader(client.New(cfg, nil))
	rows, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	vm.SetRows(rows)
	vm.SetPage(opts.page)

	if opts.csvDest != "" {
		if err := exportCSV(ctx, out, vm, opts.csvDest); err != nil {
			return err
		}
	}
	if opts.interactive {
		s := newSession(vm, loader, out)
		return s.loop(ctx, in)
	}
	if opts.csvDest == "" {
		render(out, vm)
	}
	return nil
}

func exportCSV(ctx context.Context, out io.Writer, vm *view.ViewModel, dest string) error {
	rows := vm.Derived()
	where, err := export.Write(ctx, dest, vm.Formatter(), rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %d rows to %s\n", len(rows), where)
	return nil
}
