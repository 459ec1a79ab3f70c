package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"country-stats/internal/client"
	"country-stats/internal/stats"
	"country-stats/internal/view"
)

var errQuit = errors.New("quit requested")

type loadResult struct {
	rows []view.Row
	err  error
}

// session is the interactive loop. Input lines and load results arrive on channels; only
// the newest load's result is applied.
type session struct {
	vm      *view.ViewModel
	loader  *client.Loader
	out     io.Writer
	results chan loadResult
}

func newSession(vm *view.ViewModel, loader *client.Loader, out io.Writer) *session {
	return &session{vm: vm, loader: loader, out: out, results: make(chan loadResult, 4)}
}

func (s *session) loop(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	render(s.out, s.vm)
	s.prompt()
	for {
		select {
		case <-ctx.Done():
			s.loader.Cancel()
			color.New(color.FgYellow).Fprintln(s.out, "\nShutting down gracefully...")
			return nil
		case line, ok := <-lines:
			if !ok {
				s.loader.Cancel()
				return nil
			}
			err := s.handle(ctx, line)
			if errors.Is(err, errQuit) {
				s.loader.Cancel()
				return nil
			}
			if err != nil {
				color.New(color.FgRed).Fprintf(s.out, "Error: %v\n", err)
			}
			s.prompt()
		case res := <-s.results:
			if s.apply(res) {
				s.prompt()
			}
		}
	}
}

func (s *session) prompt() {
	fmt.Fprint(s.out, "> ")
}

// apply installs a finished load and reports whether anything was shown.
func (s *session) apply(res loadResult) bool {
	if errors.Is(res.err, stats.ErrStaleResponse) {
		return false
	}
	if res.err != nil {
		s.vm.SetRows(nil)
		color.New(color.FgRed).Fprintln(s.out, stats.ErrDataSourceUnavailable.Message)
		return true
	}
	s.vm.SetRows(res.rows)
	render(s.out, s.vm)
	return true
}

// reload loads in the background; the returned channel closes once the result is delivered
// or ctx ends.
func (s *session) reload(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		rows, err := s.loader.Load(ctx)
		select {
		case s.results <- loadResult{rows: rows, err: err}:
		case <-ctx.Done():
		}
	}()
	return done
}

func (s *session) handle(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, "/") {
		s.vm.SetQuery(strings.TrimSpace(strings.TrimPrefix(line, "/")))
		render(s.out, s.vm)
		return nil
	}

	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "n", "next":
		s.vm.NextPage()
	case "p", "prev":
		s.vm.PrevPage()
	case "g", "page":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		s.vm.SetPage(n)
	case "s", "sort":
		if len(args) == 0 {
			return fmt.Errorf("usage: s <column id>")
		}
		col, ok := view.LookupColumn(strings.Join(args, " "))
		if !ok {
			return fmt.Errorf("unknown column %q; ids: %s", strings.Join(args, " "), strings.Join(view.IDs(), ", "))
		}
		s.vm.ToggleSort(col.Key)
	case "size":
		n, err := intArg(args)
		if err != nil {
			return err
		}
		if n <= 0 {
			return fmt.Errorf("page size must be positive; presets: %v", view.PageSizes)
		}
		s.vm.SetPageSize(n)
	case "r", "reload":
		fmt.Fprintln(s.out, "Loading…")
		s.reload(ctx)
		return nil
	case "csv":
		dest := view.CSVFileName
		if len(args) > 0 {
			dest = args[0]
		}
		return exportCSV(ctx, s.out, s.vm, dest)
	case "h", "help", "?":
		printHelp(s.out)
		return nil
	case "q", "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (h for help)", cmd)
	}
	render(s.out, s.vm)
	return nil
}

func intArg(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", args[0])
	}
	return n, nil
}

func printHelp(out io.Writer) {
	color.New(color.FgCyan).Fprintln(out, "Commands")
	fmt.Fprintln(out, "  n / p         next / previous page")
	fmt.Fprintln(out, "  g <page>      go to page")
	fmt.Fprintln(out, "  / <query>     search by country name (empty clears)")
	fmt.Fprintln(out, "  s <column>    sort by column id; repeat to flip direction")
	fmt.Fprintln(out, "  size <n>      rows per page")
	fmt.Fprintln(out, "  r             reload from the API")
	fmt.Fprintln(out, "  csv [dest]    export the filtered, sorted rows")
	fmt.Fprintln(out, "  q             quit")
}
