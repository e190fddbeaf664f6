// Command pagetree reconstructs the layout of PDF pages and prints their
// text lines, their component trees as markup, or paints them as images.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/pagetree"
)

var (
	pageSpec    string
	tolerance   float64
	noMargins   bool
	concurrency int
	verbose     bool
)

// RootCmd is the pagetree command
var RootCmd = &cobra.Command{
	Use:           "pagetree",
	Short:         "Reconstruct the layout of PDF pages",
	Long:          "Reconstruct PDF pages as trees of boxes, groups, margins and text, and read them in reading order",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&pageSpec, "pages", "", "Pages to read, e.g. 1,3-5 (default all)")
	flags.Float64Var(&tolerance, "tolerance", 0, "Containment tolerance in points")
	flags.BoolVar(&noMargins, "no-margins", false, "Disable header and footer detection")
	flags.IntVar(&concurrency, "concurrency", 1, "Number of pages analyzed in parallel")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("pagetree failed", "error", err)
		os.Exit(1)
	}
}

// extractor builds the configured extractor for a file
func extractor(cmd *cobra.Command, filename string) (*pagetree.Extractor, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	e := pagetree.Open(filename).
		Tolerance(tolerance).
		Concurrency(concurrency).
		Logger(logger).
		Context(cmd.Context())
	if noMargins {
		e = e.WithoutMargins()
	}

	ranges, err := parsePages(pageSpec)
	if err != nil {
		return nil, err
	}
	for _, r := range ranges {
		e = e.PageRange(r[0], r[1])
	}
	return e, nil
}

// parsePages parses a comma separated list of page numbers and inclusive
// ranges. A single page is returned as a range of one. Ranges are checked
// against the document only when it is read.
func parsePages(spec string) ([][2]int, error) {
	var ranges [][2]int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		from, to, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(from))
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(to)); err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		if end < start {
			return nil, fmt.Errorf("invalid page range %q", part)
		}
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges, nil
}
