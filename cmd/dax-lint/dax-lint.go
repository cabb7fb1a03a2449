package main

import (
	"context"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/lestrrat-go/dax"
	"github.com/lestrrat-go/dax/cache"
	"github.com/lestrrat-go/dax/internal/cliutil"
	"github.com/lestrrat-go/dax/node"
	"github.com/lestrrat-go/dax/render/raster"
	"github.com/lestrrat-go/dax/s11n"
	"github.com/lestrrat-go/dax/script"
	"github.com/lestrrat-go/dax/traverse"
)

type cmdopts struct {
	Format     string        `long:"format" choice:"xml" choice:"tree" choice:"none" default:"xml"`
	PNG        string        `long:"png"`
	Width      int           `long:"width"`
	Height     int           `long:"height"`
	Scripts    bool          `long:"scripts"`
	Advance    time.Duration `long:"advance"`
	Fetch      bool          `long:"fetch"`
	Base       string        `long:"base"`
	CPUProfile string        `long:"cpuprofile"`
	Verbose    bool          `short:"v" long:"verbose"`
	Version    bool          `long:"version"`
}

func main() {
	os.Exit(_main())
}

func showVersion() {
	fmt.Printf("dax-lint: using dax version %s\n", dax.Version)
}

func showUsage() {
	fmt.Printf(`Usage : dax-lint [options] SVGfiles ...
	Parse the documents and output the result of the parsing
	--format=xml|tree|none : how to print each document (default xml)
	--png=FILE : render the document to a PNG file (single input only)
	--width=N --height=N : size of the PNG, taken from the root by default
	--scripts : run the document's scripts before printing
	--advance=DURATION : advance the script clock, firing timers
	--fetch : download http(s) resources before printing
	--base=IRI : base IRI for documents read from standard input
	--cpuprofile=FILE : write a CPU profile
	--verbose : log warnings to standard error
	--version : display the version of the library used
`)
}

func _main() int {
	opts := cmdopts{}
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		showUsage()
		return 1
	}

	if opts.Version {
		showVersion()
		return 0
	}

	if opts.CPUProfile != "" {
		f, err := os.Create(opts.CPUProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	level := slog.LevelError
	if opts.Verbose {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if opts.PNG != "" && len(args) > 1 {
		fmt.Fprintf(os.Stderr, "--png accepts a single input\n")
		return 1
	}

	ctx := context.Background()
	l := &linter{opts: opts, logger: logger, out: os.Stdout}
	switch {
	case len(args) > 0: // filename present
		for _, f := range args {
			if err := l.run(ctx, f, nil); err != nil {
				fmt.Fprintf(os.Stderr, "%s: %s\n", f, err)
				return 1
			}
		}
	case !cliutil.IsTty(os.Stdin.Fd()):
		if err := l.run(ctx, "", os.Stdin); err != nil {
			fmt.Fprintf(os.Stderr, "%s\n", err)
			return 1
		}
	default:
		showUsage()
		return 1
	}
	return 0
}

type linter struct {
	opts    cmdopts
	logger  *slog.Logger
	out     io.Writer
	pending []*cache.Entry
}

// run handles one document. When in is nil, path is opened.
func (l *linter) run(ctx context.Context, path string, in io.Reader) error {
	l.pending = l.pending[:0]
	c := cache.New(
		cache.WithLogger(l.logger),
		cache.WithFetcher(cache.FetchFunc(func(e *cache.Entry) {
			l.pending = append(l.pending, e)
		})),
	)

	options := []dax.ParseOption{dax.WithCache(c), dax.WithLogger(l.logger)}
	if l.opts.Base != "" {
		options = append(options, dax.WithBaseIRI(l.opts.Base))
	}

	var doc *node.Document
	var err error
	if in == nil {
		doc, err = dax.ParseFile(ctx, path, options...)
	} else {
		doc, err = dax.ParseReader(ctx, in, options...)
	}
	if err != nil {
		return err
	}

	if l.opts.Fetch {
		l.fetchPending(ctx)
	}

	if l.opts.Scripts {
		loop := script.NewLoop()
		e := script.New(doc, script.WithScheduler(loop), script.WithLogger(l.logger))
		if err := e.RunScripts(ctx); err != nil {
			l.logger.Error("scripts failed", slog.String("error", err.Error()))
		}
		if l.opts.Advance > 0 {
			loop.Advance(l.opts.Advance)
		}
	}

	switch l.opts.Format {
	case "xml":
		var d s11n.Dumper
		if err := d.DumpDoc(l.out, doc); err != nil {
			return err
		}
	case "tree":
		p := traverse.NewPrinter(l.out)
		traverse.New(doc, p).Apply()
		if err := p.Err(); err != nil {
			return err
		}
	}

	if l.opts.PNG != "" {
		return l.render(doc)
	}
	return nil
}

// fetchPending downloads the remote resources requested while parsing.
// Each entry is marked ready once its file is written.
func (l *linter) fetchPending(ctx context.Context) {
	if len(l.pending) == 0 {
		return
	}
	dir, err := os.MkdirTemp("", "dax-lint")
	if err != nil {
		l.logger.Error("failed to create download directory", slog.String("error", err.Error()))
		return
	}

	client := &http.Client{Timeout: 30 * time.Second}
	for i, e := range l.pending {
		local := filepath.Join(dir, fmt.Sprintf("%d%s", i, filepath.Ext(e.URI())))
		if err := download(ctx, client, e.URI(), local); err != nil {
			l.logger.Warn("failed to fetch resource", slog.String("uri", e.URI()), slog.String("error", err.Error()))
			continue
		}
		e.SetLocalURI((&url.URL{Scheme: "file", Path: local}).String())
	}
}

func download(ctx context.Context, client *http.Client, uri, dst string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return err
	}
	res, err := client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", res.Status)
	}

	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, res.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (l *linter) render(doc *node.Document) error {
	w, h := l.opts.Width, l.opts.Height
	if root := doc.DocumentElement(); root != nil {
		if svg, ok := root.Data().(*node.Svg); ok {
			if w <= 0 {
				w = int(math.Ceil(svg.Width.Pixels(100)))
			}
			if h <= 0 {
				h = int(math.Ceil(svg.Height.Pixels(100)))
			}
		}
	}
	if w <= 0 {
		w = 100
	}
	if h <= 0 {
		h = 100
	}

	b := raster.New(w, h, raster.WithLogger(l.logger))
	traverse.New(doc, b).Apply()
	if n := b.Waiting(); n > 0 {
		l.logger.Warn("images not drawn, their resources are not available", slog.Int("count", n))
	}

	f, err := os.Create(l.opts.PNG)
	if err != nil {
		return err
	}
	if err := png.Encode(f, b.Image()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
