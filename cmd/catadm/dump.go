package main

import (
	"flag"
	"fmt"
	"os"
	"sync"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/sync/errgroup"

	"github.com/brickstash/catadm/internal/domain/catalog"
)

type dumpCmdOptions struct {
	Out    string
	Select string
}

// runDump exports every kind in one document, fetching the five collections
// concurrently. Any single failed fetch fails the whole export.
func runDump(cmdCtx *commandContext, args []string) error {
	opts, err := parseDumpCmdFlags(args)
	if err != nil {
		return err
	}
	if err := requireAdmin(cmdCtx); err != nil {
		return err
	}

	var mu sync.Mutex
	document := make(map[string][]catalog.Record, len(catalog.AllKinds()))

	g, ctx := errgroup.WithContext(cmdCtx.Ctx)
	for _, kind := range catalog.AllKinds() {
		kind := kind
		g.Go(func() error {
			records, listErr := cmdCtx.App.API.List(ctx, kind)
			if listErr != nil {
				return fmt.Errorf("list %s: %w", kind, listErr)
			}
			mu.Lock()
			document[string(kind)] = records
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := os.Stdout
	if opts.Out != "" {
		f, createErr := os.Create(opts.Out)
		if createErr != nil {
			return fmt.Errorf("create output file: %w", createErr)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				cmdCtx.Logger.Warn("close output file failed", "error", closeErr)
			}
		}()
		out = f
	}

	return printProjected(out, document, opts.Select)
}

func parseDumpCmdFlags(args []string) (dumpCmdOptions, error) {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts dumpCmdOptions
	fs.StringVar(&opts.Out, "out", "", "Output file path (stdout when omitted)")
	fs.StringVar(&opts.Select, "select", "", "JMESPath expression projected over the export")

	if err := fs.Parse(args); err != nil {
		return dumpCmdOptions{}, err
	}

	if opts.Select != "" {
		if _, err := jmespath.Compile(opts.Select); err != nil {
			return dumpCmdOptions{}, fmt.Errorf("invalid --select expression: %w", err)
		}
	}

	return opts, nil
}
