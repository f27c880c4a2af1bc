package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reqcraft/rqc/parser"
	"github.com/reqcraft/rqc/resolver"
	"github.com/reqcraft/rqc/scaffold"
	"github.com/reqcraft/rqc/server"
	"github.com/reqcraft/rqc/watcher"
)

type devOptions struct {
	file  string
	host  string
	port  int
	mock  bool
	cors  bool
	watch bool
}

func newDevCmd(logger func() parser.Logger) *cobra.Command {
	opts := devOptions{file: scaffold.DocumentFile}

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(cmd.Context(), opts, logger())
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&opts.file, "file", "f", scaffold.DocumentFile, "document to serve")
	fs.StringVar(&opts.host, "host", "127.0.0.1", "interface to bind")
	fs.IntVarP(&opts.port, "port", "p", 6400, "port to bind")
	fs.BoolVar(&opts.mock, "mock", false, "enable the mock responder")
	fs.BoolVar(&opts.cors, "cors", false, "enable permissive CORS headers")
	fs.BoolVarP(&opts.watch, "watch", "w", false, "reload when .rqc files change")
	return cmd
}

func runDev(ctx context.Context, opts devOptions, log parser.Logger) error {
	if _, err := os.Stat(opts.file); err != nil {
		return fmt.Errorf("%s not found, run 'rqc init' first", opts.file)
	}
	baseDir := filepath.Dir(opts.file)

	res := resolver.New()
	res.Logger = log

	doc, _, err := res.Resolve(opts.file, baseDir)
	if err != nil {
		return err
	}

	store := server.NewStore(server.NewSnapshot(doc))
	log.Info("loaded document", "file", opts.file, "endpoints", len(store.Snapshot().Endpoints))

	srv := server.New(store)
	srv.Host = opts.host
	srv.Port = opts.port
	srv.Logger = log
	// CLI flags turn modes on; the config block can also enable them.
	if cfg := doc.Config; cfg != nil {
		srv.Mock = opts.mock || cfg.Mock
		srv.CORS = opts.cors || cfg.CORS
	} else {
		srv.Mock = opts.mock
		srv.CORS = opts.cors
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.watch {
		w := watcher.New()
		w.Logger = log
		go func() {
			err := w.Watch(ctx, baseDir, func() {
				reload(res, store, opts.file, baseDir, log)
			})
			if err != nil && ctx.Err() == nil {
				log.Error("watcher stopped", "error", err)
			}
		}()
	}

	return srv.Run(ctx)
}

// reload re-resolves the document and swaps the store only when resolution
// succeeds, so a broken edit keeps the last good snapshot serving.
func reload(res *resolver.Resolver, store *server.Store, file, baseDir string, log parser.Logger) {
	doc, _, err := res.Resolve(file, baseDir)
	if err != nil {
		log.Warn("reload failed, keeping previous document", "error", err)
		return
	}
	snap := server.NewSnapshot(doc)
	store.Replace(snap)
	log.Info("reloaded document", "file", file, "endpoints", len(snap.Endpoints))
}
