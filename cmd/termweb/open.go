package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/termweb/termweb/internal/browser"
	"github.com/termweb/termweb/internal/config"
	"github.com/termweb/termweb/internal/logging"
	"github.com/termweb/termweb/internal/renderer"
	"github.com/termweb/termweb/internal/rpc"
	"github.com/termweb/termweb/internal/termimg"
	"github.com/termweb/termweb/internal/termio"
	"github.com/termweb/termweb/internal/transport"
	"github.com/termweb/termweb/internal/viewer"
)

var (
	openMobile    bool
	openScale     float64
	openChromeBin string
)

func init() {
	openCmd.Flags().BoolVar(&openMobile, "mobile", false, "emulate a mobile viewport")
	openCmd.Flags().Float64Var(&openScale, "scale", 0, "device scale factor override (0 keeps the config default)")
	openCmd.Flags().StringVar(&openChromeBin, "chrome-bin", "", "path to the browser binary (overrides config/CHROME_BIN)")
}

var openCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "launch an interactive browser-streaming session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOpen(args[0])
	},
}

// initLogging installs the process-wide slog handler per cfg, routing
// to a log file when configured so startup never writes to the
// terminal the viewer is about to take over.
func initLogging(cfg *config.Config) (io.Closer, error) {
	var out io.Writer = os.Stderr
	var closer io.Closer
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closer = f
	}
	logging.Init(cfg.LogFormat, cfg.LogLevel, out)
	return closer, nil
}

// runOpen performs the full startup sequence named by §5/§6: resolve
// and launch the browser, connect the RPC channel, attach a target,
// build the render/input engine, and drive it until the session ends.
// Exit code follows §7: any fatal error here causes a non-zero exit.
func runOpen(url string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if openMobile {
		cfg.Mobile = true
	}
	if openScale > 0 {
		cfg.InitialScale = openScale
	}
	if openChromeBin != "" {
		cfg.ChromeBinary = openChromeBin
	}

	if closer, err := initLogging(cfg); err != nil {
		return err
	} else if closer != nil {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	binary, err := resolveChromeBinary(cfg.ChromeBinary)
	if err != nil {
		return err
	}

	browserProc, endpoint, err := launchBrowser(ctx, binary, cfg.RemoteDebuggingPort)
	if err != nil {
		return err
	}
	defer browserProc.stop()

	tr, err := (transport.WebsocketDialer{}).Dial(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("connect to browser: %w", err)
	}
	defer tr.Close()

	client := rpc.NewClient(tr)
	defer client.Close()

	sess := browser.NewSession(client)
	if err := sess.SetDiscoverTargets(ctx, true); err != nil {
		return fmt.Errorf("enable target discovery: %w", err)
	}

	_, sessionID, err := sess.CreateTarget(ctx, url)
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}
	sess.SetSessionID(sessionID)

	sub := client.SubscribeEvents("Page.", "Target.", "Browser.")

	var eng *engine
	term, err := termio.Open(
		func(data []byte) {
			if eng != nil {
				eng.handleInput(data)
			}
		},
		func(sz termio.Size) {
			if eng != nil {
				eng.handleResize(sz)
			}
		},
	)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}

	sink := termimg.NewSink(term.Out())
	r := renderer.New(sink)
	v := viewer.New(sess, r, cfg.SingleTabMode)

	eng = newEngine(cfg, sess, v)
	eng.term = term
	if err := eng.start(); err != nil {
		term.Close()
		return fmt.Errorf("start engine: %w", err)
	}
	defer eng.stop()

	// eng.start() already issued the initial SetViewport via
	// handleResize; only the screencast itself needs starting here.
	if _, err := sess.StartScreencast(ctx, browser.ScreencastParams{
		Format:        "jpeg",
		Quality:       eng.tier.Quality,
		MaxWidth:      eng.viewportWidth(),
		MaxHeight:     eng.viewportHeight(),
		EveryNthFrame: eng.tier.EveryNthFrame,
	}); err != nil {
		return fmt.Errorf("start screencast: %w", err)
	}

	eng.run(ctx, sub)
	return nil
}
