package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // served only when profilerAddr is set
	"os"
	"time"

	"github.com/dashbook/dashbook/daemon"
	"github.com/dashbook/dashbook/dashcore"
	"github.com/dashbook/dashbook/settings"
	"github.com/dashbook/dashbook/ulogger"
	"github.com/dashbook/dashbook/util/health"
	"github.com/joho/godotenv"
	"github.com/ordishs/gocore"
	"github.com/urfave/cli/v2"
)

// Name used by build script for the binaries. (Please keep on single line)
const progname = "dashbook"

// Version & commit strings injected at build with -ldflags -X...
var version string
var commit string

func init() {
	// a missing .env is fine, real environment variables are used as is
	_ = godotenv.Load()

	gocore.SetInfo(progname, version, commit)
}

func main() {
	app := &cli.App{
		Name:    progname,
		Usage:   "read-only block explorer gateway for a Dash Core node",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Action:  serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the explorer api, the live event feed and the static site",
				Action: serve,
			},
			{
				Name:   "tip",
				Usage:  "print the node's tip height and best block hash",
				Action: tip,
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "rpc timeout",
						Value: 10 * time.Second,
					},
				},
			},
			{
				Name:   "healthcheck",
				Usage:  "query /health of a running instance, exits non-zero when it is not healthy",
				Action: healthcheck,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "url",
						Usage: "base url of the instance, defaults to asset_httpListenAddress on localhost",
					},
					&cli.DurationFlag{
						Name:  "timeout",
						Usage: "request timeout",
						Value: 5 * time.Second,
					},
				},
			},
			{
				Name:   "settings",
				Usage:  "print the effective settings, the rpc password is masked",
				Action: printSettings,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", progname, err)
		os.Exit(1)
	}
}

func serve(_ *cli.Context) error {
	tSettings := settings.NewSettings()
	logger := newLogger(tSettings, "main")

	stats := gocore.Config().Stats()
	logger.Infof("STATS\n%s\nVERSION\n-------\n%s (%s)\n\n", stats, version, commit)

	d := daemon.New(daemon.WithLoggerFactory(func(serviceName string) ulogger.Logger {
		return newLogger(tSettings, serviceName)
	}))

	if err := d.Start(logger, tSettings); err != nil {
		logger.Fatalf("%v", err)
	}

	return nil
}

func tip(c *cli.Context) error {
	tSettings := settings.NewSettings()
	logger := newLogger(tSettings, "tip")

	client, err := dashcore.NewClient(logger, tSettings)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	height, err := client.GetBlockCount(ctx)
	if err != nil {
		return err
	}

	hash, err := client.GetBestBlockHash(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "height %d\nhash   %s\n", height, hash)

	return nil
}

func healthcheck(c *cli.Context) error {
	baseURL := c.String("url")
	if baseURL == "" {
		baseURL = localURL(settings.NewSettings().Asset.HTTPListenAddress)
	}

	status, details, err := health.CheckHTTPServer(baseURL, "/health", c.Duration("timeout"))(c.Context, false)

	fmt.Fprintln(c.App.Writer, details)

	if err != nil {
		return err
	}

	if status != http.StatusOK {
		return cli.Exit(fmt.Sprintf("unhealthy, status %d", status), 1)
	}

	return nil
}

// localURL turns a listen address such as ":3000" or "0.0.0.0:3000" into a dialable url.
func localURL(listenAddress string) string {
	host, port, err := net.SplitHostPort(listenAddress)
	if err != nil {
		return "http://" + listenAddress
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}

	return "http://" + net.JoinHostPort(host, port)
}

func printSettings(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, settings.NewSettings().String())

	return nil
}

// newLogger honours logLevel_<service> over the global logLevel.
func newLogger(tSettings *settings.Settings, service string) ulogger.Logger {
	level := tSettings.LogLevel
	if serviceLevel, ok := gocore.Config().Get("logLevel_" + service); ok && serviceLevel != "" {
		level = serviceLevel
	}

	return ulogger.New(service, ulogger.WithLevel(level))
}
