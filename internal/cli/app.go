// Package cli is the smarted admin console: a command-line front end over
// the resource clients and the session service.
package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/amrelfalogy/smarted/internal/app/clients"
	"github.com/amrelfalogy/smarted/internal/app/services"
	"github.com/amrelfalogy/smarted/internal/config"
	"github.com/amrelfalogy/smarted/internal/pkg/credstore"
	"github.com/amrelfalogy/smarted/internal/pkg/logger"
)

// Options lets callers replace the console's collaborators. Zero values
// are filled from the loaded config.
type Options struct {
	Out        io.Writer
	Err        io.Writer
	Config     *config.Config
	Store      credstore.Store
	HTTPClient *http.Client
	Sleeper    services.Sleeper
}

// console holds the dependencies shared by every command. They are built in
// the app's Before hook, once flags are parsed.
type console struct {
	opts    Options
	cfg     *config.Config
	store   credstore.Store
	clients *clients.Clients
	session *services.SessionService
}

// NewApp builds the smarted command tree
func NewApp(opts Options) *cli.App {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	con := &console{opts: opts}

	return &cli.App{
		Name:      "smarted",
		Usage:     "SmartED admin console",
		Version:   "1.0.0",
		Writer:    opts.Out,
		ErrWriter: opts.Err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to the config file",
				Value:   filepath.Join("configs", "config.yaml"),
				EnvVars: []string{"SMARTED_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "backend base URL, overrides the config file",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log requests and failures to stderr",
			},
		},
		Before: con.setup,
		// Errors are returned to the caller, which picks the exit status
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			con.loginCommand(),
			con.logoutCommand(),
			con.whoamiCommand(),
			con.lessonsCommand(),
			con.unitsCommand(),
			con.yearsCommand(),
			con.usersCommand(),
			con.paymentsCommand(),
			con.codesCommand(),
			con.uploadCommand(),
			con.dashboardCommand(),
		},
	}
}

func (con *console) setup(c *cli.Context) error {
	level := logger.WarnLevel
	if c.Bool("verbose") {
		level = logger.DebugLevel
	}
	logger.Configure(logger.Config{Level: level, Pretty: true, Output: con.opts.Err})

	cfg := con.opts.Config
	if cfg == nil {
		loaded, err := config.LoadConfig(c.String("config"))
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if c.IsSet("backend") {
		cfg.Backend.BaseURL = c.String("backend")
	}
	con.cfg = cfg

	con.store = con.opts.Store
	if con.store == nil {
		store, err := credstore.NewLocalStore(cfg.Session.CredentialsPath)
		if err != nil {
			return fmt.Errorf("open credential store: %w", err)
		}
		con.store = store
	}

	httpClient := con.opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.BackendTimeout()}
	}

	con.clients = clients.New(clients.Options{
		BaseURL:    cfg.Backend.BaseURL,
		HTTPClient: httpClient,
		Tokens:     con.store,
		LoginPath:  cfg.Backend.LoginPath,
		LogoutPath: cfg.Backend.LogoutPath,
	})

	con.session = services.NewSessionService(
		con.clients.Auth,
		con.store,
		&printNavigator{w: con.opts.Out},
		&printNotifier{w: con.opts.Out},
		services.SessionConfig{
			RedirectDelay: cfg.RedirectDelay(),
			LoginPath:     cfg.Session.LoginPath,
		},
		logger.ForComponent("session"),
	)
	if con.opts.Sleeper != nil {
		con.session.WithSleeper(con.opts.Sleeper)
	}
	return nil
}

// printNavigator stands in for route changes: it tells the operator where
// the console would go next.
type printNavigator struct {
	w io.Writer
}

func (n *printNavigator) Navigate(path string) {
	fmt.Fprintf(n.w, "Redirecting to %s\n", path)
}

type printNotifier struct {
	w io.Writer
}

func (n *printNotifier) Success(message string) {
	fmt.Fprintln(n.w, message)
}

// ExitCode maps an error returned by the app to a process exit status
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}
