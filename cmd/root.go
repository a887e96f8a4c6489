package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fgrehm/surf/internal/catalog"
	"github.com/fgrehm/surf/internal/config"
	"github.com/fgrehm/surf/internal/editor"
	"github.com/fgrehm/surf/internal/flow"
	"github.com/fgrehm/surf/internal/launch"
	"github.com/fgrehm/surf/internal/remote"
	"github.com/fgrehm/surf/internal/ui"
	"github.com/fgrehm/surf/internal/workspace"
	"github.com/spf13/cobra"
)

var (
	debugFlag  bool
	configFlag string
	logger     = newLogger(slog.LevelWarn)
	userConfig = defaultUserConfig()
)

// Version variables injected at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Built   = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "surf [request]",
	Short: "Recent Windsurf workspaces and SSH hosts for your launcher",
	Long: `Recent Windsurf workspaces and SSH hosts for your launcher.

The launcher calls surf with a single JSON argument:
  surf '{"method":"query","parameters":["proj"]}'
  surf '{"method":"open_workspace","parameters":["<exe>","<uri>"]}'
  surf '{"method":"open_remote","parameters":["<exe>","<host>"]}'`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configFlag
		if path == "" {
			p, err := config.UserConfigPath()
			if err != nil {
				logger.Debug("no user config path", "error", err)
			}
			path = p
		}
		if path != "" {
			cfg, err := config.LoadUserConfig(path)
			if err != nil {
				logger.Warn("could not load config, using defaults", "error", err)
			}
			userConfig = cfg
		}

		if debugFlag || userConfig.Debug {
			logger = newLogger(slog.LevelDebug)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		req, err := parseRequest(args[0])
		if err != nil {
			return err
		}
		return newApp().dispatch(cmd.Context(), cmd.OutOrStdout(), req)
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to config.toml (defaults to $SURF_CONFIG or the user config dir)")
	rootCmd.SetVersionTemplate(fmt.Sprintf("surf version %s\n", Version))
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(instancesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command with signal handling.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		u := newUI()
		u.Error(err.Error())
		fmt.Fprintf(os.Stderr, "\nsurf %s (%s)\n", Version, Commit)
		os.Exit(1)
	}
}

// newLogger returns a text logger on stderr with UTC timestamps. stdout is
// reserved for protocol responses.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.TimeValue(t.UTC())
				}
			}
			return a
		},
	}))
}

func defaultUserConfig() *config.UserConfig {
	return &config.UserConfig{Icon: config.DefaultIcon}
}

// newUI creates a UI that writes to stdout and stderr.
func newUI() *ui.UI {
	return ui.New(os.Stdout, os.Stderr)
}

// uiFor creates a UI on cmd's output streams.
func uiFor(cmd *cobra.Command) *ui.UI {
	return ui.New(cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// opener launches the editor. Satisfied by *launch.Launcher.
type opener interface {
	OpenWorkspace(exe, rawPath string)
	OpenRemote(exe, host string)
}

// app wires the discovery pipeline for one invocation.
type app struct {
	locator  *editor.Locator
	catalog  *catalog.Catalog
	handler  *flow.Handler
	launcher opener
}

// newApp builds the pipeline from the loaded user config.
func newApp() *app {
	locator := editor.NewLocator(userConfig.Editor, editor.OSEnv(), logger)
	c := catalog.New(
		locator,
		workspace.NewHistoryReader(workspace.DefaultStyle(), logger),
		remote.NewReader(logger),
		logger,
	)
	return &app{
		locator:  locator,
		catalog:  c,
		handler:  flow.NewHandler(c, locator.Product().Name, userConfig.Icon),
		launcher: launch.New(logger),
	}
}

// versionString returns a formatted version string for display.
// For dev builds, includes commit and build timestamp.
func versionString() string {
	v := "surf " + Version
	if strings.Contains(Version, "-dev") && Commit != "unknown" {
		v += " (" + Commit
		if Built != "unknown" {
			v += ", " + Built
		}
		v += ")"
	}
	return v
}
