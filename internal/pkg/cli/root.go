package cli

import (
	"context"
	"io"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/dialog"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/cli/prompt"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/dap"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/env"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/filesystem"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/log"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/options"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/query"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/utils/errors"
	"github.com/coldplazma/Canvas-Data2-client/internal/pkg/version"
)

const description = `
Canvas Data 2 query client

Download Canvas tables from the Instructure
Data Access Platform (DAP) to a local directory.

Start by running the "download" sub-command,
all missing values are asked interactively.
`

const usageTemplate = `Usage:{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{else if .Runnable}}
  {{.UseLine}}{{end}}{{if gt (len .Aliases) 0}}

Aliases:`

// ClientFactory creates the platform client, it is replaced in tests.
type ClientFactory func(cfg dap.Config, logger log.Logger, fs filesystem.Fs, opts ...dap.Option) query.Client

type RootCommand struct {
	cmd           *cobra.Command
	stdin         io.Reader
	stdout        io.Writer
	stderr        io.Writer
	fs            filesystem.Fs    // filesystem abstraction
	envs          *env.Map         // ENVs from OS
	options       *options.Options // parsed flags and env variables
	prompt        prompt.Prompt    // user interaction
	clientFactory ClientFactory
	start         time.Time     // cmd start time
	initialized   bool          // init method was called
	logFile       *log.File     // log file instance
	logger        log.Logger    // log to console and logFile
}

type Option func(root *RootCommand)

// WithClientFactory replaces the DAP client.
func WithClientFactory(f ClientFactory) Option {
	return func(root *RootCommand) {
		root.clientFactory = f
	}
}

// WithPrompt replaces the prompt detected from the terminal.
func WithPrompt(p prompt.Prompt) Option {
	return func(root *RootCommand) {
		root.prompt = p
	}
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdin io.Reader, stdout io.Writer, stderr io.Writer, envs *env.Map, fs filesystem.Fs, opts ...Option) *RootCommand {
	root := &RootCommand{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		fs:      fs,
		envs:    envs,
		options: options.New(),
		start:   time.Now(),
		logger:  log.NewNopLogger(),
		clientFactory: func(cfg dap.Config, logger log.Logger, fs filesystem.Fs, opts ...dap.Option) query.Client {
			return dap.New(cfg, logger, fs, opts...)
		},
	}
	for _, o := range opts {
		o(root)
	}

	// Command definition
	root.cmd = &cobra.Command{
		Use:           path.Base(os.Args[0]), // name of the binary
		Version:       version.Version(),
		Short:         description,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help if no command specified
			return cmd.Help()
		},
	}

	// Setup in/out
	root.cmd.SetIn(stdin)
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	// Setup templates
	root.cmd.SetVersionTemplate("{{.Version}}")
	root.cmd.SetUsageTemplate(
		regexp.MustCompile(`Usage:(.|\n)*Aliases:`).ReplaceAllString(root.cmd.UsageTemplate(), usageTemplate),
	)

	// Persistent flags for all sub-commands
	flags := root.cmd.PersistentFlags()
	flags.SortFlags = true
	flags.BoolP("help", "h", false, "print help for command")
	flags.StringP("log-file", "l", "", "path to a log file for details")
	flags.String("log-format", "console", "format of stdout and stderr, console or json")
	flags.StringP("working-dir", "d", "", "use other working directory")
	flags.BoolP("verbose", "v", false, "print details")
	flags.Bool("verbose-api", false, "log each API request and response")
	flags.Bool("non-interactive", false, "disable interactive dialogs")

	// Root command flags
	root.cmd.Flags().SortFlags = true
	root.cmd.Flags().BoolP("version", "V", false, "print version")

	// Init when flags are parsed
	root.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return root.init(cmd)
	}

	// Sub-commands
	root.cmd.AddCommand(
		downloadCommand(root),
		tablesCommand(root),
		schemaCommand(root),
	)

	return root
}

// Execute command or sub-command, the exit code is returned.
func (root *RootCommand) Execute(ctx context.Context) (exitCode int) {
	err := root.cmd.ExecuteContext(ctx)
	if err != nil {
		// Init, it can be uninitialized, if error occurred before PersistentPreRun call
		_ = root.init(root.cmd)
		root.logger.Error(ctx, errors.Format(err))
		if root.logFile != nil {
			root.logger.Infof(ctx, `Details can be found in the log file "%s".`, root.logFile.Path())
		}
		exitCode = 1
	}

	root.tearDown(ctx, err != nil)
	return exitCode
}

func (root *RootCommand) SetArgs(args []string) {
	root.cmd.SetArgs(args)
}

func (root *RootCommand) GetCommandByName(name string) *cobra.Command {
	for _, cmd := range root.cmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

// tearDown makes clean-up after command execution.
func (root *RootCommand) tearDown(ctx context.Context, errorOccurred bool) {
	root.logger.Debugf(ctx, "Command finished in %s.", time.Since(root.start).Round(time.Millisecond))
	_ = root.logger.Sync()
	if err := root.logFile.TearDown(errorOccurred); err != nil {
		_, _ = io.WriteString(root.stderr, err.Error()+"\n")
	}
}

// init sets logger and options after flags are parsed.
func (root *RootCommand) init(cmd *cobra.Command) error {
	if root.initialized {
		return nil
	}

	// Run only once
	root.initialized = true

	// Load values from flags and envs, the logger is not ready yet
	loadErr := root.options.Load(cmd.Context(), log.NewNopLogger(), root.envs, root.fs, cmd.Flags())

	// Setup logger
	logFormat, logFormatErr := log.NewLogFormat(root.options.GetString("log-format"))
	logFile, logFileErr := log.NewLogFile(root.options.GetString("log-file"))
	if logFileErr == nil {
		root.logFile = logFile
	}
	root.logger = log.NewCliLogger(root.stdout, root.stderr, root.logFile, logFormat, root.options.GetBool("verbose"))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if logFormatErr != nil {
		root.logger.Warnf(ctx, "Invalid log format: %s.", logFormatErr)
	}
	if logFileErr != nil && root.options.GetString("log-file") != "" {
		root.logger.Warnf(ctx, "Cannot open log file: %s", logFileErr)
	}

	// Prompt
	if root.prompt == nil {
		root.prompt = NewPrompt(root.stdin, root.stdout, root.stderr, root.options.GetBool("non-interactive"))
	}

	root.logDebugInfo(ctx)
	return loadErr
}

func (root *RootCommand) logDebugInfo(ctx context.Context) {
	for _, line := range strings.Split(strings.TrimSpace(root.cmd.Version), "\n") {
		root.logger.Debug(ctx, line)
	}
	root.logger.Debugf(ctx, "Running command %v", os.Args)
	root.logger.Debug(ctx, root.options.Dump())
}

func (root *RootCommand) dialogs() *dialog.Dialogs {
	return dialog.New(root.prompt)
}

// newClient creates the DAP client for the connection options.
func (root *RootCommand) newClient() query.Client {
	var opts []dap.Option
	if root.prompt.IsInteractive() && !root.options.GetBool("verbose") {
		opts = append(opts, dap.WithProgress(root.stderr))
	}
	cfg := dap.Config{
		BaseURL:      root.options.GetString("base-url"),
		ClientID:     root.options.GetString("client-id"),
		ClientSecret: root.options.GetString("client-secret"),
		Concurrency:  root.options.GetInt("concurrency"),
		VerboseAPI:   root.options.GetBool("verbose-api"),
	}
	return root.clientFactory(cfg, root.logger, root.fs, opts...)
}
