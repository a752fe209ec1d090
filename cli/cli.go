package cli

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/qosasa/qosasa/cli/cmd"
	"github.com/qosasa/qosasa/pkg"
	"github.com/qosasa/qosasa/settings"
)

// CLI is the top-level command-line interface for qosasa.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	PackagesDir string `default:"${packagesDir}" help:"Snippet packages directory." name:"packages-dir" type:"path"`

	Gen   cmd.Gen   `cmd:"" help:"Generate a snippet."`
	Parse cmd.Parse `cmd:"" help:"Print the parsed arguments of a snippet."`
	Show  cmd.Show  `cmd:"" help:"Print the compiled schema of a snippet."`
	List  cmd.List  `cmd:"" help:"List available snippets."`
	Alias cmd.Alias `cmd:"" help:"Add or remove a snippet alias."`
	Init  cmd.Init  `cmd:"" help:"Write the settings file."`
	Repl  cmd.Repl  `cmd:"" help:"Try a snippet interactively."`
}

// Run executes the qosasa CLI with the given arguments, writing command
// output to stdout. exit is called by kong for help and usage errors.
func Run(
	ctx context.Context,
	stdout io.Writer,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	// Pre-scan for logger flags so the logger is configured before kong
	// reports anything.
	cli.Log.scan(args)

	settingsPath := settings.DefaultPath()
	if p := os.Getenv(pkg.Env("SETTINGS")); p != "" {
		settingsPath = p
	}

	s, err := settings.Load(settingsPath)
	if err != nil {
		return err
	}

	vars := kong.Vars{
		cmd.SettingsIdentifier: settingsPath,
		cmd.CacheIdentifier:    pkg.CacheDir(),
		"packagesDir":          settings.DefaultPackagesDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	parser, err := kong.New(&cli,
		kong.Name(pkg.Prefix()),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.Writers(stdout, os.Stderr),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				NoExpandSubcommands: true,
			}),
		kong.Resolvers(settingsResolver{settings: s}),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithWorkspace(ctx, &cmd.Workspace{
		Settings:    s,
		PackagesDir: cli.PackagesDir,
		CacheDir:    pkg.CacheDir(),
		Stdout:      stdout,
	})

	cli.Log.start(ctx)

	// No-op unless built with tag pprof and a mode was given.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}
