package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jpdelima/tagfinder"
	"github.com/jpdelima/tagfinder/fs"
	"github.com/jpdelima/tagfinder/search"
	tagslog "github.com/jpdelima/tagfinder/slog"
	"github.com/jpdelima/tagfinder/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// ConfigPath overrides the default config file location.
	// Set before calling Run().
	ConfigPath string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: yaml.DefaultPath(),
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tagfind"),
		kong.Description("Count tag occurrences across a directory of JSON documents."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tagfind --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if err := m.applyConfig(cli, parser.Model); err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	opts := []fs.Option{
		fs.WithTimeout(cli.Timeout),
		fs.WithMaxOpen(cli.MaxOpen),
	}
	if cli.ReadLimit > 0 {
		opts = append(opts, fs.WithReadLimit(cli.ReadLimit))
	}
	loader := tagslog.NewCorpusLoader(fs.NewLoader(opts...), logger)
	counter := tagslog.NewTagCounter(search.NewEngine(), logger)

	var tags tagfinder.TagSource
	if cli.TagsFile != "" {
		tags = fs.NewTagFileSource(cli.TagsFile)
	}

	deps := &Dependencies{
		Ctx:     ctx,
		Stdin:   stdin,
		Stdout:  stdout,
		Stderr:  stderr,
		Loader:  loader,
		Counter: counter,
		Tags:    tags,
	}
	return kongCtx.Run(deps)
}

// applyConfig overlays config file values onto flags the user did not pass
// explicitly. An explicitly passed --config must exist; the conventional
// location is optional.
func (m *Main) applyConfig(cli *CLI, model *kong.Application) error {
	path := cli.Config
	required := path != ""
	if path == "" {
		path = m.ConfigPath
	}
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if required {
			return tagfinder.Errorf(tagfinder.ENOTFOUND, "cannot read config file %q: %v", path, err)
		}
		return nil
	}

	cfg, err := yaml.Load(path)
	if err != nil {
		return err
	}

	explicit := make(map[string]bool)
	for _, flag := range model.Flags {
		explicit[flag.Name] = flag.Set
	}
	OverlayConfig(cli, cfg, explicit)
	return nil
}

// OverlayConfig applies config file values to every flag whose name is not
// marked explicit. A flag passed on the command line always wins, even when
// its value equals the default.
func OverlayConfig(cli *CLI, cfg *yaml.Config, explicit map[string]bool) {
	if !explicit["timeout"] && cfg.LoadTimeoutMs > 0 {
		cli.Timeout = time.Duration(cfg.LoadTimeoutMs) * time.Millisecond
	}
	if !explicit["max-open"] && cfg.MaxOpen > 0 {
		cli.MaxOpen = cfg.MaxOpen
	}
	if !explicit["read-limit"] && cfg.ReadLimitRps > 0 {
		cli.ReadLimit = cfg.ReadLimitRps
	}
	if !explicit["tags-file"] && cfg.TagsFile != "" {
		cli.TagsFile = cfg.TagsFile
	}
	if !explicit["verbose"] && cfg.Verbose {
		cli.Verbose = true
	}
}
