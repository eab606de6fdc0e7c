package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	repl "github.com/bastiangx/kbserve/internal/cli"
	"github.com/bastiangx/kbserve/internal/logger"
	"github.com/bastiangx/kbserve/internal/utils"
	"github.com/bastiangx/kbserve/pkg/autofill"
	"github.com/bastiangx/kbserve/pkg/config"
	"github.com/bastiangx/kbserve/pkg/emoji"
	"github.com/bastiangx/kbserve/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
)

// newApp creates the CLI application with all commands. serve runs when no command is given.
func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:      AppName,
		Usage:     "Contextual keyboard suggestions: form autofill and emoji",
		Version:   Version,
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "Toggle debug mode"},
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to a kbserve.toml"},
			&cli.StringFlag{Name: "store", Usage: "Override store backend: memory|file|sqlite"},
			&cli.StringFlag{Name: "home", Usage: "Keep config and data under this dir instead of the platform config dir"},
		},
		Before: func(c *cli.Context) error {
			logger.SetOutput(c.App.ErrWriter)
			if c.Bool("debug") {
				log.SetLevel(log.DebugLevel)
				log.SetReportTimestamp(true)
			} else {
				log.SetLevel(log.WarnLevel)
			}
			return nil
		},
		Action: serveAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the MessagePack IPC server on stdin/stdout (default)",
				Action: serveAction,
			},
			{
				Name:   "repl",
				Usage:  "Drive the engine from the terminal",
				Action: replAction,
			},
			historyCmd(),
			keywordsCmd(),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	cli.VersionPrinter = printVersion
	return app
}

// env is what every command needs: resolved paths and the loaded config.
type env struct {
	pr         *utils.PathResolver
	cfg        *config.Config
	configPath string
}

func loadEnv(c *cli.Context) (*env, error) {
	var pr *utils.PathResolver
	if home := c.String("home"); home != "" {
		pr = utils.NewPathResolverAt(home)
	} else {
		var err error
		if pr, err = utils.NewPathResolver(); err != nil {
			return nil, fmt.Errorf("failed to initialize path resolver: %w", err)
		}
	}

	if status := utils.CheckDirStatus(pr.GetConfigDir()); !status.Writable {
		log.Warnf("Config dir %s is not writable, history and defaults may not persist", pr.GetConfigDir())
	}
	if c.Bool("debug") {
		for k, v := range pr.GetRuntimeInfo() {
			log.Debug("runtime", k, v)
		}
	}

	cfg, path, err := config.LoadConfigWithPriority(c.String("config"), pr)
	if err != nil {
		return nil, err
	}
	if backend := c.String("store"); backend != "" {
		cfg.Store.Backend = backend
		cfg.Validate()
	}
	log.Debugf("Using config file: (%s)", config.GetActiveConfigPath(path))
	return &env{pr: pr, cfg: cfg, configPath: path}, nil
}

func (e *env) openStore() (*autofill.Store, func(), error) {
	backend, err := e.cfg.OpenStore(e.pr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", e.cfg.Store.Backend, err)
	}
	store := autofill.NewStore(backend,
		autofill.WithMaxEntries(e.cfg.Store.MaxEntries),
		autofill.WithLogger(logger.New("store")),
	)
	closer := func() {
		if err := backend.Close(); err != nil {
			log.Warnf("Closing store: %v", err)
		}
	}
	return store, closer, nil
}

func serveAction(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	store, closeStore, err := e.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	table, err := e.cfg.LoadKeywords(e.pr)
	if err != nil {
		log.Warnf("Using builtin keywords: %v", err)
	}

	srv := server.NewServer(store, table,
		server.WithIO(c.App.Reader, c.App.Writer),
		server.WithMaxText(e.cfg.Server.MaxText),
		server.WithDefaultLimit(e.cfg.Emoji.DefaultLimit),
	)

	if e.cfg.Server.Reload && e.configPath != "" {
		watcher := config.NewWatcher(e.configPath, e.cfg.KeywordsPath(e.pr))
		watcher.OnChange(func(cfg *config.Config) {
			table, err := cfg.LoadKeywords(e.pr)
			if err != nil {
				log.Warnf("Keeping builtin keywords after reload: %v", err)
			}
			srv.ReloadKeywords(table)
		})
		if err := watcher.Start(); err != nil {
			log.Warnf("Config hot reload disabled: %v", err)
		} else {
			defer watcher.Stop()
		}
	}

	showStartupInfo(c.App.ErrWriter, e)
	return srv.Start()
}

func replAction(c *cli.Context) error {
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	store, closeStore, err := e.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	table, err := e.cfg.LoadKeywords(e.pr)
	if err != nil {
		log.Warnf("Using builtin keywords: %v", err)
	}

	log.SetReportTimestamp(false)
	return repl.NewInputHandler(store, table, c.App.Reader, e.cfg.Emoji.DefaultLimit).Start()
}

// historyCmd groups commands over learned field values.
func historyCmd() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect or edit learned form field values",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "List suggestions per category, most recent first",
				ArgsUsage: "[category]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "raw", Usage: "Show stored values in insertion order, including invalid ones"},
				},
				Action: historyList,
			},
			{
				Name:      "add",
				Usage:     "Record a value as if it was typed into a field",
				ArgsUsage: "<category> <value>",
				Action:    historyAdd,
			},
			{
				Name:      "clear",
				Usage:     "Forget one category, or everything",
				ArgsUsage: "[category]",
				Action:    historyClear,
			},
		},
	}
}

// categoriesArg resolves the optional category argument; none means all.
func categoriesArg(c *cli.Context) ([]autofill.Category, error) {
	if c.NArg() == 0 {
		return autofill.Categories(), nil
	}
	cat, ok := autofill.ParseCategory(c.Args().First())
	if !ok {
		return nil, fmt.Errorf("unknown category %q", c.Args().First())
	}
	return []autofill.Category{cat}, nil
}

func historyList(c *cli.Context) error {
	cats, err := categoriesArg(c)
	if err != nil {
		return err
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	store, closeStore, err := e.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	for _, cat := range cats {
		items := store.Get(cat)
		if c.Bool("raw") {
			if items, err = store.Raw(cat); err != nil {
				return err
			}
		}
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s\n", cat)
		for i, item := range items {
			fmt.Fprintf(c.App.Writer, "%3d. %s\n", i+1, item)
		}
	}
	return nil
}

func historyAdd(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: history add <category> <value>")
	}
	cat, ok := autofill.ParseCategory(c.Args().First())
	if !ok {
		return fmt.Errorf("unknown category %q", c.Args().First())
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	store, closeStore, err := e.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	value := strings.Join(c.Args().Tail(), " ")
	if !store.Insert(cat, value) {
		return fmt.Errorf("value %q was not stored under %s", value, cat)
	}
	return nil
}

func historyClear(c *cli.Context) error {
	cats, err := categoriesArg(c)
	if err != nil {
		return err
	}
	e, err := loadEnv(c)
	if err != nil {
		return err
	}
	store, closeStore, err := e.openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	for _, cat := range cats {
		if err := store.Clear(cat); err != nil {
			return fmt.Errorf("failed to clear %s: %w", cat, err)
		}
	}
	fmt.Fprintf(c.App.Writer, "cleared %d categories\n", len(cats))
	return nil
}

func keywordsCmd() *cli.Command {
	return &cli.Command{
		Name:      "keywords",
		Usage:     "List emoji keywords and their candidates",
		ArgsUsage: "[prefix]",
		Action: func(c *cli.Context) error {
			e, err := loadEnv(c)
			if err != nil {
				return err
			}
			table, err := e.cfg.LoadKeywords(e.pr)
			if err != nil {
				return err
			}
			for _, word := range table.WithPrefix(c.Args().First()) {
				fmt.Fprintf(c.App.Writer, "%-10s %s\n", word, strings.Join(emoji.Glyphs(table.Lookup(word)), " "))
			}
			return nil
		},
	}
}

func printVersion(c *cli.Context) {
	logger := log.NewWithOptions(c.App.ErrWriter, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ kbserve ] Contextual suggestions for your keyboard")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process on stderr.
func showStartupInfo(w io.Writer, e *env) {
	info := log.NewWithOptions(w, log.Options{Level: log.InfoLevel})
	info.Infof("Version: %s", Version)
	info.Infof("Process ID: [ %d ]", os.Getpid())
	info.Infof("config: ( %s )", config.GetActiveConfigPath(e.configPath))
	info.Infof("store: %s", e.cfg.Store.Backend)
	info.Infof("started: %s", time.Now().Format(time.TimeOnly))
	info.Info("status: ready")
}
