package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/ansuz/internal"
	"github.com/starford/ansuz/internal/clipboard"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/opener"
	pkgconfig "github.com/starford/ansuz/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadIfExists(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand config paths: %w", err)
	}
	return cfg, nil
}

// captureText returns the text to capture: an explicit --content flag
// wins, otherwise the clipboard is read.
func captureText(cmd *cli.Command) (string, error) {
	if text := cmd.String("content"); text != "" {
		return text, nil
	}
	text, err := clipboard.ReadText()
	if err != nil {
		return "", fmt.Errorf("no --content given and %w", err)
	}
	return text, nil
}

func saveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	text, err := captureText(cmd)
	if err != nil {
		return err
	}

	env, err := newEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	result, err := env.svc.Save(ctx, models.SaveRequest{
		RawContent:       text,
		ExplicitFilename: cmd.String("filename"),
		TargetFolder:     cmd.String("folder"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", result.Path)

	if cmd.Bool("open") {
		abs := env.absPath(result.Path)
		if err := opener.Open(abs, cfg.Editor.Command); err != nil {
			// The capture itself succeeded; a broken editor must not
			// turn it into a failure.
			fmt.Fprintf(os.Stderr, "saved, but could not open %s: %v\n", abs, err)
		}
	}
	return nil
}

func appendAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: ansuz append <path>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	text, err := captureText(cmd)
	if err != nil {
		return err
	}

	env, err := newEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	opts := models.AppendOptions{
		AddSeparator: cmd.Bool("separator"),
		AddTimestamp: cmd.Bool("timestamp"),
	}
	if err := env.svc.Append(ctx, path, text, opts); err != nil {
		return err
	}
	fmt.Printf("appended to: %s\n", path)
	return nil
}

func lsAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	env, err := newEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	groups, err := env.svc.Browse(ctx, int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Println("no notes")
		return nil
	}
	for _, g := range groups {
		fmt.Printf("%s\n", g.Bucket)
		for _, n := range g.Notes {
			fmt.Printf("  %s\n", n.Path)
		}
	}
	return nil
}

func foldersAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	env, err := newEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	folders, err := env.svc.Folders(ctx)
	if err != nil {
		return err
	}
	fmt.Println("/")
	for _, f := range folders {
		fmt.Println(f)
	}
	return nil
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	query := cmd.Args().First()
	if query == "" {
		return fmt.Errorf("usage: ansuz search <query>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	env, err := newEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	results, err := env.svc.Search(ctx, query, int(cmd.Int("limit")))
	if err != nil {
		return err
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return nil
	}
	for _, r := range results {
		fmt.Printf("%s\t%s\n", r.Path, r.Title)
	}
	return nil
}

func mvAction(ctx context.Context, cmd *cli.Command) error {
	from, to := cmd.Args().Get(0), cmd.Args().Get(1)
	if from == "" || to == "" {
		return fmt.Errorf("usage: ansuz mv <from> <to>")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	env, err := newEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.svc.Move(ctx, from, to); err != nil {
		return err
	}
	fmt.Printf("moved: %s -> %s\n", from, to)
	return nil
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func mcpAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	env, err := newEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	return env.mcp().ServeStdio()
}

func main() {
	contentFlag := &cli.StringFlag{
		Name:    "content",
		Aliases: []string{"m"},
		Usage:   "Text to capture (reads the clipboard when omitted)",
	}
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("ANSUZ_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:  "ansuz",
		Usage: "Save clipboard or typed text as Markdown notes in a local vault",
		Flags: []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "save",
				Usage:  "Capture text as a new note",
				Action: saveAction,
				Flags: []cli.Flag{
					contentFlag,
					&cli.StringFlag{
						Name:    "filename",
						Aliases: []string{"f"},
						Usage:   "Base name for the note (extension added automatically)",
					},
					&cli.StringFlag{
						Name:    "folder",
						Aliases: []string{"d"},
						Usage:   "Target folder inside the vault (\"/\" for the vault root)",
					},
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the saved note in the configured editor",
					},
				},
			},
			{
				Name:      "append",
				Usage:     "Append text to an existing note",
				ArgsUsage: "<path>",
				Action:    appendAction,
				Flags: []cli.Flag{
					contentFlag,
					&cli.BoolFlag{
						Name:  "separator",
						Usage: "Insert a horizontal rule before the appended text",
					},
					&cli.BoolFlag{
						Name:  "timestamp",
						Usage: "Insert a timestamp line before the appended text",
					},
				},
			},
			{
				Name:   "ls",
				Usage:  "List recent notes grouped by date",
				Action: lsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Max notes to list",
						Value:   50,
					},
				},
			},
			{
				Name:   "folders",
				Usage:  "List vault folders available as capture targets",
				Action: foldersAction,
			},
			{
				Name:      "search",
				Usage:     "Full-text search across notes",
				ArgsUsage: "<query>",
				Action:    searchAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "limit",
						Aliases: []string{"n"},
						Usage:   "Max results",
						Value:   20,
					},
				},
			},
			{
				Name:      "mv",
				Usage:     "Move or rename a note",
				ArgsUsage: "<from> <to>",
				Action:    mvAction,
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API, vault watcher, and SSE event stream",
				Action: serveAction,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio",
				Action: mcpAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
