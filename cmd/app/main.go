package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/credenda/internal"
	"github.com/starford/credenda/internal/view"
	pkgconfig "github.com/starford/credenda/pkg/config"
)

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.RunMCP(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("mcp run error: %w", err)
	}
	return nil
}

// oneShot builds the reader with logs on stderr and prints fn's output as JSON.
func oneShot(fn func(ctx context.Context, c *internal.Components, cmd *cli.Command) any) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := internal.Build(internal.WithConfig(cfg), internal.WithLogOutput(os.Stderr))
		if err != nil {
			return err
		}
		return printJSON(cmd.Root().Writer, fn(ctx, c, cmd))
	}
}

func printJSON(w io.Writer, v any) error {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func toggles(cmd *cli.Command) view.Toggles {
	return view.Toggles{
		ShowScripture:  !cmd.Bool("no-scripture"),
		ShowNotes:      !cmd.Bool("no-notes"),
		ShowCommentary: !cmd.Bool("no-commentary"),
	}
}

func main() {
	toggleFlags := []cli.Flag{
		&cli.BoolFlag{Name: "no-scripture", Usage: "Hide scripture proofs"},
		&cli.BoolFlag{Name: "no-notes", Usage: "Hide historical notes"},
		&cli.BoolFlag{Name: "no-commentary", Usage: "Hide commentary"},
	}

	cmd := &cli.Command{
		Name:   "credenda",
		Usage:  "Reader for the Thirty-Nine Articles and the Daily Office, served as view-models over HTTP and MCP",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "mcp",
				Usage:  "Serve a reading session over MCP stdio",
				Action: serveMCP,
			},
			{
				Name:      "view",
				Usage:     "Render one location and print its view-model",
				ArgsUsage: "<location>",
				Flags:     toggleFlags,
				Action: oneShot(func(ctx context.Context, c *internal.Components, cmd *cli.Command) any {
					location := cmd.Args().First()
					if location == "" {
						location = "/"
					}
					return c.Reader.Render(ctx, location, toggles(cmd))
				}),
			},
			{
				Name:      "search",
				Usage:     "Search the articles and print the results view-model",
				ArgsUsage: "<query>",
				Action: oneShot(func(ctx context.Context, c *internal.Components, cmd *cli.Command) any {
					return c.Reader.Search(ctx, cmd.Args().First(), "/", view.AllSections())
				}),
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
