package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/BenjaminIrwin/scatexparser/internal"
	"github.com/BenjaminIrwin/scatexparser/internal/history"
	"github.com/BenjaminIrwin/scatexparser/internal/mcpserver"
	"github.com/BenjaminIrwin/scatexparser/internal/parseservice"
	"github.com/BenjaminIrwin/scatexparser/internal/recognize"
	pkgconfig "github.com/BenjaminIrwin/scatexparser/pkg/config"
)

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func parseOne(ctx context.Context, cmd *cli.Command) error {
	text := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if text == "" {
		return fmt.Errorf("usage: parse [--lang CODE]... [--anchor RFC3339] TEXT")
	}

	languages := cmd.StringSlice("lang")
	if len(languages) == 0 {
		languages = []string{"en"}
	}

	anchor := time.Now()
	if raw := cmd.String("anchor"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("anchor must be RFC 3339: %w", err)
		}
		anchor = t
	}

	rec, err := recognize.New(languages)
	if err != nil {
		return err
	}
	svc := parseservice.NewService(rec, languages, "", nil, nil, slog.Default())

	res, err := svc.Parse(ctx, text, anchor)
	if err != nil {
		return err
	}
	if !res.Matched {
		fmt.Println("no match")
		return nil
	}

	fmt.Printf("locale:     %s\n", res.Locale)
	fmt.Printf("period:     %s\n", res.Period)
	fmt.Printf("expression: %s\n", res.Text)
	if res.Resolved {
		fmt.Printf("interval:   [%s, %s]\n",
			res.Interval.Start.Format(time.RFC3339),
			res.Interval.End.Format(time.RFC3339))
	} else {
		fmt.Println("interval:   unresolvable")
	}
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rec, err := recognize.NewWithOverrides(cfg.Parser.Languages, cfg.Parser.OverridesDir)
	if err != nil {
		return err
	}

	db, err := history.Open(cfg.SQLite.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := parseservice.NewService(rec, cfg.Parser.Languages, cfg.Parser.OverridesDir, db, nil, slog.Default())
	return mcpserver.New(svc).ServeStdio()
}

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}

	cmd := &cli.Command{
		Name:   "scatexparser",
		Usage:  "Natural-language date parser with a typed expression tree, REST API, and MCP server",
		Action: serve,
		Flags:  []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Parse a single expression and print the result",
				ArgsUsage: "TEXT",
				Action:    parseOne,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:    "lang",
						Aliases: []string{"l"},
						Usage:   "Locale codes to try, in order",
					},
					&cli.StringFlag{
						Name:  "anchor",
						Usage: "RFC 3339 anchor instant (defaults to now)",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve MCP tools over stdio",
				Action: serveMCP,
				Flags:  []cli.Flag{configFlag},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
