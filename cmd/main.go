// Command teamforge registers participants and forms balanced teams.
//
// Usage:
//
//	teamforge                      # interactive menu
//	teamforge generate --count 50 --seed 7
//	teamforge form --size 5
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/okian/teamforge/internal/adapters/generator"
	"github.com/okian/teamforge/internal/adapters/repository"
	app "github.com/okian/teamforge/internal/app"
	"github.com/okian/teamforge/internal/config"
	"github.com/okian/teamforge/internal/console"
	"github.com/okian/teamforge/internal/domain/dedupe"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/pkg/logger"
	"github.com/okian/teamforge/pkg/metrics"
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	if err := logger.Init(); err != nil {
		// Use stderr directly since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1) //nolint:gocritic // exitAfterDefer: stop is called above
	}
}

// cli holds state shared by every subcommand.
type cli struct {
	in  io.Reader
	out io.Writer

	configFile string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	c := &cli{in: in, out: out}

	root := &cobra.Command{
		Use:           "teamforge",
		Short:         "Register participants and form balanced teams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runMenu(cmd.Context())
		},
	}
	root.SetIn(in)
	root.SetOut(out)
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "YAML config file (default: $TEAMFORGE_CONFIG)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	root.AddCommand(c.menuCmd())
	root.AddCommand(c.formCmd())
	root.AddCommand(c.generateCmd())
	return root
}

func (c *cli) setup(ctx context.Context) error {
	var opts []config.LoadOption
	if c.configFile != "" {
		opts = append(opts, config.WithFile(c.configFile))
	}
	cfg, err := config.Load(ctx, opts...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.logLevel != "" {
		cfg.LogLevel = c.logLevel
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	c.cfg = cfg
	return nil
}

func (c *cli) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive menu (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runMenu(cmd.Context())
		},
	}
}

func (c *cli) runMenu(ctx context.Context) error {
	menu := console.New(c.in, c.out,
		repository.NewCSVParticipantStore(c.cfg.ParticipantsFile),
		repository.NewCSVTeamWriter(c.cfg.TeamsFile),
		c.service(c.cfg.Seed, c.cfg.ReturnUnclaimed),
		console.WithTeamSize(c.cfg.DefaultTeamSize),
		console.WithOnFormed(func(ctx context.Context, _ *app.Result) error {
			return c.exportMetrics(ctx)
		}),
	)
	return menu.Run(ctx)
}

func (c *cli) formCmd() *cobra.Command {
	var (
		size            int
		seed            int64
		returnUnclaimed bool
	)
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Form teams from the participants file and write the teams file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("size") {
				size = c.cfg.DefaultTeamSize
			}
			if !cmd.Flags().Changed("seed") {
				seed = c.cfg.Seed
			}
			if !cmd.Flags().Changed("return-unclaimed") {
				returnUnclaimed = c.cfg.ReturnUnclaimed
			}

			people, err := repository.NewCSVParticipantStore(c.cfg.ParticipantsFile).Load(ctx)
			if err != nil {
				return err
			}
			res, err := c.service(seed, returnUnclaimed).FormTeams(ctx, people, size)
			if err != nil {
				return err
			}
			if err := repository.NewCSVTeamWriter(c.cfg.TeamsFile).Save(ctx, res.Teams); err != nil {
				return err
			}

			for _, t := range res.Teams {
				fmt.Fprintln(c.out, t.Summary())
			}
			color.New(color.FgGreen).Fprintln(c.out, res.Summary())
			return c.exportMetrics(ctx)
		},
	}
	cmd.Flags().IntVar(&size, "size", 0, "team size (default: default_team_size)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 for time-seeded (default: seed)")
	cmd.Flags().BoolVar(&returnUnclaimed, "return-unclaimed", false, "return people claimed by failed teams to the pools")
	return cmd
}

func (c *cli) generateCmd() *cobra.Command {
	var (
		count    int
		seed     int64
		appendTo bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic participants to the participants file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			people, err := generator.New(seed).People(ctx, count)
			if err != nil {
				return err
			}

			store := repository.NewCSVParticipantStore(c.cfg.ParticipantsFile)
			if appendTo {
				existing, err := store.Load(ctx)
				if err != nil {
					return err
				}
				people = mergeParticipants(ctx, existing, people)
			}
			if err := store.Save(ctx, people); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(c.out, "Wrote %d participants to %s\n", len(people), store.Path())
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 50, "number of participants to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 for time-seeded")
	cmd.Flags().BoolVar(&appendTo, "append", false, "keep existing participants")
	return cmd
}

// mergeParticipants appends generated people to existing ones, giving a fresh
// ID to every generated person whose ID is already taken.
func mergeParticipants(ctx context.Context, existing, generated []model.Person) []model.Person {
	seen := dedupe.NewInMemoryDeduper()
	for _, p := range existing {
		seen.SeenAndRecord(ctx, p.ID)
	}
	out := make([]model.Person, 0, len(existing)+len(generated))
	out = append(out, existing...)
	reassigned := 0
	for _, p := range generated {
		for seen.SeenAndRecord(ctx, p.ID) {
			p.ID = uuid.NewString()
			reassigned++
		}
		out = append(out, p)
	}
	if reassigned > 0 {
		logger.Get().Warn(ctx, "generated ids already in use, reassigned", logger.Int("count", reassigned))
	}
	return out
}

func (c *cli) service(seed int64, returnUnclaimed bool) *app.Service {
	return app.New(
		app.WithLogger(logger.Named("formation")),
		app.WithSeed(seed),
		app.WithReturnUnclaimed(returnUnclaimed),
	)
}

func (c *cli) exportMetrics(ctx context.Context) error {
	if c.cfg.MetricsFile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(c.cfg.MetricsFile); err != nil {
		return err
	}
	logger.Get().Debug(ctx, "metrics written", logger.String("path", c.cfg.MetricsFile))
	return nil
}
