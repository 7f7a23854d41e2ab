package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/rohits-web03/minitracker/internal/activity"
	"github.com/rohits-web03/minitracker/internal/models"
	"github.com/rohits-web03/minitracker/internal/repositories"
	"github.com/rohits-web03/minitracker/internal/swarm"
)

type simulateOptions struct {
	name        string
	sizeMB      float64
	pieceSizeMB float64
	seeders     int
	leechers    int
	maxTicks    int
	showEvents  int
}

func newSimulateCmd() *cobra.Command {
	opts := simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a swarm to completion on an in-memory tracker",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "simulated.iso", "file name")
	f.Float64Var(&opts.sizeMB, "size", 55, "file size in MB")
	f.Float64Var(&opts.pieceSizeMB, "piece-size", swarm.DefaultPieceSizeMB, "piece size in MB")
	f.IntVar(&opts.seeders, "seeders", 1, "initial seeders")
	f.IntVar(&opts.leechers, "leechers", 3, "initial leechers")
	f.IntVar(&opts.maxTicks, "max-ticks", 100, "give up after this many ticks")
	f.IntVar(&opts.showEvents, "events", 5, "number of recent events to print")
	return cmd
}

func runSimulate(ctx context.Context, opts simulateOptions, out, progressOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.leechers < 0 || opts.seeders < 0 {
		return errors.New("peer counts must not be negative")
	}

	db, err := repositories.Open(repositories.DriverSQLite, ":memory:")
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	if err := repositories.Migrate(db); err != nil {
		return err
	}
	store := repositories.NewStore(db)
	svc := swarm.NewService(store, store,
		swarm.WithNotifier(activity.NewRecorder(store, zerolog.Nop())),
		swarm.WithPieceSizeMB(opts.pieceSizeMB),
	)

	file, err := svc.RegisterFile(ctx, swarm.RegisterFileInput{Name: opts.name, SizeMB: opts.sizeMB})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Registered %q: %.1f MB in %d pieces of %.1f MB\n", file.Name, file.SizeMB, file.PieceCount, file.PieceSizeMB)

	join := func(n int, status models.PeerStatus) error {
		for i := 0; i < n; i++ {
			_, err := svc.Join(ctx, swarm.JoinInput{
				FileID:     file.ID,
				ClientName: fmt.Sprintf("%s-%d", status, i+1),
				Status:     status,
			})
			if err != nil {
				return err
			}
		}
		return nil
	}
	if err := join(opts.seeders, models.StatusSeeder); err != nil {
		return err
	}
	if err := join(opts.leechers, models.StatusLeecher); err != nil {
		return err
	}

	total := opts.seeders + opts.leechers
	bar := progressbar.NewOptions(max(total, 1),
		progressbar.OptionSetWriter(progressOut),
		progressbar.OptionSetDescription("seeders"),
		progressbar.OptionShowCount(),
	)

	ticks := 0
	counts, err := swarmCounts(ctx, svc, file)
	if err != nil {
		return err
	}
	_ = bar.Set(counts.Seeders)
	for counts.Leechers > 0 && ticks < opts.maxTicks {
		if _, err := svc.Tick(ctx); err != nil {
			return err
		}
		ticks++
		if counts, err = swarmCounts(ctx, svc, file); err != nil {
			return err
		}
		_ = bar.Set(counts.Seeders)
	}
	_ = bar.Finish()
	fmt.Fprintln(progressOut)

	if counts.Leechers > 0 {
		fmt.Fprintf(out, "Gave up after %d ticks: %d seeders, %d leechers\n", ticks, counts.Seeders, counts.Leechers)
	} else {
		fmt.Fprintf(out, "Swarm complete after %d ticks: %d seeders\n", ticks, counts.Seeders)
	}

	if opts.showEvents > 0 {
		acts, err := svc.ListActivity(ctx, file.ID, opts.showEvents)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Recent activity:")
		for _, a := range acts {
			fmt.Fprintf(out, "  %s\n", a.Message)
		}
	}
	return nil
}

func swarmCounts(ctx context.Context, svc *swarm.Service, file models.File) (swarm.SwarmCounts, error) {
	stats, err := svc.Stats(ctx, []models.File{file})
	if err != nil {
		return swarm.SwarmCounts{}, err
	}
	return stats[file.ID], nil
}
