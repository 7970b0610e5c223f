package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diegoprojetos/funneledger/internal/config"
	"github.com/diegoprojetos/funneledger/internal/domain"
	"github.com/diegoprojetos/funneledger/internal/envinfo"
	"github.com/diegoprojetos/funneledger/internal/ledger"
	"github.com/diegoprojetos/funneledger/internal/logger"
	"github.com/diegoprojetos/funneledger/internal/session"
	"github.com/diegoprojetos/funneledger/internal/sink"
	"github.com/diegoprojetos/funneledger/internal/store"
	filestore "github.com/diegoprojetos/funneledger/internal/store/file"
	sqlitestore "github.com/diegoprojetos/funneledger/internal/store/sqlite"
)

var (
	verbose   bool
	sessionID string
	pageURL   string
	referrer  string
	dataPairs []string
	confirmed bool
)

var rootCmd = &cobra.Command{
	Use:   "funnelctl",
	Short: "Local funnel analytics ledger",
	Long: `funnelctl records marketing funnel interaction events into a local
analytics ledger and reports the derived funnel conversion statistics.
All data stays on this device; there is no server component.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&sessionID, "session", "", "reuse an existing session id (default: new session per invocation)")

	recordCmd.Flags().StringVar(&pageURL, "url", "", "page URL the event was observed on")
	recordCmd.Flags().StringVar(&referrer, "referrer", "", "referrer of the observed page")
	recordCmd.Flags().StringArrayVar(&dataPairs, "data", nil, "event payload entry as key=value (repeatable)")

	resetCmd.Flags().BoolVar(&confirmed, "yes", false, "confirm clearing all analytics data")

	rootCmd.AddCommand(recordCmd, snapshotCmd, ratesCmd, resetCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// open wires the ledger from configuration. The returned cleanup closes
// the store and flushes the logger.
func open(ctx context.Context) (*ledger.Ledger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.Environment, verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	var st store.LedgerStore
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		st, err = sqlitestore.Open(cfg.StorePath, log)
	default:
		st, err = filestore.New(cfg.StorePath, log)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	url := pageURL
	if url == "" {
		url = cfg.PageURL
	}
	ref := referrer
	if ref == "" {
		ref = cfg.Referrer
	}

	led := ledger.New(ctx, st,
		session.NewManagerWithID(sessionID),
		envinfo.Static{URL: url, Referrer: ref},
		log,
		ledger.WithSinks(sink.NewLogger(log)))

	cleanup := func() {
		if err := led.Close(); err != nil {
			log.Error("Failed to close store", zap.Error(err))
		}
		_ = log.Sync()
	}
	return led, cleanup, nil
}

var recordCmd = &cobra.Command{
	Use:   "record <event_name>",
	Short: "Record one interaction event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		led, cleanup, err := open(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		payload := map[string]any{}
		for _, pair := range dataPairs {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("invalid --data entry %q (expected key=value)", pair)
			}
			payload[key] = value
		}

		led.RecordEvent(ctx, args[0], payload)

		snap := led.Snapshot()
		fmt.Printf("recorded %s (session %s, %d events total)\n",
			args[0], snap.Events[len(snap.Events)-1].SessionID, len(snap.Events))
		return nil
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the full analytics document as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		led, cleanup, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		out, err := json.MarshalIndent(led.Snapshot(), "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Print funnel counters and conversion rates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		led, cleanup, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		snap := led.Snapshot()

		fmt.Println("funnel metrics:")
		for _, stage := range domain.FunnelStages {
			fmt.Printf("  %-22s %d\n", stage, snap.FunnelMetrics[stage])
		}

		if len(snap.ConversionRates) == 0 {
			fmt.Println("conversion rates: no data yet")
			return nil
		}

		names := make([]string, 0, len(snap.ConversionRates))
		for name := range snap.ConversionRates {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Println("conversion rates:")
		for _, name := range names {
			fmt.Printf("  %-22s %s%%\n", name, snap.ConversionRates[name])
		}
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear all analytics data",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		led, cleanup, err := open(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		if !led.Reset(cmd.Context(), confirmed) {
			fmt.Println("reset aborted: pass --yes to confirm")
			return nil
		}
		fmt.Println("analytics data cleared")
		return nil
	},
}
