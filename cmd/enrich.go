package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hookewild/curator/internal/bundle"
	"github.com/hookewild/curator/internal/config"
	"github.com/hookewild/curator/internal/db"
	"github.com/hookewild/curator/internal/media"
	"github.com/hookewild/curator/internal/progress"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fetch oEmbed metadata for the media library",
	Long:  `Walks every media item in the bundle and fetches missing titles, authors, and thumbnails from the YouTube and WordPress oEmbed endpoints. Results are cached, so reruns only fetch what is new.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		b, err := bundle.Load(cfg.Bundle)
		if err != nil {
			return fmt.Errorf("loading bundle: %w", err)
		}
		if b.Media == nil || len(b.Media.Items) == 0 {
			fmt.Println("No media items in the bundle, nothing to enrich.")
			return nil
		}

		database, err := db.Open(filepath.Join(cfg.DataDir, "curator.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		store := media.NewStore(database)
		library := media.NewLibrary(store, b.Media)
		enricher := media.NewEnricher(store)

		reporter := progress.NewReporter("Enriching media")
		var started bool
		fetched, err := enricher.EnrichAll(library, func(done, total int) {
			if !started {
				reporter.Start(total)
				started = true
			}
			reporter.Update(done, "")
		})
		reporter.Finish()
		if err != nil {
			return fmt.Errorf("enriching media: %w", err)
		}

		fmt.Printf("Fetched metadata for %d items.\n", fetched)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}
