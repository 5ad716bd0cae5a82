package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hookewild/curator/internal/config"
	"github.com/hookewild/curator/internal/gallery"
)

var scanOut string

var scanGalleryCmd = &cobra.Command{
	Use:   "scan-gallery",
	Short: "Scan a photo directory into a gallery manifest",
	Long:  `Walks the configured photo directory, matching files against the gallery glob patterns, and writes a JSON manifest ready to paste into the bundle's gallery section. The first directory segment becomes each photo's category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.GalleryDir == "" {
			return fmt.Errorf("gallery_dir is not configured")
		}

		images, err := gallery.Scan(cfg.GalleryDir, cfg.GalleryPatterns)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", cfg.GalleryDir, err)
		}

		data, err := json.MarshalIndent(images, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding manifest: %w", err)
		}
		data = append(data, '\n')

		if scanOut == "-" {
			os.Stdout.Write(data)
		} else {
			if err := os.WriteFile(scanOut, data, 0644); err != nil {
				return fmt.Errorf("writing manifest: %w", err)
			}
			fmt.Printf("Wrote %d photos to %s\n", len(images), scanOut)
		}
		return nil
	},
}

func init() {
	scanGalleryCmd.Flags().StringVarP(&scanOut, "out", "o", "gallery.json", "output manifest path (- for stdout)")
	rootCmd.AddCommand(scanGalleryCmd)
}
