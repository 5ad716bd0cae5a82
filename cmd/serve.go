package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hookewild/curator/internal/admin"
	"github.com/hookewild/curator/internal/bundle"
	"github.com/hookewild/curator/internal/catalog"
	"github.com/hookewild/curator/internal/config"
	"github.com/hookewild/curator/internal/db"
	"github.com/hookewild/curator/internal/events"
	"github.com/hookewild/curator/internal/gallery"
	"github.com/hookewild/curator/internal/guide"
	"github.com/hookewild/curator/internal/mapview"
	"github.com/hookewild/curator/internal/media"
	"github.com/hookewild/curator/internal/server"
	"github.com/hookewild/curator/internal/tour"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the curator server",
	Long:  `Starts the HTTP server that backs the site: catalog, map, tour, media library, field guide, gallery, and the admin API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		database, err := db.Open(filepath.Join(cfg.DataDir, "curator.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		b, err := bundle.Load(cfg.Bundle)
		if err != nil {
			return fmt.Errorf("loading bundle: %w", err)
		}

		cat, err := catalog.New(catalog.NewStore(database), b.Features)
		if err != nil {
			return fmt.Errorf("building catalog: %w", err)
		}

		sessions, err := admin.NewSessions(database, cfg.AdminPassword)
		if err != nil {
			return fmt.Errorf("preparing sessions: %w", err)
		}

		hub := events.NewHub()
		siteMap := mapview.New(cat)

		siteTour := tour.New(
			func() ([]tour.Stop, error) {
				list, err := siteMap.TourStops()
				if err != nil {
					return nil, err
				}
				stops := make([]tour.Stop, len(list))
				for i, s := range list {
					stops[i] = tour.Stop{ID: s.ID, Title: s.Title}
				}
				return stops, nil
			},
			func(id string) error {
				_, err := siteMap.MarkVisited(id)
				return err
			},
		)

		mediaStore := media.NewStore(database)
		library := media.NewLibrary(mediaStore, b.Media)
		enricher := media.NewEnricher(mediaStore)
		fieldGuide := guide.New(b.Guide)
		photos := gallery.New(b.Gallery)

		srv := server.New(server.Config{Port: cfg.Port, AllowAll: cfg.AllowAllOrigins}, database)
		r := srv.Router()

		// Opening a detail view marks the entry visited, keeps the tour in
		// step, and tells connected clients.
		onOpen := func(id string) {
			if _, err := siteMap.MarkVisited(id); err != nil {
				log.Printf("marking %s visited: %v", id, err)
			}
			siteTour.SyncOpened(id)
			hub.Broadcast("visited", id)
		}

		catalog.RegisterRoutes(r, cat, onOpen)
		mapview.RegisterRoutes(r, siteMap, sessions.Middleware)
		tour.RegisterRoutes(r, siteTour)
		admin.RegisterRoutes(r, admin.NewService(cat), sessions, cat, hub.Broadcast)
		media.RegisterRoutes(r, library, enricher, sessions.Middleware)
		guide.RegisterRoutes(r, fieldGuide)
		gallery.RegisterRoutes(r, photos)
		r.Get("/api/events", hub.Handle)

		// Run until interrupted, then drain in-flight requests.
		errCh := make(chan error, 1)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-sigCh:
			log.Printf("received %s, shutting down", sig)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
