package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/hookewild/curator/internal/admin"
	"github.com/hookewild/curator/internal/bundle"
	"github.com/hookewild/curator/internal/catalog"
	"github.com/hookewild/curator/internal/config"
	"github.com/hookewild/curator/internal/db"
)

var purgeCmd = &cobra.Command{
	Use:   "purge <entry-id>",
	Short: "Delete an entry from the command line",
	Long:  `Deletes an entry with the same confirmations the admin UI requires: a yes/no prompt plus typing DELETE. Shipped entries are soft-deleted; custom entries are removed for good.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		b, err := bundle.Load(cfg.Bundle)
		if err != nil {
			return fmt.Errorf("loading bundle: %w", err)
		}

		database, err := db.Open(filepath.Join(cfg.DataDir, "curator.db"))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		cat, err := catalog.New(catalog.NewStore(database), b.Features)
		if err != nil {
			return fmt.Errorf("building catalog: %w", err)
		}

		resolved, ok, err := cat.ResolveID(id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no entry with id %q", id)
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete %q", resolved.Title),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Aborted.")
			return nil
		}

		phrasePrompt := promptui.Prompt{
			Label: fmt.Sprintf("Type %s to confirm", admin.DeletePhrase),
		}
		phrase, err := phrasePrompt.Run()
		if err != nil {
			fmt.Println("Aborted.")
			return nil
		}

		if err := admin.NewService(cat).Delete(id, true, phrase); err != nil {
			return err
		}
		fmt.Printf("Deleted %q.\n", resolved.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
