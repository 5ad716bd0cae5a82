package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to curator.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to curator! Let's set up your site.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Content bundle location.
	bundlePrompt := promptui.Prompt{
		Label:   "Path to the content bundle JSON",
		Default: defaults.Bundle,
	}
	bundle, err := bundlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("bundle path: %w", err)
	}

	// 2. Data directory.
	dataPrompt := promptui.Prompt{
		Label:   "Data directory for the curator database",
		Default: defaults.DataDir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 3. Listen port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(defaults.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 4. Admin password.
	passwordPrompt := promptui.Prompt{
		Label: "Admin password",
		Mask:  '*',
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("password cannot be empty")
			}
			return nil
		},
	}
	password, err := passwordPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("admin password: %w", err)
	}

	// 5. Optional photo directory.
	galleryPrompt := promptui.Prompt{
		Label:   "Photo directory to scan for the gallery (blank to skip)",
		Default: "",
	}
	galleryDir, err := galleryPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("gallery dir: %w", err)
	}

	cfg := &Config{
		DataDir:         dataDir,
		Bundle:          bundle,
		Port:            port,
		AdminPassword:   password,
		GalleryDir:      galleryDir,
		GalleryPatterns: defaults.GalleryPatterns,
	}

	if err := cfg.Save("curator.yml"); err != nil {
		return nil, err
	}
	fmt.Println("\nSaved configuration to curator.yml")
	return cfg, nil
}
