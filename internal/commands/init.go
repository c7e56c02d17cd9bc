package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/taxtracker/taxtracker/internal/config"
	"github.com/taxtracker/taxtracker/internal/ledger"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default config and an empty transactions file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized taxtracker at %s\n", absDir)
			return nil
		},
	}

	return cmd
}

// runInit creates dir and writes any of taxtracker.yaml and transactions.txt
// that do not exist yet. Existing files are left untouched.
func runInit(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.DefaultPath)
	if !exists(cfgPath) {
		if err := config.Save(cfgPath, config.Default()); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}

	dataPath := filepath.Join(dir, ledger.DefaultFile)
	if !exists(dataPath) {
		if err := os.WriteFile(dataPath, []byte{}, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", ledger.DefaultFile, err)
		}
	}

	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
