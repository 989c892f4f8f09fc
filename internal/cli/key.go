package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/existflow/digicafe/internal/config"
	"github.com/existflow/digicafe/internal/logger"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Save the generation API key",
	Long: `Prompt for the Gemini API key without echoing it and store it in
~/.digicafe/config.yaml. The GEMINI_API_KEY environment variable, when set,
takes precedence over the stored key.`,
	RunE: runKey,
}

var keyClear bool

func init() {
	keyCmd.Flags().BoolVar(&keyClear, "clear", false, "Remove the stored key")
}

func runKey(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	if keyClear {
		if err := storeKey(path, ""); err != nil {
			return err
		}
		fmt.Println("✓ API key removed")
		return nil
	}

	fmt.Print("API key: ")
	keyBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read key: %w", err)
	}

	key := strings.TrimSpace(string(keyBytes))
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if err := storeKey(path, key); err != nil {
		return err
	}

	logger.Info("API key saved")
	fmt.Println("✓ API key saved")
	return nil
}

// storeKey rewrites only the api_key of the file at path. Environment and
// flag overrides are not persisted, and an unreadable file is left alone.
func storeKey(path, key string) error {
	stored, err := config.ReadFile(path)
	if err != nil {
		return fmt.Errorf("not saving key, fix %s first: %w", path, err)
	}
	stored.APIKey = key
	return stored.SaveFile(path)
}
