package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/digicafe/internal/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat <message>",
	Short: "Ask the barista a single question",
	Long: `Send one message to the AI barista and print the reply.

Examples:
  digicafe chat "How do I stay focused after lunch?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	conv := chat.New()
	reply, ok := conv.Send(ctx, newGenerator(), strings.Join(args, " "))
	if !ok {
		return fmt.Errorf("message is empty")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "☕ %s\n", reply.Text)
	return nil
}
