package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/existflow/digicafe/internal/logger"
	"github.com/existflow/digicafe/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <topic>",
	Short: "Play an AI-brewed quiz in the terminal",
	Long: `Generate a multiple choice quiz about a topic and play it on the
command line. Answer each question with a, b, c or d.

Examples:
  digicafe quiz "the solar system"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuiz,
}

func runQuiz(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🔄 Brewing your quiz...")
	session, err := quiz.Brew(ctx, newGenerator(), strings.Join(args, " "))
	if err != nil {
		logger.Warn("Quiz brew failed", logger.F("error", err))
		return fmt.Errorf("%s", quiz.ErrorNotice)
	}

	return playQuiz(session, cmd.InOrStdin(), out)
}

// playQuiz runs session to completion reading answers from in
func playQuiz(session *quiz.Session, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)

	fmt.Fprintf(out, "\n📚 %s\n", session.Title())
	for !session.Finished() {
		q := session.Current()
		fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", session.Index()+1, session.Total(), q.Question)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %c) %s\n", 'a'+i, opt)
		}

		for !session.Answered() {
			fmt.Fprint(out, "Your answer: ")
			line, err := reader.ReadString('\n')
			choice := strings.ToLower(strings.TrimSpace(line))
			if len(choice) == 1 {
				if correct, ok := session.Answer(int(choice[0] - 'a')); ok {
					if correct {
						fmt.Fprintln(out, "✓ Correct!")
					} else {
						fmt.Fprintf(out, "✗ Not quite. The answer was %c) %s\n",
							'a'+q.CorrectAnswer, q.Options[q.CorrectAnswer])
					}
					break
				}
			}
			if err == io.EOF {
				return fmt.Errorf("quiz abandoned")
			}
			if err != nil {
				return fmt.Errorf("failed to read answer: %w", err)
			}
			fmt.Fprintln(out, "Please answer a, b, c or d.")
		}

		fmt.Fprintf(out, "Barista Note: %s\n", q.Explanation)
		session.Next()
	}

	fmt.Fprintf(out, "\n🏆 Score Card: %d / %d\n", session.Score(), session.Total())
	logger.Info("Quiz finished", logger.F("score", session.Score()), logger.F("total", session.Total()))
	return nil
}

