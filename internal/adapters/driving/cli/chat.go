package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/core/render"
)

var chatDocument string

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Ask the assistant about processed documents",
	Long: `Asks the assistant a question. With a message argument a single answer
is printed; without one an interactive session starts. Type /exit to leave.

Use --document to scope the conversation to a single document.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatDocument, "document", "d", "", "scope the conversation to a document ID")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if newChat == nil {
		return errors.New("chat service not configured")
	}

	scope := domain.GlobalScope()
	if id := strings.TrimSpace(chatDocument); id != "" {
		scope = domain.DocumentScope(id)
	}
	chat := newChat(scope)

	if len(args) == 1 {
		return chatTurn(cmd, chat, args[0])
	}
	return chatLoop(cmd, chat, cmd.InOrStdin())
}

// chatTurn sends one message and prints the reply or the apology.
func chatTurn(cmd *cobra.Command, chat driving.ChatService, text string) error {
	reply, err := chat.Send(cmd.Context(), text)
	switch {
	case errors.Is(err, domain.ErrEmptyInput):
		return nil
	case err != nil:
		cmd.Println(alertStyle.Render(domain.ChatApology))
		return fmt.Errorf("chat failed: %w", err)
	}
	cmd.Println(styleSpans(render.Assistant(reply)))
	return nil
}

func chatLoop(cmd *cobra.Command, chat driving.ChatService, in io.Reader) error {
	interactive := isTerminal(in)
	if interactive {
		if scope := chat.Scope(); scope.IsGlobal() {
			cmd.Println(headingStyle.Render("Assistant") + labelStyle.Render("  (/exit to quit)"))
		} else {
			cmd.Println(headingStyle.Render("Assistant for "+scope.DocumentID) + labelStyle.Render("  (/exit to quit)"))
		}
	}

	scanner := bufio.NewScanner(in)
	for {
		if interactive {
			cmd.Print(labelStyle.Render("you> "))
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "/exit" || line == "/quit" {
			return nil
		}
		if line == "" {
			continue
		}
		// A failed turn is shown and the session goes on.
		_ = chatTurn(cmd, chat, line)
		if interactive {
			cmd.Println()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
