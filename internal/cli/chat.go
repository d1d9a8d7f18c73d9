package cli

import (
	"fmt"
	"strings"

	"consultcoach/internal/service"

	"github.com/spf13/cobra"
)

// ChatOutput is the structured result of 'coach chat'.
type ChatOutput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Model    string `json:"model"`
}

func newChatCommand(deps *Deps, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat <transcript> <question...>",
		Short: "Ask the coach a question about a transcript",
		Long: `Chat answers one question grounded in the transcript. Questions that
share no keywords with the transcript are refused without calling the model.

Examples:
  coach chat call.vtt "How did I handle the budget question?"
  coach chat call.txt what did they say about the trial`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args[1:], " "))
			if question == "" {
				return fmt.Errorf("question is required")
			}

			rt, err := opts.setup(deps)
			if err != nil {
				return err
			}

			transcript, err := opts.loadTranscript(deps, args[0])
			if err != nil {
				return err
			}

			chatSvc := service.NewChatService(rt.completer, nil, rt.cfg.AI.Persona, nil, rt.logger)
			answer, err := chatSvc.Answer(cmd.Context(), transcript.Raw, nil, question, rt.model)
			if err != nil {
				return err
			}

			if opts.output != OutputText {
				return writeOutput(cmd.OutOrStdout(), opts.output, ChatOutput{
					Question: question,
					Answer:   answer,
					Model:    rt.model,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
}
