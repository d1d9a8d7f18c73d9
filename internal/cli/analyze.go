package cli

import (
	"errors"
	"fmt"

	"consultcoach/internal/model"
	"consultcoach/internal/render"
	"consultcoach/internal/service"

	"github.com/spf13/cobra"
)

// AnalyzeOutput is the structured result of 'coach analyze'.
type AnalyzeOutput struct {
	File     string               `json:"file"`
	Format   string               `json:"format"`
	Model    string               `json:"model"`
	Metrics  model.Metrics        `json:"metrics"`
	Analysis model.AnalysisResult `json:"analysis"`
	Report   model.Report         `json:"report"`
}

func newAnalyzeCommand(deps *Deps, opts *rootOptions) *cobra.Command {
	var pdfPath string

	cmd := &cobra.Command{
		Use:   "analyze <transcript>",
		Short: "Analyze a transcript and print the coaching report",
		Long: `Analyze normalizes the transcript, computes its metrics, requests a
structured analysis and prints the five-section coaching report.

Examples:
  coach analyze call.vtt
  coach analyze call.txt --output json
  coach analyze call.srt --pdf coaching_report.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.setup(deps)
			if err != nil {
				return err
			}

			transcript, err := opts.loadTranscript(deps, args[0])
			if err != nil {
				return err
			}
			stats := service.ComputeMetrics(transcript.Clean)

			analysisSvc := service.NewAnalysisService(rt.completer, rt.cfg.AI.Persona, nil, rt.logger)
			analysis, err := analysisSvc.Analyze(cmd.Context(), transcript.Raw, rt.model)
			if err != nil {
				var ae *service.AnalysisError
				if errors.As(err, &ae) && ae.RawResponse != "" {
					rt.logger.Debug().Str("raw_response", ae.RawResponse).Msg("unparseable analysis response")
				}
				return err
			}

			report := service.AssembleReport(*analysis, stats)

			if pdfPath != "" {
				pdf, err := render.NewPDFRenderer().Render(report)
				if err != nil {
					return fmt.Errorf("rendering PDF: %w", err)
				}
				if err := deps.WriteFile(pdfPath, pdf); err != nil {
					return fmt.Errorf("writing PDF: %w", err)
				}
				rt.logger.Info().Str("path", pdfPath).Int("bytes", len(pdf)).Msg("report written")
			}

			if opts.output != OutputText {
				return writeOutput(cmd.OutOrStdout(), opts.output, AnalyzeOutput{
					File:     transcript.Filename,
					Format:   string(transcript.Format),
					Model:    rt.model,
					Metrics:  stats,
					Analysis: *analysis,
					Report:   report,
				})
			}
			writeReportText(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write the report as a PDF to this path")

	return cmd
}
