package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"careerarchitect/internal/ats"
	"careerarchitect/internal/extract"
	"careerarchitect/internal/render"
	"careerarchitect/internal/resumes"
	"careerarchitect/internal/sections"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Offline resume tools",
		Long:          "resumectl extracts, sections, scores and renders PDF and DOCX resumes from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSectionsCmd(), newScoreCmd(), newRenderCmd(), newBuildCmd())
	return root
}

func newSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections <file>",
		Short: "Print the detected sections of a PDF or DOCX resume as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), sections.Parse(text))
		},
	}
}

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score <file>",
		Short: "Print the ATS score of a PDF or DOCX resume as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), ats.Score(text, sections.Parse(text)))
		},
	}
}

type renderOptions struct {
	format string
	name   string
	email  string
	phone  string
	out    string
}

func newRenderCmd() *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Re-render a PDF or DOCX resume from its detected sections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := render.ParseFormat(opts.format)
			if err != nil {
				return err
			}
			text, err := readText(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := render.Render(render.Record{
				FullName: opts.name,
				Email:    opts.email,
				Phone:    opts.phone,
				Sections: sections.Parse(text),
			}, format)
			if err != nil {
				return err
			}

			return writeOutput(cmd.OutOrStdout(), opts.out, data)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "pdf", "Output format: pdf or docx")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "Full name for the title line")
	cmd.Flags().StringVarP(&opts.email, "email", "e", "", "Email for the contact line")
	cmd.Flags().StringVar(&opts.phone, "phone", "", "Phone for the contact line")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Path to the output file (required)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// manualFile is the YAML layout of a hand-entered resume.
type manualFile struct {
	FullName   string `yaml:"full_name"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"phone"`
	Summary    string `yaml:"summary"`
	Experience string `yaml:"experience"`
	Education  string `yaml:"education"`
	Skills     string `yaml:"skills"`
}

func (m manualFile) input() resumes.ManualInput {
	return resumes.ManualInput{
		FullName:   m.FullName,
		Email:      m.Email,
		Phone:      m.Phone,
		Summary:    m.Summary,
		Experience: m.Experience,
		Education:  m.Education,
		Skills:     m.Skills,
	}
}

func newBuildCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "build <manual.yaml>",
		Short: "Render a resume from a YAML file of manual fields and print its ATS score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			docFormat, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			var manual manualFile
			if err := yaml.Unmarshal(raw, &manual); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			if manual.FullName == "" {
				return fmt.Errorf("%s: full_name is required", args[0])
			}

			in := manual.input()
			data, err := render.Render(render.Record{
				FullName: in.FullName,
				Email:    in.Email,
				Phone:    in.Phone,
				Sections: in.Sections(),
			}, docFormat)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), out, data); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), ats.Score(in.Text(), in.Sections()))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "pdf", "Output format: pdf or docx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Path to the output file (required)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func writeOutput(w io.Writer, path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(w, "OK: wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func readText(ctx context.Context, path string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return extract.Text(ctx, data, path)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
