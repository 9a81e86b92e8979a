package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
	"github.com/mnmartinezb-cell/oncoatlas/internal/config"
	"github.com/mnmartinezb-cell/oncoatlas/internal/console"
	"github.com/mnmartinezb-cell/oncoatlas/internal/sandbox"
	"github.com/mnmartinezb-cell/oncoatlas/internal/workflow"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "oncoatlas",
		Short: "Client for the oncoatlas germline analysis backend",
	}

	rootCmd.AddCommand(consoleCmd())
	rootCmd.AddCommand(sandboxCmd())
	rootCmd.AddCommand(doctorsCmd())
	rootCmd.AddCommand(patientsCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newEnv loads config and builds the logger and API client every command
// shares.
func newEnv() (*config.Config, zerolog.Logger, *api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return cfg, logger, api.NewClient(cfg.BaseURL, logger), nil
}

func consoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Start the interactive client session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, client, err := newEnv()
			if err != nil {
				return err
			}
			return console.New(client, os.Stdin, os.Stdout, logger).Run(context.Background())
		},
	}
}

func sandboxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sandbox",
		Short: "Run the in-memory sandbox backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, _, err := newEnv()
			if err != nil {
				return err
			}
			return sandbox.New(logger).Start(":" + cfg.SandboxPort)
		},
	}
}

// cliSink renders workflow output for the one-shot scripting commands.
type cliSink struct{}

func (cliSink) RenderDoctors(doctors []api.Doctor) {
	for _, d := range doctors {
		fmt.Printf("%d\t%s\t%s\t%s\n", d.ID, d.Name, d.Email, d.Specialty)
	}
}

func (cliSink) RenderPatients(patients []api.Patient) {
	for _, p := range patients {
		fmt.Printf("%d\t%s\t%s\t%s\t%s\n", p.ID, p.FullName, p.DocumentID, p.DateOfBirth, p.Sex)
	}
}

func (cliSink) RenderAnalyses(analyses []api.Analysis) {
	for _, a := range analyses {
		fmt.Printf("%d\t%s\t%s\t%s\n", a.ID, a.CreatedAt.Format("2006-01-02 15:04"), a.OverallRisk, a.Summary)
	}
}

func (cliSink) RenderError(msg string) {
	fmt.Fprintln(os.Stderr, msg)
}

func doctorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Doctor directory operations",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all registered doctors",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, client, err := newEnv()
			if err != nil {
				return err
			}
			dir := workflow.NewDoctorDirectory(client, cliSink{}, logger)
			_, err = dir.Load(cmd.Context())
			return err
		},
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, client, err := newEnv()
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			specialty, _ := cmd.Flags().GetString("specialty")
			dir := workflow.NewDoctorDirectory(client, cliSink{}, logger)
			_, err = dir.Create(cmd.Context(), name, email, specialty)
			return err
		},
	}
	createCmd.Flags().String("name", "", "doctor display name")
	createCmd.Flags().String("email", "", "doctor email")
	createCmd.Flags().String("specialty", "", "doctor specialty")

	cmd.AddCommand(listCmd)
	cmd.AddCommand(createCmd)
	return cmd
}

func patientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Patient directory operations for one doctor",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the patients of a doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, client, err := newEnv()
			if err != nil {
				return err
			}
			doctorID, _ := cmd.Flags().GetInt("doctor")
			dir := workflow.NewPatientDirectory(client, cliSink{}, logger)
			_, err = dir.Load(cmd.Context(), doctorID)
			return err
		},
	}
	listCmd.Flags().Int("doctor", 0, "owning doctor id")

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register a patient under a doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, client, err := newEnv()
			if err != nil {
				return err
			}
			doctorID, _ := cmd.Flags().GetInt("doctor")
			fullName, _ := cmd.Flags().GetString("full-name")
			documentID, _ := cmd.Flags().GetString("document-id")
			dob, _ := cmd.Flags().GetString("date-of-birth")
			sex, _ := cmd.Flags().GetString("sex")
			dir := workflow.NewPatientDirectory(client, cliSink{}, logger)
			_, err = dir.Create(cmd.Context(), doctorID, api.NewPatient{
				FullName:    fullName,
				DocumentID:  documentID,
				DateOfBirth: dob,
				Sex:         sex,
			})
			return err
		},
	}
	createCmd.Flags().Int("doctor", 0, "owning doctor id")
	createCmd.Flags().String("full-name", "", "patient full name")
	createCmd.Flags().String("document-id", "", "patient document id")
	createCmd.Flags().String("date-of-birth", "", "date of birth (YYYY-MM-DD)")
	createCmd.Flags().String("sex", "", "patient sex")

	cmd.AddCommand(listCmd)
	cmd.AddCommand(createCmd)
	return cmd
}

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <brca1.fasta> <brca2.fasta>",
		Short: "Submit two FASTA files for a patient and print the refreshed history",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, client, err := newEnv()
			if err != nil {
				return err
			}
			patientID, _ := cmd.Flags().GetInt("patient")
			wf := workflow.NewAnalysisSubmission(client, cliSink{}, logger)
			_, err = wf.Submit(cmd.Context(), patientID, readFile(args[0]), readFile(args[1]))
			return err
		},
	}
	cmd.Flags().Int("patient", 0, "patient id")
	return cmd
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Download the report artifact for an analysis",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, client, err := newEnv()
			if err != nil {
				return err
			}
			patientID, _ := cmd.Flags().GetInt("patient")
			analysisID, _ := cmd.Flags().GetInt("analysis")
			out, _ := cmd.Flags().GetString("out")

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			wf := workflow.NewAnalysisSubmission(client, cliSink{}, logger)
			return wf.SaveReport(cmd.Context(), patientID, analysisID, f)
		},
	}
	cmd.Flags().Int("patient", 0, "patient id")
	cmd.Flags().Int("analysis", 0, "analysis id")
	cmd.Flags().String("out", "report.pdf", "output file")
	return cmd
}

func readFile(path string) api.FASTAFile {
	data, err := os.ReadFile(path)
	if err != nil {
		return api.FASTAFile{Name: path}
	}
	return api.FASTAFile{Name: path, Data: data}
}
