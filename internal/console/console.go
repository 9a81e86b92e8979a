// Package console is the interactive terminal front-end. It owns no workflow
// logic: key presses become state-machine transitions, transitions trigger
// workflows, and the console renders whatever the sinks hand it. It is one
// replaceable consumer of the workflow/view interfaces.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
	"github.com/mnmartinezb-cell/oncoatlas/internal/session"
	"github.com/mnmartinezb-cell/oncoatlas/internal/view"
	"github.com/mnmartinezb-cell/oncoatlas/internal/workflow"
)

// Console runs the interactive session loop.
type Console struct {
	sess     *session.Session
	registry *view.Registry
	doctors  *workflow.DoctorDirectory
	patients *workflow.PatientDirectory
	analyses *workflow.AnalysisSubmission
	in       *bufio.Scanner
	out      io.Writer
	logger   zerolog.Logger

	visible      map[view.Panel]bool
	lastDoctors  []api.Doctor
	lastPatients []api.Patient
	lastAnalyses []api.Analysis
}

// New builds a console over the given backend and I/O streams.
func New(backend workflow.Backend, in io.Reader, out io.Writer, logger zerolog.Logger) *Console {
	c := &Console{
		sess:    session.New(),
		in:      bufio.NewScanner(in),
		out:     out,
		logger:  logger,
		visible: make(map[view.Panel]bool),
	}
	c.registry = view.NewRegistry(c)
	c.doctors = workflow.NewDoctorDirectory(backend, c, logger)
	c.patients = workflow.NewPatientDirectory(backend, c, logger)
	c.analyses = workflow.NewAnalysisSubmission(backend, c, logger)
	return c
}

// -- view.Surface --

// SetVisible tracks panel visibility. List renders into a hidden panel are
// dropped; there is no cancellation of in-flight fetches, so a completion
// may arrive after its panel went away.
func (c *Console) SetVisible(p view.Panel, visible bool) {
	c.visible[p] = visible
}

// -- render sinks --

func (c *Console) RenderDoctors(doctors []api.Doctor) {
	c.lastDoctors = doctors
	if !c.visible[view.PanelAdmin] && !c.visible[view.PanelDoctorRoleEntry] {
		return
	}
	fmt.Fprintln(c.out, "\nDoctors:")
	if len(doctors) == 0 {
		fmt.Fprintln(c.out, "  (none registered)")
		return
	}
	for i, d := range doctors {
		line := fmt.Sprintf("  [%d] %s", i+1, d.Name)
		if d.Specialty != "" {
			line += " - " + d.Specialty
		}
		fmt.Fprintln(c.out, line)
	}
}

func (c *Console) RenderPatients(patients []api.Patient) {
	c.lastPatients = patients
	if !c.visible[view.PanelDoctorDashboard] {
		return
	}
	fmt.Fprintln(c.out, "\nPatients:")
	if len(patients) == 0 {
		fmt.Fprintln(c.out, "  (none registered)")
		return
	}
	for i, p := range patients {
		fmt.Fprintf(c.out, "  [%d] %s (document %s)\n", i+1, p.FullName, p.DocumentID)
	}
}

func (c *Console) RenderAnalyses(analyses []api.Analysis) {
	c.lastAnalyses = analyses
	if !c.visible[view.PanelPatientDetail] {
		return
	}
	fmt.Fprintln(c.out, "\nAnalysis history:")
	if len(analyses) == 0 {
		fmt.Fprintln(c.out, "  (no analyses yet)")
		return
	}
	for i, a := range analyses {
		fmt.Fprintf(c.out, "  [%d] %s  risk=%s  %s\n",
			i+1, a.CreatedAt.Format("2006-01-02 15:04"), a.OverallRisk, a.Summary)
	}
}

func (c *Console) RenderError(msg string) {
	fmt.Fprintf(c.out, "! %s\n", msg)
}

// -- loop --

// Run drives the session until the user quits or input ends. Every iteration
// re-applies the panel set for the current state, so no gesture can leave a
// stale overlay behind.
func (c *Console) Run(ctx context.Context) error {
	for {
		c.registry.Show(c.sess.State(), c.sess.PatientDetailOpen())
		c.logger.Debug().
			Stringer("state", c.sess.State()).
			Bool("patient_open", c.sess.PatientDetailOpen()).
			Msg("navigation state")
		var done bool
		if c.sess.PatientDetailOpen() {
			done = c.patientMenu(ctx)
		} else {
			switch c.sess.State() {
			case session.RoleSelection:
				done = c.roleMenu(ctx)
			case session.AdminActive:
				done = c.adminMenu(ctx)
			case session.DoctorRoleEntry:
				done = c.doctorEntryMenu(ctx)
			case session.DoctorDashboard:
				done = c.dashboardMenu(ctx)
			}
		}
		if done {
			return nil
		}
	}
}

func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

func (c *Console) roleMenu(ctx context.Context) bool {
	in, ok := c.prompt("\n[1] admin  [2] doctor  [q] quit > ")
	if !ok {
		return true
	}
	switch in {
	case "1":
		if err := c.sess.ChooseAdmin(); err != nil {
			c.RenderError(err.Error())
			return false
		}
		c.registry.Show(c.sess.State(), false)
		c.doctors.Load(ctx)
	case "2":
		if err := c.sess.ChooseDoctor(); err != nil {
			c.RenderError(err.Error())
			return false
		}
		c.registry.Show(c.sess.State(), false)
		c.doctors.Load(ctx)
	case "q":
		return true
	}
	return false
}

func (c *Console) adminMenu(ctx context.Context) bool {
	in, ok := c.prompt("\n[a] add doctor  [r] refresh  [b] back > ")
	if !ok {
		return true
	}
	switch in {
	case "a":
		name, _ := c.prompt("name: ")
		email, _ := c.prompt("email: ")
		specialty, _ := c.prompt("specialty: ")
		c.doctors.Create(ctx, name, email, specialty)
	case "r":
		c.doctors.Load(ctx)
	case "b":
		if err := c.sess.GoBack(); err != nil {
			c.RenderError(err.Error())
		}
	}
	return false
}

func (c *Console) doctorEntryMenu(ctx context.Context) bool {
	in, ok := c.prompt("\nselect doctor number, or [b] back > ")
	if !ok {
		return true
	}
	if in == "b" {
		if err := c.sess.GoBack(); err != nil {
			c.RenderError(err.Error())
		}
		return false
	}

	var selected *api.Doctor
	if n, err := strconv.Atoi(in); err == nil && n >= 1 && n <= len(c.lastDoctors) {
		selected = &c.lastDoctors[n-1]
	}
	if err := c.sess.ConfirmDoctor(selected); err != nil {
		c.RenderError(err.Error())
		return false
	}
	c.registry.Show(c.sess.State(), false)
	c.loadRoster(ctx)
	return false
}

func (c *Console) dashboardMenu(ctx context.Context) bool {
	fmt.Fprintf(c.out, "\nDoctor: %s\n", c.sess.ActiveDoctor().Name)
	in, ok := c.prompt("[a] add patient  [r] refresh  patient number to open  [q] quit > ")
	if !ok {
		return true
	}
	switch in {
	case "a":
		c.addPatient(ctx)
	case "r":
		c.loadRoster(ctx)
	case "q":
		return true
	default:
		n, err := strconv.Atoi(in)
		if err != nil || n < 1 || n > len(c.lastPatients) {
			c.RenderError("no such patient in the list")
			return false
		}
		c.openPatient(ctx, c.lastPatients[n-1].ID)
	}
	return false
}

func (c *Console) addPatient(ctx context.Context) {
	fullName, _ := c.prompt("full name: ")
	documentID, _ := c.prompt("document id: ")
	dob, _ := c.prompt("date of birth (YYYY-MM-DD, optional): ")
	sex, _ := c.prompt("sex (optional): ")
	doctor := c.sess.ActiveDoctor()
	if doctor == nil {
		c.RenderError("no doctor is active")
		return
	}
	if _, err := c.patients.Create(ctx, doctor.ID, api.NewPatient{
		FullName:    fullName,
		DocumentID:  documentID,
		DateOfBirth: dob,
		Sex:         sex,
	}); err == nil {
		c.rosterFromLast()
	}
}

func (c *Console) loadRoster(ctx context.Context) {
	doctor := c.sess.ActiveDoctor()
	if doctor == nil {
		return
	}
	if _, err := c.patients.Load(ctx, doctor.ID); err == nil {
		c.rosterFromLast()
	}
}

func (c *Console) rosterFromLast() {
	ids := make([]int, 0, len(c.lastPatients))
	for _, p := range c.lastPatients {
		ids = append(ids, p.ID)
	}
	c.sess.SetPatientRoster(ids)
}

func (c *Console) openPatient(ctx context.Context, patientID int) {
	if err := c.sess.OpenPatient(patientID); err != nil {
		c.RenderError(err.Error())
		return
	}
	c.registry.Show(c.sess.State(), true)
	patient, err := c.patients.Open(ctx, patientID)
	if err != nil {
		c.sess.ClosePatient()
		c.registry.Show(c.sess.State(), false)
		return
	}
	if err := c.sess.SetActivePatient(patient); err != nil {
		c.RenderError(err.Error())
		return
	}
	fmt.Fprintf(c.out, "\nPatient: %s (document %s)\n", patient.FullName, patient.DocumentID)
	c.analyses.History(ctx, patient.ID)
}

func (c *Console) patientMenu(ctx context.Context) bool {
	in, ok := c.prompt("\n[s] submit analysis  [d N] detail  [p N] report  [c] close > ")
	if !ok {
		return true
	}
	switch {
	case in == "s":
		c.submitAnalysis(ctx)
	case in == "c":
		c.sess.ClosePatient()
	case strings.HasPrefix(in, "d "):
		c.showDetail(ctx, strings.TrimSpace(in[2:]))
	case strings.HasPrefix(in, "p "):
		c.saveReport(ctx, strings.TrimSpace(in[2:]))
	}
	return false
}

func (c *Console) submitAnalysis(ctx context.Context) {
	patient := c.sess.ActivePatient()
	if patient == nil {
		c.RenderError("no patient is open")
		return
	}
	brca1Path, _ := c.prompt("BRCA1 FASTA path: ")
	brca2Path, _ := c.prompt("BRCA2 FASTA path: ")
	c.analyses.Submit(ctx, patient.ID, readFASTA(brca1Path), readFASTA(brca2Path))
}

func (c *Console) analysisByIndex(raw string) (*api.Analysis, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > len(c.lastAnalyses) {
		c.RenderError("no such analysis in the history")
		return nil, false
	}
	return &c.lastAnalyses[n-1], true
}

func (c *Console) showDetail(ctx context.Context, raw string) {
	patient := c.sess.ActivePatient()
	analysis, ok := c.analysisByIndex(raw)
	if patient == nil || !ok {
		return
	}
	d, err := c.analyses.Detail(ctx, patient.ID, analysis.ID)
	if err != nil {
		return
	}
	fmt.Fprintf(c.out, "\nAnalysis #%d  risk=%s\n%s\n", d.ID, d.OverallRisk, d.Summary)
	for _, m := range d.Mutations {
		fmt.Fprintf(c.out, "  %s %s - %s (%s)\n", m.Gene, m.HGVSC, m.Significance, m.Source)
	}
}

func (c *Console) saveReport(ctx context.Context, raw string) {
	patient := c.sess.ActivePatient()
	analysis, ok := c.analysisByIndex(raw)
	if patient == nil || !ok {
		return
	}
	name := fmt.Sprintf("analysis_%d_report.pdf", analysis.ID)
	f, err := os.Create(name)
	if err != nil {
		c.RenderError(err.Error())
		return
	}
	defer f.Close()
	if err := c.analyses.SaveReport(ctx, patient.ID, analysis.ID, f); err != nil {
		return
	}
	fmt.Fprintf(c.out, "report saved to %s\n", name)
}

// readFASTA loads a sequence file; a missing or unreadable path comes back
// empty so the submission precondition check reports it.
func readFASTA(path string) api.FASTAFile {
	if path == "" {
		return api.FASTAFile{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return api.FASTAFile{Name: filepath.Base(path)}
	}
	return api.FASTAFile{Name: filepath.Base(path), Data: data}
}
