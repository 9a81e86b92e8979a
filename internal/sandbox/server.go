// Package sandbox is an in-memory oncoatlas backend speaking the same wire
// contract as the real server: doctors, patients, multipart FASTA intake,
// and generated report artifacts. It exists so the client can be exercised
// end to end (demos, integration tests) without the production backend.
package sandbox

import (
	"io"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mnmartinezb-cell/oncoatlas/internal/api"
)

type patientRecord struct {
	api.Patient
	DoctorID int
}

type analysisRecord struct {
	api.Analysis
	PatientID  int
	Mutations  []api.Mutation
	ArtifactID string
}

// Server holds the in-memory state and the echo instance serving it.
type Server struct {
	logger zerolog.Logger
	echo   *echo.Echo

	mu           sync.Mutex
	doctors      []api.Doctor
	patients     map[int]*patientRecord
	analyses     map[int]*analysisRecord
	reports      map[string][]byte
	nextDoctor   int
	nextPatient  int
	nextAnalysis int
	nextMutation int
}

// New creates a sandbox server with empty state.
func New(logger zerolog.Logger) *Server {
	s := &Server{
		logger:   logger,
		patients: make(map[int]*patientRecord),
		analyses: make(map[int]*analysisRecord),
		reports:  make(map[string][]byte),
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	s.registerRoutes(e)
	s.echo = e
	return s
}

func (s *Server) registerRoutes(e *echo.Echo) {
	e.GET("/admin/doctors", s.listDoctors)
	e.POST("/admin/doctors", s.createDoctor)
	e.GET("/doctors/:doctorID/patients", s.listPatients)
	e.POST("/doctors/:doctorID/patients", s.createPatient)
	e.GET("/patients/:patientID", s.getPatient)
	e.GET("/patients/:patientID/analyses", s.listAnalyses)
	e.POST("/patients/:patientID/analyses", s.createAnalysis)
	e.GET("/patients/:patientID/analyses/:analysisID", s.getAnalysis)
	e.GET("/patients/:patientID/analyses/:analysisID/report", s.getReport)
}

// Handler exposes the server as an http.Handler for httptest harnesses.
func (s *Server) Handler() http.Handler { return s.echo }

// Start serves on addr until the process exits.
func (s *Server) Start(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("sandbox backend listening")
	return s.echo.Start(addr)
}

// detail writes the backend's JSON error shape.
func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"detail": msg})
}

func intParam(c echo.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// -- Doctors --

func (s *Server) listDoctors(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.Doctor, len(s.doctors))
	copy(out, s.doctors)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createDoctor(c echo.Context) error {
	var in api.NewDoctor
	if err := c.Bind(&in); err != nil {
		return detail(c, http.StatusBadRequest, "invalid request body")
	}
	if in.Name == "" {
		return detail(c, http.StatusUnprocessableEntity, "name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextDoctor++
	d := api.Doctor{ID: s.nextDoctor, Name: in.Name, Email: in.Email, Specialty: in.Specialty}
	s.doctors = append(s.doctors, d)
	return c.JSON(http.StatusCreated, d)
}

// -- Patients --

func (s *Server) listPatients(c echo.Context) error {
	doctorID, ok := intParam(c, "doctorID")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid doctor id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.doctorExists(doctorID) {
		return detail(c, http.StatusNotFound, "doctor not found")
	}
	out := []api.Patient{}
	for _, p := range s.patients {
		if p.DoctorID == doctorID {
			out = append(out, p.Patient)
		}
	}
	sortPatients(out)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createPatient(c echo.Context) error {
	doctorID, ok := intParam(c, "doctorID")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid doctor id")
	}
	var in api.NewPatient
	if err := c.Bind(&in); err != nil {
		return detail(c, http.StatusBadRequest, "invalid request body")
	}
	if in.FullName == "" {
		return detail(c, http.StatusUnprocessableEntity, "full_name is required")
	}
	if in.DocumentID == "" {
		return detail(c, http.StatusUnprocessableEntity, "document_id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.doctorExists(doctorID) {
		return detail(c, http.StatusNotFound, "doctor not found")
	}
	for _, p := range s.patients {
		if p.DocumentID == in.DocumentID {
			return detail(c, http.StatusUnprocessableEntity, "document_id already exists")
		}
	}

	s.nextPatient++
	rec := &patientRecord{
		Patient: api.Patient{
			ID:          s.nextPatient,
			FullName:    in.FullName,
			DocumentID:  in.DocumentID,
			DateOfBirth: in.DateOfBirth,
			Sex:         in.Sex,
			CreatedAt:   time.Now().UTC(),
		},
		DoctorID: doctorID,
	}
	s.patients[rec.ID] = rec
	return c.JSON(http.StatusCreated, rec.Patient)
}

func (s *Server) getPatient(c echo.Context) error {
	patientID, ok := intParam(c, "patientID")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid patient id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.patients[patientID]
	if !found {
		return detail(c, http.StatusNotFound, "patient not found")
	}
	return c.JSON(http.StatusOK, rec.Patient)
}

// -- Analyses --

func (s *Server) listAnalyses(c echo.Context) error {
	patientID, ok := intParam(c, "patientID")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid patient id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.patients[patientID]; !found {
		return detail(c, http.StatusNotFound, "patient not found")
	}
	out := []api.Analysis{}
	for _, a := range s.analyses {
		if a.PatientID == patientID {
			out = append(out, a.Analysis)
		}
	}
	sortAnalyses(out)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createAnalysis(c echo.Context) error {
	patientID, ok := intParam(c, "patientID")
	if !ok {
		return detail(c, http.StatusUnprocessableEntity, "invalid patient id")
	}

	brca1Name, brca1, err := formFile(c, "brca1_file")
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "brca1_file is required")
	}
	brca2Name, brca2, err := formFile(c, "brca2_file")
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "brca2_file is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, found := s.patients[patientID]
	if !found {
		return detail(c, http.StatusNotFound, "patient not found")
	}

	summary, risk, mutations := runAnalysis(brca1Name, brca1, brca2Name, brca2)
	s.nextAnalysis++
	for i := range mutations {
		s.nextMutation++
		mutations[i].ID = s.nextMutation
	}
	a := &analysisRecord{
		Analysis: api.Analysis{
			ID:          s.nextAnalysis,
			CreatedAt:   time.Now().UTC(),
			Summary:     summary,
			OverallRisk: risk,
		},
		PatientID:  patientID,
		Mutations:  mutations,
		ArtifactID: uuid.NewString(),
	}
	s.analyses[a.ID] = a
	s.reports[a.ArtifactID] = renderReportPDF(rec.Patient, a.Analysis, mutations)

	s.logger.Info().
		Int("patient_id", patientID).
		Int("analysis_id", a.ID).
		Str("risk", risk).
		Msg("analysis created")
	return c.JSON(http.StatusCreated, a.Analysis)
}

func (s *Server) getAnalysis(c echo.Context) error {
	patientID, okP := intParam(c, "patientID")
	analysisID, okA := intParam(c, "analysisID")
	if !okP || !okA {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	a, found := s.analyses[analysisID]
	if !found || a.PatientID != patientID {
		return detail(c, http.StatusNotFound, "analysis not found")
	}
	out := api.AnalysisDetail{Analysis: a.Analysis, Mutations: a.Mutations}
	if out.Mutations == nil {
		out.Mutations = []api.Mutation{}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getReport(c echo.Context) error {
	patientID, okP := intParam(c, "patientID")
	analysisID, okA := intParam(c, "analysisID")
	if !okP || !okA {
		return detail(c, http.StatusUnprocessableEntity, "invalid id")
	}

	s.mu.Lock()
	a, found := s.analyses[analysisID]
	var artifact []byte
	if found && a.PatientID == patientID {
		artifact = s.reports[a.ArtifactID]
	}
	s.mu.Unlock()

	if artifact == nil {
		return detail(c, http.StatusNotFound, "report not found")
	}
	return c.Blob(http.StatusOK, "application/pdf", artifact)
}

func (s *Server) doctorExists(id int) bool {
	for _, d := range s.doctors {
		if d.ID == id {
			return true
		}
	}
	return false
}

func sortPatients(ps []api.Patient) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].ID < ps[j].ID })
}

func sortAnalyses(as []api.Analysis) {
	sort.Slice(as, func(i, j int) bool { return as[i].ID < as[j].ID })
}

func formFile(c echo.Context, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}
