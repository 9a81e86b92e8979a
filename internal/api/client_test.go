package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, zerolog.Nop())
}

func TestErrorDetailExtraction(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"document_id already exists"}`))
	})

	_, err := c.ListDoctors(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", apiErr.Status)
	}
	if apiErr.Detail != "document_id already exists" {
		t.Errorf("detail = %q, want the server's detail string verbatim", apiErr.Detail)
	}
}

func TestErrorFallsBackToStatusLine(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.ListDoctors(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if !strings.Contains(apiErr.Detail, "500") {
		t.Errorf("detail = %q, want the HTTP status line", apiErr.Detail)
	}
}

func TestEmptyBodyIsNotAnError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.do(context.Background(), http.MethodGet, "/admin/doctors", nil, &[]Doctor{}); err != nil {
		t.Fatalf("empty body should decode to nothing, got %v", err)
	}
}

func TestNetworkErrorType(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", zerolog.Nop())

	_, err := c.ListDoctors(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
}

func TestRequestHeaders(t *testing.T) {
	var gotAccept, gotRequestID, gotContentType string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"name":"Ana Ruiz"}`))
	})

	if _, err := c.CreateDoctor(context.Background(), NewDoctor{Name: "Ana Ruiz", Email: "ana@x.com"}); err != nil {
		t.Fatalf("CreateDoctor: %v", err)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q", gotAccept)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
}

func TestSubmitAnalysisMultipart(t *testing.T) {
	var parts map[string]string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
			return
		}
		parts = map[string]string{}
		for field := range r.MultipartForm.File {
			f, _, err := r.FormFile(field)
			if err != nil {
				t.Errorf("form file %s: %v", field, err)
				continue
			}
			buf := make([]byte, 64)
			n, _ := f.Read(buf)
			f.Close()
			parts[field] = string(buf[:n])
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":7,"summary":"ok"}`))
	})

	created, err := c.SubmitAnalysis(context.Background(), 3,
		FASTAFile{Name: "brca1.fasta", Data: []byte(">seq1\nACGT")},
		FASTAFile{Name: "brca2.fasta", Data: []byte(">seq2\nTGCA")},
	)
	if err != nil {
		t.Fatalf("SubmitAnalysis: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("id = %d, want 7", created.ID)
	}
	if parts["brca1_file"] != ">seq1\nACGT" {
		t.Errorf("brca1_file payload = %q", parts["brca1_file"])
	}
	if parts["brca2_file"] != ">seq2\nTGCA" {
		t.Errorf("brca2_file payload = %q", parts["brca2_file"])
	}
}
