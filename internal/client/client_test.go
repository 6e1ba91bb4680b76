package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mgrove/cohort/internal/extract"
)

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("expected an error for a missing base URL")
	}
}

func TestFetchSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0.1/schema/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Token sekrit" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"subrecords": [
				{"name": "demographics", "single": true, "fields": [
					{"name": "date_of_birth"}, {"name": "sex"}
				]}
			]
		}`))
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL, Token: "sekrit"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	sch, err := c.FetchSchema()
	if err != nil {
		t.Fatalf("FetchSchema failed: %v", err)
	}

	fd, err := sch.FindField("demographics", "sex")
	if err != nil {
		t.Fatalf("FindField failed: %v", err)
	}
	if fd.Subrecord != "demographics" {
		t.Errorf("fetched descriptor missing owning subrecord: %+v", fd)
	}
}

func TestSubmit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v0.1/extract/" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req ExtractRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Criteria) != 1 || req.Criteria[0].Combine != "and" {
			t.Errorf("unexpected criteria payload: %+v", req.Criteria)
		}
		if len(req.DataSlice) != 1 || req.DataSlice[0].Subrecord != "demographics" {
			t.Errorf("unexpected data slice payload: %+v", req.DataSlice)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"episodes": [
				{"demographics": [{"sex": "Male", "date_of_birth": "1970-01-01"}]}
			]
		}`))
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := c.Submit(ExtractRequest{
		Criteria: []extract.FinalizedCriterion{{
			Column: "demographics", Field: "sex", QueryType: "Equals",
			Query: "Male", Combine: "and",
		}},
		DataSlice: []extract.SliceGroup{{
			Subrecord: "demographics", Fields: []string{"date_of_birth", "sex"},
		}},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if len(result.Episodes) != 1 {
		t.Fatalf("expected 1 episode, got %d", len(result.Episodes))
	}
	records := result.Episodes[0]["demographics"]
	if len(records) != 1 || records[0]["sex"] != "Male" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestSubmit_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := c.Submit(ExtractRequest{}); err == nil {
		t.Error("expected an error for a 500 response")
	}
}

func TestSearchPatients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v0.1/search/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("name"); got != "smith" {
			t.Errorf("unexpected name term: %q", got)
		}
		if r.URL.Query().Has("hospital_number") {
			t.Error("empty terms must be omitted")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"patients": [{"id": 7, "demographics": {"name": "John Smith"}}],
			"search_terms": {"name": "smith"}
		}`))
	}))
	defer srv.Close()

	c, err := New(Options{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	result, err := c.SearchPatients("", "smith")
	if err != nil {
		t.Fatalf("SearchPatients failed: %v", err)
	}
	if len(result.Patients) != 1 || result.Patients[0].ID != 7 {
		t.Errorf("unexpected patients: %+v", result.Patients)
	}
}

func TestSearchPatients_RequiresATerm(t *testing.T) {
	c, err := New(Options{BaseURL: "http://localhost:1"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := c.SearchPatients("", ""); err == nil {
		t.Error("expected an error when both terms are empty")
	}
}
