package records

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-events-api/core/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(ClientConfig{BaseURL: srv.URL, APIKey: "key", BaseID: "base"})
	if err != nil {
		t.Fatal(err)
	}
	return c, srv
}

func TestSelectFollowsPageOffsets(t *testing.T) {
	calls := 0
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if auth := r.Header.Get("Authorization"); auth != "Bearer key" {
			t.Errorf("auth header = %q", auth)
		}
		page := recordsPage{}
		switch r.URL.Query().Get("offset") {
		case "":
			page.Records = []Record{{ID: "rec1"}, {ID: "rec2"}}
			page.Offset = "next"
		case "next":
			page.Records = []Record{{ID: "rec3"}}
		default:
			t.Errorf("unexpected offset %q", r.URL.Query().Get("offset"))
		}
		_ = json.NewEncoder(w).Encode(page)
	})

	recs, err := c.Select(context.Background(), "events", SelectOptions{})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("made %d requests, want 2", calls)
	}
	if len(recs) != 3 || recs[2].ID != "rec3" {
		t.Fatalf("got %d records: %+v", len(recs), recs)
	}
}

func TestSelectSendsFilterAndFields(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("filterByFormula"); got != `{email} = "a@b.com"` {
			t.Errorf("filterByFormula = %q", got)
		}
		if got := q["fields[]"]; len(got) != 1 || got[0] != "subscriptionId" {
			t.Errorf("fields[] = %v", got)
		}
		if got := q.Get("maxRecords"); got != "5" {
			t.Errorf("maxRecords = %q", got)
		}
		_ = json.NewEncoder(w).Encode(recordsPage{})
	})

	_, err := c.Select(context.Background(), "subscribers", SelectOptions{
		Filter:     Eq("email", "a@b.com"),
		Fields:     []string{"subscriptionId"},
		MaxRecords: 5,
	})
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
}

func TestCreateSplitsIntoWriteBatches(t *testing.T) {
	var batchSizes []int
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body writeBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatal(err)
		}
		batchSizes = append(batchSizes, len(body.Records))
		page := recordsPage{}
		for i := range body.Records {
			page.Records = append(page.Records, Record{ID: fmt.Sprintf("rec%d", i), Fields: body.Records[i].Fields})
		}
		_ = json.NewEncoder(w).Encode(page)
	})

	fields := make([]Fields, 23)
	for i := range fields {
		fields[i] = Fields{"name": fmt.Sprintf("n%d", i)}
	}
	created, err := c.Create(context.Background(), "subscribers", fields)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(created) != 23 {
		t.Errorf("created %d records, want 23", len(created))
	}
	want := []int{10, 10, 3}
	if len(batchSizes) != len(want) {
		t.Fatalf("batch sizes = %v, want %v", batchSizes, want)
	}
	for i := range want {
		if batchSizes[i] != want[i] {
			t.Errorf("batch[%d] size = %d, want %d", i, batchSizes[i], want[i])
		}
	}
}

func TestDoMapsNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := c.Select(context.Background(), "events", SelectOptions{})
	if !errors.IsCode(err, errors.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDoMapsServerError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.Select(context.Background(), "events", SelectOptions{})
	if !errors.IsCode(err, errors.ErrRecordsStore) {
		t.Errorf("error = %v, want ErrRecordsStore", err)
	}
}
