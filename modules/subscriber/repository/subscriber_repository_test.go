package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go-events-api/core/records"
	"go-events-api/modules/subscriber/entity"
)

// fakeStore matches Eq-on-subscriptionId lookups against its in-memory
// records by checking for the quoted key in the rendered formula.
type fakeStore struct {
	records []records.Record
	nextID  int

	selectCalls []records.SelectOptions
	createCalls int
	updateCalls int
}

func (s *fakeStore) Select(_ context.Context, _ string, opts records.SelectOptions) ([]records.Record, error) {
	s.selectCalls = append(s.selectCalls, opts)
	if opts.Filter == nil {
		return s.records, nil
	}
	formula := opts.Filter.Formula()
	var out []records.Record
	for _, rec := range s.records {
		key := rec.Fields.Str("subscriptionId")
		if key != "" && strings.Contains(formula, `"`+key+`"`) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, _ string, fields []records.Fields) ([]records.Record, error) {
	s.createCalls++
	var out []records.Record
	for _, f := range fields {
		s.nextID++
		rec := records.Record{ID: fmt.Sprintf("rec%d", s.nextID), Fields: f}
		s.records = append(s.records, rec)
		out = append(out, rec)
	}
	return out, nil
}

func (s *fakeStore) Update(_ context.Context, _ string, updates []records.Update) ([]records.Record, error) {
	s.updateCalls++
	var out []records.Record
	for _, u := range updates {
		for i := range s.records {
			if s.records[i].ID == u.ID {
				s.records[i].Fields = u.Fields
				out = append(out, s.records[i])
			}
		}
	}
	return out, nil
}

func makeSubs(n int) []*entity.Subscriber {
	subs := make([]*entity.Subscriber, 0, n)
	for i := 0; i < n; i++ {
		subs = append(subs, &entity.Subscriber{
			SubscriptionID: fmt.Sprintf("sub_%03d", i),
			Email:          fmt.Sprintf("user%d@example.com", i),
			Status:         entity.StatusActive,
		})
	}
	return subs
}

func TestUpsertBatchCreatesInChunks(t *testing.T) {
	store := &fakeStore{}
	repo := NewSubscriberRepository(store)

	result, err := repo.UpsertBatch(context.Background(), makeSubs(23))
	if err != nil {
		t.Fatalf("UpsertBatch failed: %v", err)
	}
	if result.Created != 23 || result.Updated != 0 {
		t.Errorf("result = %+v, want 23 created / 0 updated", result)
	}
	// One batched lookup per chunk of 10.
	if len(store.selectCalls) != 3 {
		t.Errorf("made %d lookups, want 3", len(store.selectCalls))
	}
	for i, opts := range store.selectCalls {
		if len(opts.Fields) != 1 || opts.Fields[0] != "subscriptionId" {
			t.Errorf("lookup[%d] fields = %v, want [subscriptionId]", i, opts.Fields)
		}
		if opts.MaxRecords == 0 {
			t.Errorf("lookup[%d] has no MaxRecords cap", i)
		}
	}
	if store.updateCalls != 0 {
		t.Errorf("made %d update calls on a fresh store, want 0", store.updateCalls)
	}
}

func TestUpsertBatchConverges(t *testing.T) {
	store := &fakeStore{}
	repo := NewSubscriberRepository(store)
	subs := makeSubs(15)

	if _, err := repo.UpsertBatch(context.Background(), subs); err != nil {
		t.Fatalf("first UpsertBatch failed: %v", err)
	}

	// Second run with refreshed values must update in place, never duplicate.
	for _, sub := range subs {
		sub.Status = "canceled"
	}
	result, err := repo.UpsertBatch(context.Background(), subs)
	if err != nil {
		t.Fatalf("second UpsertBatch failed: %v", err)
	}
	if result.Created != 0 || result.Updated != 15 {
		t.Errorf("result = %+v, want 0 created / 15 updated", result)
	}
	if len(store.records) != 15 {
		t.Errorf("store holds %d records, want 15", len(store.records))
	}
	for _, rec := range store.records {
		if got := rec.Fields.Str("status"); got != "canceled" {
			t.Errorf("record %s status = %q, want canceled", rec.ID, got)
		}
	}
}

func TestUpsertBatchMixesCreatesAndUpdates(t *testing.T) {
	store := &fakeStore{}
	repo := NewSubscriberRepository(store)

	if _, err := repo.UpsertBatch(context.Background(), makeSubs(5)); err != nil {
		t.Fatalf("seed UpsertBatch failed: %v", err)
	}

	result, err := repo.UpsertBatch(context.Background(), makeSubs(8))
	if err != nil {
		t.Fatalf("UpsertBatch failed: %v", err)
	}
	if result.Created != 3 || result.Updated != 5 {
		t.Errorf("result = %+v, want 3 created / 5 updated", result)
	}
	if len(store.records) != 8 {
		t.Errorf("store holds %d records, want 8", len(store.records))
	}
}

func TestUpsertBatchEmptyInput(t *testing.T) {
	store := &fakeStore{}
	repo := NewSubscriberRepository(store)

	result, err := repo.UpsertBatch(context.Background(), nil)
	if err != nil {
		t.Fatalf("UpsertBatch failed: %v", err)
	}
	if result.Created != 0 || result.Updated != 0 {
		t.Errorf("result = %+v, want zero work", result)
	}
	if len(store.selectCalls) != 0 || store.createCalls != 0 || store.updateCalls != 0 {
		t.Error("expected no store calls for empty input")
	}
}
