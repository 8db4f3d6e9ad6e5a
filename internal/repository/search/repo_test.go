package search

import (
	"context"
	"errors"
	"testing"

	"github.com/ktravel-lab/tripchat/internal/db"
	"github.com/ktravel-lab/tripchat/internal/domain"
)

// --- Mocks ---

type mockStore struct {
	knnResult  *db.SearchResult
	knnErr     error
	knnQuery   *db.KNNQuery
	listResult *db.SearchResult
	listErr    error
	listOffset int
	listLimit  int
	count      int
	countErr   error
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.knnQuery = q
	return m.knnResult, m.knnErr
}

func (m *mockStore) SearchList(
	_ context.Context, _, _ string, offset, limit int, _ []string,
) (*db.SearchResult, error) {
	m.listOffset = offset
	m.listLimit = limit
	return m.listResult, m.listErr
}

func (m *mockStore) SearchCount(_ context.Context, _, _ string) (int, error) {
	return m.count, m.countErr
}

// --- Tests ---

func TestTopK(t *testing.T) {
	s := &mockStore{knnResult: &db.SearchResult{
		Total: 3,
		Entries: []db.SearchEntry{
			{Key: "tripchat:attraction:a1", Score: 0.9, Fields: map[string]string{
				"title": "Gyeongbokgung Palace", "latitude": "37.5796", "longitude": "126.977",
			}},
			{Key: "tripchat:attraction:a2", Score: 0.25, Fields: map[string]string{"title": "Below cutoff"}},
			{Key: "tripchat:attraction:a3", Score: 0.4, Fields: map[string]string{"title": "No coords"}},
		},
	}}
	repo := New(s)

	got, err := repo.TopK(context.Background(), domain.DomainAttraction, []float32{0.1}, 5, 0.3)
	if err != nil {
		t.Fatalf("TopK: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 matches above minScore, got %d", len(got))
	}
	if got[0].ID != "a1" {
		t.Errorf("key prefix not stripped: %q", got[0].ID)
	}
	if got[0].Payload.Latitude != 37.5796 {
		t.Errorf("latitude not parsed: %v", got[0].Payload.Latitude)
	}
	if got[1].Payload.Latitude != 0 {
		t.Errorf("missing latitude must stay zero, got %v", got[1].Payload.Latitude)
	}

	if s.knnQuery.IndexName != "tripchat:attraction:idx" {
		t.Errorf("index = %q", s.knnQuery.IndexName)
	}
	if s.knnQuery.K != 5 {
		t.Errorf("k = %d, want 5", s.knnQuery.K)
	}
}

func TestTopK_SearchError(t *testing.T) {
	repo := New(&mockStore{knnErr: errors.New("index missing")})

	if _, err := repo.TopK(context.Background(), domain.DomainFestival, nil, 5, 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestSample(t *testing.T) {
	s := &mockStore{
		count: 3,
		listResult: &db.SearchResult{Entries: []db.SearchEntry{
			{Key: "tripchat:restaurant:r1", Fields: map[string]string{"title": "Alpha"}},
			{Key: "tripchat:restaurant:r2", Fields: map[string]string{"title": "Beta"}},
		}},
	}
	repo := New(s)

	got, err := repo.Sample(context.Background(), domain.DomainRestaurant, 5)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].ID != "r1" || got[0].Title != "Alpha" {
		t.Errorf("candidate = %+v", got[0])
	}
	if got[0].Domain != domain.DomainRestaurant {
		t.Errorf("domain = %q", got[0].Domain)
	}
	// n >= total: the whole collection fits, no offset needed.
	if s.listOffset != 0 || s.listLimit != 5 {
		t.Errorf("list window = (%d, %d)", s.listOffset, s.listLimit)
	}
}

func TestSample_RandomOffsetStaysInRange(t *testing.T) {
	s := &mockStore{count: 100, listResult: &db.SearchResult{}}
	repo := New(s)

	for i := 0; i < 20; i++ {
		if _, err := repo.Sample(context.Background(), domain.DomainAttraction, 10); err != nil {
			t.Fatalf("Sample: %v", err)
		}
		if s.listOffset < 0 || s.listOffset > 90 {
			t.Fatalf("offset %d leaves fewer than n records", s.listOffset)
		}
	}
}

func TestSample_EmptyCollection(t *testing.T) {
	repo := New(&mockStore{count: 0})

	got, err := repo.Sample(context.Background(), domain.DomainFestival, 5)
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no candidates, got %d", len(got))
	}
}
