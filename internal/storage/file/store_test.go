package file_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Shriprasad-P/Matrix-abacus-site/internal/domain"
	filestore "github.com/Shriprasad-P/Matrix-abacus-site/internal/storage/file"
)

func review(loc, author string) domain.Review {
	return domain.Review{
		ID:           author + "-id",
		LocationName: loc,
		Author:       author,
		Rating:       4,
		Text:         "solid",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestMissingFileIsEmptyList(t *testing.T) {
	s := filestore.New(filepath.Join(t.TempDir(), "reviews.json"))
	rs, err := s.ListReviews(context.Background())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(rs) != 0 {
		t.Fatalf("expected no reviews, got %+v", rs)
	}
}

func TestAddPreservesSubmissionOrder(t *testing.T) {
	s := filestore.New(filepath.Join(t.TempDir(), "reviews.json"))
	ctx := context.Background()

	for _, a := range []string{"first", "second", "third"} {
		if err := s.AddReview(ctx, review("HSR Layout", a)); err != nil {
			t.Fatalf("add %s: %v", a, err)
		}
	}

	rs, err := s.ListReviews(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rs) != 3 || rs[0].Author != "first" || rs[2].Author != "third" {
		t.Fatalf("order not preserved: %+v", rs)
	}
}

func TestPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	ctx := context.Background()

	if err := filestore.New(path).AddReview(ctx, review("Jayanagar", "Ana")); err != nil {
		t.Fatalf("add: %v", err)
	}

	// a fresh store over the same file sees the data
	rs, err := filestore.New(path).ListReviews(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rs) != 1 || rs[0].Author != "Ana" {
		t.Fatalf("unexpected reviews: %+v", rs)
	}
}

func TestListByLocation_CaseInsensitive(t *testing.T) {
	s := filestore.New(filepath.Join(t.TempDir(), "reviews.json"))
	ctx := context.Background()

	if err := s.AddReview(ctx, review("HSR Layout", "Ana")); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.AddReview(ctx, review("Jayanagar", "Raj")); err != nil {
		t.Fatalf("add: %v", err)
	}

	rs, err := s.ListByLocation(ctx, "hsr layout")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rs) != 1 || rs[0].Author != "Ana" {
		t.Fatalf("unexpected match: %+v", rs)
	}

	rs, err = s.ListByLocation(ctx, "Whitefield")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rs) != 0 {
		t.Fatalf("expected empty list for unknown location")
	}
}

func TestConcurrentAddsAllLand(t *testing.T) {
	s := filestore.New(filepath.Join(t.TempDir(), "reviews.json"))
	ctx := context.Background()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.AddReview(ctx, review("HSR Layout", fmt.Sprintf("author-%d", i)))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	rs, err := s.ListReviews(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rs) != n {
		t.Fatalf("expected %d reviews, got %d", n, len(rs))
	}
}

func TestCorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	s := filestore.New(path)
	if _, err := s.ListReviews(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
	if err := s.AddReview(context.Background(), review("x", "y")); err == nil {
		t.Fatalf("expected decode error on add")
	}
}
