package services

import (
	"testing"
	"time"

	"github.com/chirper-app/chirper/pkg/internal/models"
)

func TestMergeLikedRefsOrdersByLikeTime(t *testing.T) {
	posts := []models.PostLike{
		{PostID: "p1", CreatedAt: time.Unix(1, 0)},
		{PostID: "p2", CreatedAt: time.Unix(5, 0)},
	}
	comments := []models.CommentLike{
		{CommentID: "c1", CreatedAt: time.Unix(3, 0)},
	}

	refs := mergeLikedRefs(posts, comments)

	want := []string{"p2", "c1", "p1"}
	if len(refs) != len(want) {
		t.Fatalf("expected %d refs, got %d", len(want), len(refs))
	}
	for i, id := range want {
		if refs[i].id != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, refs[i].id)
		}
	}
}

func TestPageLikedRefs(t *testing.T) {
	refs := make([]likedRef, 13)

	cases := []struct {
		page, size, want int
	}{
		{1, 6, 6},
		{2, 6, 6},
		{3, 6, 1},
		{4, 6, 0},
	}
	for i, c := range cases {
		if got := len(pageLikedRefs(refs, c.page, c.size)); got != c.want {
			t.Fatalf("case %d: page %d returned %d items, want %d", i, c.page, got, c.want)
		}
	}
}
