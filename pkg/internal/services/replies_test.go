package services

import (
	"testing"
	"time"

	"github.com/chirper-app/chirper/pkg/internal/models"
)

func repliedPostAt(id string, replyTimes ...int64) RepliedPost {
	post := models.Post{ID: id, CreatedAt: time.Unix(0, 0)}
	comments := make([]models.Comment, 0, len(replyTimes))
	for _, at := range replyTimes {
		comments = append(comments, models.Comment{PostID: id, CreatedAt: time.Unix(at, 0)})
	}
	return RepliedPost{
		Post:        post,
		Comments:    comments,
		LastReplyAt: lastReplyAt(post, comments),
	}
}

func TestRankRepliesByLatestActivity(t *testing.T) {
	// User comments on A at t=1, on B at t=2, then returns to A at t=3;
	// A must rank before B.
	replies := []RepliedPost{
		repliedPostAt("A", 1, 3),
		repliedPostAt("B", 2),
	}

	rankReplies(replies)

	if replies[0].ID != "A" || replies[1].ID != "B" {
		t.Fatalf("expected [A B], got [%s %s]", replies[0].ID, replies[1].ID)
	}
	if !replies[0].LastReplyAt.Equal(time.Unix(3, 0)) {
		t.Fatalf("expected A last reply at t=3, got %v", replies[0].LastReplyAt)
	}
}

func TestLastReplyAtFallsBackToPost(t *testing.T) {
	post := models.Post{ID: "P", CreatedAt: time.Unix(42, 0)}

	if got := lastReplyAt(post, nil); !got.Equal(post.CreatedAt) {
		t.Fatalf("expected fallback to post creation time, got %v", got)
	}
}
