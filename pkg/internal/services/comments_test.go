package services

import (
	"testing"
	"time"

	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/samber/lo"
)

func makeComment(id string, parentId *string, at int64) *models.Comment {
	return &models.Comment{
		ID:        id,
		ParentID:  parentId,
		PostID:    "post-1",
		Text:      "comment " + id,
		CreatedAt: time.Unix(at, 0),
	}
}

func TestBuildCommentForest(t *testing.T) {
	// c1(root, t=1), c2(parent=c1, t=2), c3(parent=c2, t=3), c4(root, t=4)
	items := []*models.Comment{
		makeComment("c1", nil, 1),
		makeComment("c2", lo.ToPtr("c1"), 2),
		makeComment("c3", lo.ToPtr("c2"), 3),
		makeComment("c4", nil, 4),
	}

	roots := BuildCommentForest(items)

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].ID != "c4" || roots[1].ID != "c1" {
		t.Fatalf("expected roots [c4 c1], got [%s %s]", roots[0].ID, roots[1].ID)
	}
	if len(roots[1].Children) != 1 || roots[1].Children[0].ID != "c2" {
		t.Fatalf("expected c1 children [c2], got %+v", roots[1].Children)
	}
	c2 := roots[1].Children[0]
	if len(c2.Children) != 1 || c2.Children[0].ID != "c3" {
		t.Fatalf("expected c2 children [c3], got %+v", c2.Children)
	}
}

func TestBuildCommentForestOrphan(t *testing.T) {
	items := []*models.Comment{
		makeComment("c1", lo.ToPtr("gone"), 1),
		makeComment("c2", nil, 2),
	}

	roots := BuildCommentForest(items)

	if len(roots) != 2 {
		t.Fatalf("orphan should become a root, got %d roots", len(roots))
	}
	if roots[0].ID != "c2" || roots[1].ID != "c1" {
		t.Fatalf("expected roots [c2 c1], got [%s %s]", roots[0].ID, roots[1].ID)
	}
}

func TestBuildCommentForestPreservesNodeCount(t *testing.T) {
	// Deliberately shuffled input: children arrive before their parents.
	items := []*models.Comment{
		makeComment("c5", lo.ToPtr("c2"), 9),
		makeComment("c3", lo.ToPtr("c1"), 5),
		makeComment("c1", nil, 1),
		makeComment("c4", lo.ToPtr("c1"), 7),
		makeComment("c2", nil, 3),
		makeComment("c6", lo.ToPtr("c4"), 11),
	}

	roots := BuildCommentForest(items)

	var total int
	var walk func(nodes []*models.Comment)
	walk = func(nodes []*models.Comment) {
		for _, node := range nodes {
			total++
			walk(node.Children)
		}
	}
	walk(roots)

	if total != len(items) {
		t.Fatalf("forest lost nodes: %d in, %d out", len(items), total)
	}

	// Sibling lists read newest first at every level.
	var checkOrder func(nodes []*models.Comment)
	checkOrder = func(nodes []*models.Comment) {
		for i := 1; i < len(nodes); i++ {
			if nodes[i-1].CreatedAt.Before(nodes[i].CreatedAt) {
				t.Fatalf("siblings out of order: %s before %s", nodes[i-1].ID, nodes[i].ID)
			}
		}
		for _, node := range nodes {
			checkOrder(node.Children)
		}
	}
	checkOrder(roots)

	// Every child points back at its direct parent.
	var checkLinks func(nodes []*models.Comment)
	checkLinks = func(nodes []*models.Comment) {
		for _, node := range nodes {
			for _, child := range node.Children {
				if child.ParentID == nil || *child.ParentID != node.ID {
					t.Fatalf("child %s not linked to parent %s", child.ID, node.ID)
				}
			}
			checkLinks(node.Children)
		}
	}
	checkLinks(roots)
}

func TestValidCommentText(t *testing.T) {
	cases := []struct {
		text string
		ok   bool
	}{
		{"hello", true},
		{"a", true},
		{"", false},
		{"   ", false},
		{"\n\t", false},
		{string(make([]rune, 151)), false},
		{" padded but fine ", true},
	}
	for i, c := range cases {
		if got := ValidCommentText(c.text); got != c.ok {
			t.Fatalf("case %d: expected %v for %q, got %v", i, c.ok, c.text, got)
		}
	}
}
