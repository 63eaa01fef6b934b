package services

import "testing"

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{13, 6, 3},
		{3, 3, 1},
		{4, 3, 2},
	}
	for i, c := range cases {
		if got := TotalPages(c.total, c.size); got != c.want {
			t.Fatalf("case %d: TotalPages(%d, %d) = %d, want %d", i, c.total, c.size, got, c.want)
		}
	}
}

func TestPageOffset(t *testing.T) {
	cases := []struct {
		page, size, want int
	}{
		{1, 6, 0},
		{2, 6, 6},
		{3, 3, 6},
		{0, 6, 0},
		{-4, 6, 0},
	}
	for i, c := range cases {
		if got := PageOffset(c.page, c.size); got != c.want {
			t.Fatalf("case %d: PageOffset(%d, %d) = %d, want %d", i, c.page, c.size, got, c.want)
		}
	}
}
