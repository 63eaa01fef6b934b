package services

// Fixed page sizes per listing kind. Feeds, search and liked content page by
// six; the replies profile view pages by three distinct posts.
const (
	FeedPageSize    = 6
	RepliesPageSize = 3
)

// TotalPages is always ceil(total / size); a page number past it is not an
// error, the listing just comes back empty.
func TotalPages(total int64, size int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

func PageOffset(page, size int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * size
}
