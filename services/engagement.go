package services

// EngagementRate is likes per comment, with the comment count offset by one.
// Without comments the rate is the like count itself.
func EngagementRate(likes, comments int64) float64 {
	if comments > 0 {
		return float64(likes) / float64(comments+1)
	}
	return float64(likes)
}
