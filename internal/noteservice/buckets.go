package noteservice

import "time"

// Bucket labels a date window used to group notes when browsing.
type Bucket string

const (
	BucketToday     Bucket = "Today"
	BucketYesterday Bucket = "Yesterday"
	BucketThisWeek  Bucket = "This Week"
	BucketThisMonth Bucket = "This Month"
	BucketOlder     Bucket = "Older"
)

// bucketOrder is the display order of browse sections.
var bucketOrder = []Bucket{BucketToday, BucketYesterday, BucketThisWeek, BucketThisMonth, BucketOlder}

// bucketFor places t into a date bucket relative to now, using local
// calendar-day boundaries. Windows are fixed: yesterday is the previous
// calendar day, "this week" the last 7 days, "this month" the last 30.
func bucketFor(t, now time.Time) Bucket {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case !t.Before(day):
		return BucketToday
	case !t.Before(day.AddDate(0, 0, -1)):
		return BucketYesterday
	case !t.Before(day.AddDate(0, 0, -7)):
		return BucketThisWeek
	case !t.Before(day.AddDate(0, 0, -30)):
		return BucketThisMonth
	default:
		return BucketOlder
	}
}
