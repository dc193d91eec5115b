package aggregate

import (
	"fmt"
	"sort"
	"time"

	"treesure/internal/api/report/models"
)

// ActivityEntry is one row of the dashboard recency feed.
type ActivityEntry struct {
	Kind      string    `json:"kind"` // "application" or "tree"
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
	TimeAgo   string    `json:"timeAgo"`
}

// RecencyFeed merges the n most recent applications with the n most
// recently tagged trees into one reverse-chronological activity list.
// Trees without a tag date are left out, applications always carry a
// submission time.
func RecencyFeed(applications []models.ApplicationRecord, trees []models.TreeRecord, n int, now time.Time) []ActivityEntry {
	if n <= 0 {
		return nil
	}

	apps := make([]models.ApplicationRecord, len(applications))
	copy(apps, applications)
	sort.SliceStable(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})
	if len(apps) > n {
		apps = apps[:n]
	}

	var tagged []models.TreeRecord
	for _, tree := range trees {
		if tree.DateTagged != nil {
			tagged = append(tagged, tree)
		}
	}
	sort.SliceStable(tagged, func(i, j int) bool {
		return tagged[i].DateTagged.After(*tagged[j].DateTagged)
	})
	if len(tagged) > n {
		tagged = tagged[:n]
	}

	feed := make([]ActivityEntry, 0, len(apps)+len(tagged))
	for _, app := range apps {
		feed = append(feed, ActivityEntry{
			Kind:      "application",
			Title:     fmt.Sprintf("%s application submitted", app.Type),
			Detail:    app.ApplicantName,
			Timestamp: app.CreatedAt,
			TimeAgo:   RelativeTime(app.CreatedAt, now),
		})
	}
	for _, tree := range tagged {
		feed = append(feed, ActivityEntry{
			Kind:      "tree",
			Title:     fmt.Sprintf("%s tagged in %s", tree.Species, tree.Municipality),
			Detail:    tree.ForesterName,
			Timestamp: *tree.DateTagged,
			TimeAgo:   RelativeTime(*tree.DateTagged, now),
		})
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	return feed
}

// RelativeTime renders a timestamp as a human-readable distance from now.
func RelativeTime(t time.Time, now time.Time) string {
	elapsed := now.Sub(t)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "min")
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour")
	case elapsed < 7*24*time.Hour:
		return plural(int(elapsed.Hours()/24), "day")
	case elapsed < 30*24*time.Hour:
		return plural(int(elapsed.Hours()/(24*7)), "week")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
