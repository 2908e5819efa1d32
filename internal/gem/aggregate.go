package gem

import "sort"

// Project maps gem records to their response views, computing ReviewDetails
// fresh from each gem's current vote set. Input order is preserved.
func Project(gems []Gem) []GemView {
	views := make([]GemView, 0, len(gems))
	for _, g := range gems {
		views = append(views, projectOne(g))
	}
	return views
}

func projectOne(g Gem) GemView {
	media := make([]MediaView, 0, len(g.Media))
	for _, m := range g.Media {
		media = append(media, MediaView{URI: m.URI, Type: m.Type})
	}
	return GemView{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Type:        g.Type,
		Latitude:    g.Lat,
		Longitude:   g.Lng,
		Author: AuthorView{
			Name:              g.Author.Username,
			ProfilePictureURL: g.Author.ProfilePicture,
		},
		Media:         media,
		ReviewDetails: reviewDetails(g.Votes),
	}
}

func reviewDetails(votes []Vote) ReviewDetails {
	details := ReviewDetails{Count: len(votes)}
	if details.Count == 0 {
		return details
	}
	details.UpvotePercentage = 100 * float64(upvotes(votes)) / float64(details.Count)
	return details
}

func upvotes(votes []Vote) int {
	n := 0
	for _, v := range votes {
		if v.Type == VoteUp {
			n++
		}
	}
	return n
}

// mergeByID appends extra gems to base, dropping any gem whose ID was
// already seen. Insertion order is preserved: base first, then extras.
func mergeByID(base, extra []Gem) []Gem {
	seen := make(map[string]struct{}, len(base)+len(extra))
	merged := make([]Gem, 0, len(base)+len(extra))
	for _, g := range append(base, extra...) {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		merged = append(merged, g)
	}
	return merged
}

// rankByUpvotes sorts gems descending by upvote count. A positive limit
// truncates the result; zero means no truncation. The sort is stable so
// equal-count gems keep their input order.
func rankByUpvotes(gems []Gem, limit int) []Gem {
	ranked := make([]Gem, len(gems))
	copy(ranked, gems)
	sort.SliceStable(ranked, func(i, j int) bool {
		return upvotes(ranked[i].Votes) > upvotes(ranked[j].Votes)
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
