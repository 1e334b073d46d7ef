package catalog

// Merge combines today's enriched records with the prior collection into a
// bounded, insertion-ordered window, unique by identifier. Today's records
// come first, so new releases displace the oldest entries; a previously seen
// record survives until pushed out by cap newer ones rather than vanishing
// the moment it leaves the feed.
//
// Before merging, each of today's records is patched from history: an empty
// cover or date is copied forward from a prior record with the same
// identifier. Healing only flows from history into today, never the reverse.
//
// Callers are expected to skip Merge entirely when today is empty; the
// never-shrink guarantee lives in the pipeline's outcome gating.
func Merge(prior, today []Record, cap int) []Record {
	if cap <= 0 {
		return nil
	}
	if len(today) > cap {
		today = today[:cap]
	}

	byISBN := make(map[string]Record, len(prior))
	for _, r := range prior {
		byISBN[r.ISBN] = r
	}
	patched := make([]Record, 0, len(today))
	for _, r := range today {
		if old, ok := byISBN[r.ISBN]; ok {
			if r.Cover == "" {
				r.Cover = old.Cover
			}
			if r.PubDate == "" {
				r.PubDate = old.PubDate
			}
		}
		patched = append(patched, r)
	}

	seen := make(map[string]bool, cap)
	out := make([]Record, 0, cap)
	for _, r := range append(patched, prior...) {
		if r.ISBN == "" || seen[r.ISBN] {
			continue
		}
		seen[r.ISBN] = true
		out = append(out, r)
		if len(out) >= cap {
			break
		}
	}
	return out
}
