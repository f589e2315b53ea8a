package booking

// IsAvailable reports whether every 30-minute sub-slot of candidate is free
// of the taken ranges. Checking per sub-slot matters because a multi-hour
// request can straddle several shorter booked slots. Adjacency is not a
// conflict: a range ending exactly where another starts leaves both free.
func IsAvailable(candidate TimeRange, taken []TimeRange) bool {
	for start := candidate.Start; start < candidate.End; start += SlotGranularityMinutes {
		sub := TimeRange{Date: candidate.Date, Start: start, End: start + SlotGranularityMinutes}
		for _, t := range taken {
			if sub.Overlaps(t) {
				return false
			}
		}
	}
	return true
}
