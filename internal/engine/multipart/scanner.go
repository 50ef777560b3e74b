package multipart

// MatchResult describes the outcome of a single Scanner.Find call.
type MatchResult struct {
	Found bool
	Start int // start index of the match (or of the safe-to-emit cut point)
	End   int // end index, exclusive (equals Start when no match was found)
}

// Find runs Boyer-Moore-Horspool over buf's live window looking for
// needle. On a full match it records buf.start/buf.end as the match
// bounds and returns Found. On no match it records a conservative
// "safe to emit" cut point — the largest prefix of the live window that
// cannot possibly be the start of a match straddling into data not yet
// read — and returns NotFound.
func Find(buf *RingBuffer, needle *Needle) MatchResult {
	valid := buf.valid
	last := needle.last
	pattern := needle.pattern

	i := buf.start + last
	for i < valid {
		k := 0
		for k <= last && buf.bb.B[i-k] == pattern[last-k] {
			k++
		}
		if k > last {
			start := i - last
			end := i + 1
			buf.start = start
			buf.end = end
			return MatchResult{Found: true, Start: start, End: end}
		}
		i += needle.skip[buf.bb.B[i]]
	}

	safe := valid - last
	if safe < 0 {
		safe = 0
	}
	buf.start = safe
	buf.end = safe
	return MatchResult{Found: false, Start: safe, End: safe}
}

// ProbePartialSuffix is the partial-suffix probe used only when Find
// returned NotFound with no safely shiftable prefix (buf.start == 0): it
// checks whether the tail of the live window could be the start of a
// boundary that the next chunk will complete. If so it pins buf.start (and
// buf.end) to the start of that candidate suffix, so the caller holds it
// back rather than emitting it as part content. If no candidate suffix
// exists, the entire live window is safe to emit and the caller should
// treat buf.start == buf.valid.
func ProbePartialSuffix(buf *RingBuffer, needle *Needle) bool {
	valid := buf.valid
	if valid == 0 {
		return false
	}
	last := buf.bb.B[valid-1]
	positions := needle.loc[last]

	for idx := len(positions) - 1; idx >= 0; idx-- {
		p := positions[idx]
		start := valid - 1 - p
		if start < 0 {
			continue
		}
		matched := true
		for j := 0; j <= p; j++ {
			if buf.bb.B[start+j] != needle.pattern[j] {
				matched = false
				break
			}
		}
		if matched {
			buf.start = start
			buf.end = start
			return true
		}
	}
	return false
}
