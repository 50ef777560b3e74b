package multipart

import "testing"

func bufferWith(t *testing.T, s string) *RingBuffer {
	t.Helper()
	r := newRingBuffer(1 << 20)
	t.Cleanup(r.Release)
	if err := r.Append([]byte(s)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	return r
}

func TestFindFullMatch(t *testing.T) {
	needle := NewNeedle([]byte("\r\n--B"))
	buf := bufferWith(t, "alice\r\n--Bmore")

	res := Find(buf, needle)
	if !res.Found {
		t.Fatal("expected Found")
	}
	if res.Start != len("alice") {
		t.Fatalf("Start = %d, want %d", res.Start, len("alice"))
	}
	if res.End != len("alice\r\n--B") {
		t.Fatalf("End = %d, want %d", res.End, len("alice\r\n--B"))
	}
}

func TestFindNoMatchSafePrefix(t *testing.T) {
	needle := NewNeedle([]byte("\r\n--B"))
	buf := bufferWith(t, "just some content with no boundary in it at all")

	res := Find(buf, needle)
	if res.Found {
		t.Fatal("expected NotFound")
	}
	wantSafe := buf.valid - needle.last
	if res.Start != wantSafe || res.End != wantSafe {
		t.Fatalf("Start/End = %d/%d, want %d", res.Start, res.End, wantSafe)
	}
}

func TestFindAcrossEveryChunkSplit(t *testing.T) {
	full := "header\r\n\r\nsome body content\r\n--BOUND123more"
	needle := NewNeedle([]byte("\r\n--BOUND123"))

	for split := 1; split < len(full); split++ {
		buf := newRingBuffer(1 << 20)
		_ = buf.Append([]byte(full[:split]))
		fedRest := false

		var res MatchResult
		for attempts := 0; attempts < 3; attempts++ {
			res = Find(buf, needle)
			if res.Found {
				break
			}
			if buf.start == 0 {
				if !ProbePartialSuffix(buf, needle) {
					buf.start = buf.valid
					buf.end = buf.valid
				}
			}
			buf.ShiftTo()
			if !fedRest {
				_ = buf.Append([]byte(full[split:]))
				fedRest = true
			}
		}
		if !res.Found {
			t.Fatalf("split at %d: never found match", split)
		}
		buf.Release()
	}
}

func TestProbePartialSuffixDetectsStraddlingPrefix(t *testing.T) {
	needle := NewNeedle([]byte("\r\n--BOUND"))
	// Buffer ends in a true prefix of the needle ("\r\n--B"), simulating a
	// boundary split across two chunks.
	buf := bufferWith(t, "some content\r\n--B")

	res := Find(buf, needle)
	if res.Found {
		t.Fatal("expected NotFound before probing")
	}
	if buf.start != buf.valid-needle.last {
		t.Fatal("test setup expects Find alone to mark only valid-(L-1) bytes as shiftable")
	}

	if !ProbePartialSuffix(buf, needle) {
		t.Fatal("expected partial-suffix probe to find the straddling prefix")
	}
	if got, want := buf.start, len("some content"); got != want {
		t.Fatalf("probe pinned start = %d, want %d", got, want)
	}
}

func TestProbePartialSuffixNoCandidate(t *testing.T) {
	needle := NewNeedle([]byte("\r\n--BOUND"))
	buf := bufferWith(t, "zzz")

	if ProbePartialSuffix(buf, needle) {
		t.Fatal("expected no partial-suffix match")
	}
}

func TestFindFalsePositiveBoundaryPrefix(t *testing.T) {
	// Content containing "\r\n--" followed by a prefix of the boundary but
	// not the full boundary must not be reported as a match.
	needle := NewNeedle([]byte("\r\n--BOUNDARY"))
	buf := bufferWith(t, "body with \r\n--BOUN inside it, not a real boundary")

	res := Find(buf, needle)
	if res.Found {
		t.Fatal("must not match a mere prefix of the boundary")
	}
}
