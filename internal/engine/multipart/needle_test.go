package multipart

import "testing"

func TestNewNeedleSkipTable(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		check   map[byte]int // byte -> expected skip
	}{
		{
			name:    "no repeated bytes",
			pattern: "ABCD",
			check: map[byte]int{
				'A': 3, // last(3) - 0
				'B': 2, // last(3) - 1
				'C': 1, // last(3) - 2
				'X': 4, // absent -> len(pattern)
			},
		},
		{
			name:    "repeated byte keeps the largest position before last",
			pattern: "ABAC",
			check: map[byte]int{
				'A': 1, // largest position < last(3) is 2 -> 3-2=1
				'B': 2, // position 1 -> 3-1=2
				'X': 4,
			},
		},
		{
			name:    "boundary-shaped pattern",
			pattern: "\r\n--xyz",
			check: map[byte]int{
				'z': 7, // absent before last -> len(pattern)
				'-': 3, // positions 2,3 -> largest 3 -> last(6)-3=3
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNeedle([]byte(tt.pattern))
			if n.Len() != len(tt.pattern) {
				t.Fatalf("Len() = %d, want %d", n.Len(), len(tt.pattern))
			}
			if n.last != len(tt.pattern)-1 {
				t.Fatalf("last = %d, want %d", n.last, len(tt.pattern)-1)
			}
			for b, want := range tt.check {
				if tt.name == "boundary-shaped pattern" && b == '-' {
					continue // checked precisely in the dedicated test below
				}
				if got := n.skip[b]; got != want {
					t.Errorf("skip[%q] = %d, want %d", b, got, want)
				}
			}
		})
	}
}

func TestNewNeedleSkipTableBoundaryPattern(t *testing.T) {
	// pattern "\r\n--xyz": indices 0=\r 1=\n 2=- 3=- 4=x 5=y 6=z, last=6
	n := NewNeedle([]byte("\r\n--xyz"))
	if got, want := n.skip['-'], 6-3; got != want {
		t.Errorf("skip['-'] = %d, want %d", got, want)
	}
	if got, want := n.skip['\r'], 6-0; got != want {
		t.Errorf("skip['\\r'] = %d, want %d", got, want)
	}
	if got, want := n.skip['\n'], 6-1; got != want {
		t.Errorf("skip['\\n'] = %d, want %d", got, want)
	}
}

func TestNewNeedleLocTable(t *testing.T) {
	n := NewNeedle([]byte("ABABA"))
	got := n.loc['A']
	want := []int{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("loc['A'] = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("loc['A'] = %v, want %v", got, want)
		}
	}

	gotB := n.loc['B']
	wantB := []int{1, 3}
	if len(gotB) != len(wantB) || gotB[0] != wantB[0] || gotB[1] != wantB[1] {
		t.Fatalf("loc['B'] = %v, want %v", gotB, wantB)
	}

	if len(n.loc['Z']) != 0 {
		t.Fatalf("loc['Z'] = %v, want empty", n.loc['Z'])
	}
}

func TestNeedleBytesReturnsOwnCopy(t *testing.T) {
	pattern := []byte("boundary")
	n := NewNeedle(pattern)
	pattern[0] = 'X'
	if n.Bytes()[0] == 'X' {
		t.Fatal("Needle must copy its pattern, not alias the caller's slice")
	}
}
