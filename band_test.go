package mandel

import "testing"

func TestSplitBandsPartition(t *testing.T) {
	cases := []struct {
		name   string
		height uint32
		n      uint32
	}{
		{"even split", 600, 4},
		{"remainder to last band", 601, 4},
		{"height below worker count", 1, 4},
		{"single worker", 100, 1},
		{"one row per worker", 7, 7},
		{"more workers than rows", 3, 8},
		{"large uneven", 1081, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bands := SplitBands(tc.height, tc.n)
			if len(bands) != int(tc.n) {
				t.Fatalf("got %d bands, want %d", len(bands), tc.n)
			}

			rows := tc.height / tc.n
			var covered uint32
			for i, b := range bands {
				if b.End < b.Start {
					t.Errorf("band %d: End %d < Start %d", i, b.End, b.Start)
				}
				if b.Start != covered {
					t.Errorf("band %d starts at %d, want %d (gap or overlap)", i, b.Start, covered)
				}
				if i < len(bands)-1 && b.Rows() != rows {
					t.Errorf("band %d has %d rows, want %d", i, b.Rows(), rows)
				}
				covered = b.End
			}
			if covered != tc.height {
				t.Errorf("bands cover [0,%d), want [0,%d)", covered, tc.height)
			}
		})
	}
}

func TestSplitBandsHeightOne(t *testing.T) {
	bands := SplitBands(1, 4)

	empty := 0
	for _, b := range bands {
		if b.Rows() == 0 {
			empty++
		}
	}
	if empty != 3 {
		t.Errorf("got %d empty bands, want 3", empty)
	}
	if last := bands[3]; last.Rows() != 1 || last.End != 1 {
		t.Errorf("last band = %+v, want {Start:0 End:1}", last)
	}
}

func TestSplitBandsZeroWorkers(t *testing.T) {
	bands := SplitBands(10, 0)
	if len(bands) != 1 || bands[0] != (Band{Start: 0, End: 10}) {
		t.Errorf("got %+v, want one full band", bands)
	}
}
