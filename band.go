package mandel

// Band is a contiguous horizontal slice of the output raster,
// rows [Start, End).
type Band struct {
	Start uint32
	End   uint32 // exclusive
}

// Rows returns the number of rows in the band.
func (b Band) Rows() uint32 {
	return b.End - b.Start
}

// SplitBands partitions [0, height) into exactly n bands: non-overlapping,
// ascending and covering the full height. Each band gets height/n rows,
// except the last, which absorbs the integer-division remainder. When
// height < n some bands are empty (Start == End).
func SplitBands(height, n uint32) []Band {
	if n == 0 {
		n = 1
	}
	bands := make([]Band, n)
	rows := height / n
	for i := uint32(0); i < n; i++ {
		start := i * rows
		end := start + rows
		if i == n-1 {
			end = height
		}
		bands[i] = Band{Start: start, End: end}
	}
	return bands
}
