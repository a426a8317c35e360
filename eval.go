package mandel

// IterCap is a hard ceiling on the escape iteration count, independent of
// the per-request MaxIter. It bounds worst-case per-pixel compute during
// deep zooms; do not raise it without re-checking interactive latency.
const IterCap = 1000

// EscapeCount returns the number of z ← z²+c iterations, starting from
// z=0, before |z|² exceeds the bailout value 4. Points inside the main
// cardioid or the period-2 bulb are detected up front and report maxIter
// without iterating. The count is capped at min(maxIter, IterCap).
func EscapeCount(cre, cim float64, maxIter uint32) uint32 {
	// Main cardioid: q*(q+(x-1/4)) <= y²/4
	xr := cre - 0.25
	q := xr*xr + cim*cim
	if q*(q+xr) <= 0.25*cim*cim {
		return maxIter
	}

	// Period-2 bulb: (x+1)² + y² <= 1/16
	x1 := cre + 1
	if x1*x1+cim*cim <= 0.0625 {
		return maxIter
	}

	limit := maxIter
	if limit > IterCap {
		limit = IterCap
	}

	var zr, zi float64
	var i uint32
	for ; i < limit && zr*zr+zi*zi <= 4; i++ {
		zr, zi = zr*zr-zi*zi+cre, 2*zr*zi+cim
	}
	return i
}

// RenderBand renders the rows [b.Start, b.End) of a width-wide canvas
// under the given view and returns the band's RGBA bytes: exactly
// width*b.Rows()*4 of them, row-major, pixel (x,y) at offset
// ((y-b.Start)*width + x)*4. A pure function of its arguments; empty
// bands yield an empty buffer.
func RenderBand(width uint32, b Band, view ViewState, maxIter uint32) []byte {
	rowLen := int(width) * 4
	buf := make([]byte, rowLen*int(b.Rows()))
	for y := b.Start; y < b.End; y++ {
		off := int(y-b.Start) * rowLen
		renderRow(buf[off:off+rowLen], width, y, view, maxIter)
	}
	return buf
}

// renderRow fills dst (width*4 bytes) with the colors of raster row y.
func renderRow(dst []byte, width uint32, y uint32, view ViewState, maxIter uint32) {
	cim := float64(y)/view.Zoom + view.OffsetY
	for x := uint32(0); x < width; x++ {
		c := PixelColor(EscapeCount(float64(x)/view.Zoom+view.OffsetX, cim, maxIter), maxIter)
		copy(dst[x*4:], c[:])
	}
}

// PixelColor maps an escape count to an RGBA color. Escaped points get
// channels proportional to the count, saturating at 255; presumed-interior
// points (n >= maxIter) are opaque black.
func PixelColor(n, maxIter uint32) [4]byte {
	if n >= maxIter {
		return [4]byte{0, 0, 0, 255}
	}
	return [4]byte{clamp8(2 * n), clamp8(5 * n), clamp8(3 * n), 255}
}

// clamp8 saturates v to the 0..255 byte range (no wrap-around).
func clamp8(v uint32) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
