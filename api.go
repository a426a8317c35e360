package mandel

// ViewState maps the pixel grid onto the complex plane.
// Zoom is the scale in pixels per plane unit (must be > 0).
// OffsetX/OffsetY are the plane coordinates of pixel (0,0).
type ViewState struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64
}

// RenderRequest describes one full-frame render.
// Seq is an opaque caller-chosen tag echoed back through FrameSink and
// BandHook; the coordinator never interprets it.
type RenderRequest struct {
	Width   uint32
	Height  uint32
	MaxIter uint32
	View    ViewState
	Seq     uint32
}

// FrameSink receives a completed frame. pix is the full RGBA buffer of
// length Width*Height*4, row-major. It is called on the coordinator's
// control goroutine; the receiver must not mutate the buffer.
type FrameSink func(req RenderRequest, pix []byte)

// BandHook receives each finished band as it lands, before the frame is
// complete. chunk holds the band's RGBA bytes starting at row startY.
// Called on the control goroutine, so calls never overlap.
type BandHook func(req RenderRequest, startY uint32, chunk []byte)
