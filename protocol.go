package mandel

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Wire protocol between the explorer client and the render server. Each
// WebSocket message is one packet: a type byte followed by fixed
// little-endian fields, with the band's raw RGBA bytes trailing the band
// header. There is no stream framing; message boundaries come from the
// transport.
const (
	msgRenderRequest = 0x01
	msgBandResult    = 0x02
)

const (
	renderRequestLen = 1 + 4*4 + 3*8 // type + seq,width,height,maxIter + zoom,offsetX,offsetY
	bandHeaderLen    = 1 + 3*4       // type + seq,width,startY
)

// EncodeRenderRequest packs a render request into a wire message.
func EncodeRenderRequest(req RenderRequest) []byte {
	p := make([]byte, renderRequestLen)
	p[0] = msgRenderRequest
	binary.LittleEndian.PutUint32(p[1:], req.Seq)
	binary.LittleEndian.PutUint32(p[5:], req.Width)
	binary.LittleEndian.PutUint32(p[9:], req.Height)
	binary.LittleEndian.PutUint32(p[13:], req.MaxIter)
	binary.LittleEndian.PutUint64(p[17:], math.Float64bits(req.View.Zoom))
	binary.LittleEndian.PutUint64(p[25:], math.Float64bits(req.View.OffsetX))
	binary.LittleEndian.PutUint64(p[33:], math.Float64bits(req.View.OffsetY))
	return p
}

// DecodeRenderRequest unpacks a render request wire message.
func DecodeRenderRequest(p []byte) (RenderRequest, error) {
	if len(p) != renderRequestLen {
		return RenderRequest{}, fmt.Errorf("render request: got %d bytes, want %d", len(p), renderRequestLen)
	}
	if p[0] != msgRenderRequest {
		return RenderRequest{}, fmt.Errorf("render request: unexpected message type 0x%02x", p[0])
	}
	return RenderRequest{
		Seq:     binary.LittleEndian.Uint32(p[1:]),
		Width:   binary.LittleEndian.Uint32(p[5:]),
		Height:  binary.LittleEndian.Uint32(p[9:]),
		MaxIter: binary.LittleEndian.Uint32(p[13:]),
		View: ViewState{
			Zoom:    math.Float64frombits(binary.LittleEndian.Uint64(p[17:])),
			OffsetX: math.Float64frombits(binary.LittleEndian.Uint64(p[25:])),
			OffsetY: math.Float64frombits(binary.LittleEndian.Uint64(p[33:])),
		},
	}, nil
}

// EncodeBandHeader builds the header of a band result message. The band's
// chunk bytes follow the header on the wire; keeping them separate lets
// the server stream the evaluator's buffer without re-copying it.
func EncodeBandHeader(seq, width, startY uint32) []byte {
	p := make([]byte, bandHeaderLen)
	p[0] = msgBandResult
	binary.LittleEndian.PutUint32(p[1:], seq)
	binary.LittleEndian.PutUint32(p[5:], width)
	binary.LittleEndian.PutUint32(p[9:], startY)
	return p
}

// DecodeBandResult unpacks a complete band result message (header plus
// chunk). The chunk aliases p; callers must not reuse p afterwards.
func DecodeBandResult(p []byte) (seq, width, startY uint32, chunk []byte, err error) {
	if len(p) < bandHeaderLen {
		return 0, 0, 0, nil, fmt.Errorf("band result: got %d bytes, want at least %d", len(p), bandHeaderLen)
	}
	if p[0] != msgBandResult {
		return 0, 0, 0, nil, fmt.Errorf("band result: unexpected message type 0x%02x", p[0])
	}
	seq = binary.LittleEndian.Uint32(p[1:])
	width = binary.LittleEndian.Uint32(p[5:])
	startY = binary.LittleEndian.Uint32(p[9:])
	chunk = p[bandHeaderLen:]
	if width > 0 && len(chunk)%(int(width)*4) != 0 {
		return 0, 0, 0, nil, fmt.Errorf("band result: chunk length %d not a multiple of row length %d", len(chunk), width*4)
	}
	return seq, width, startY, chunk, nil
}
