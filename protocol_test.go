package mandel

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderRequestRoundTrip(t *testing.T) {
	req := RenderRequest{
		Width:   1920,
		Height:  1080,
		MaxIter: 250,
		View:    ViewState{Zoom: 42666.5, OffsetX: -0.7435, OffsetY: 0.1310},
		Seq:     9,
	}

	p := EncodeRenderRequest(req)
	if len(p) != renderRequestLen {
		t.Fatalf("encoded length %d, want %d", len(p), renderRequestLen)
	}
	got, err := DecodeRenderRequest(p)
	if err != nil {
		t.Fatalf("DecodeRenderRequest: %v", err)
	}
	if diff := cmp.Diff(req, got); diff != "" {
		t.Errorf("round trip (-sent +received):\n%s", diff)
	}
}

func TestBandResultRoundTrip(t *testing.T) {
	chunk := RenderBand(16, Band{Start: 4, End: 7}, scenarioView, 100)

	msg := append(EncodeBandHeader(3, 16, 4), chunk...)
	seq, width, startY, gotChunk, err := DecodeBandResult(msg)
	if err != nil {
		t.Fatalf("DecodeBandResult: %v", err)
	}
	if seq != 3 || width != 16 || startY != 4 {
		t.Errorf("header = (%d, %d, %d), want (3, 16, 4)", seq, width, startY)
	}
	if diff := cmp.Diff(chunk, gotChunk); diff != "" {
		t.Errorf("chunk differs (-sent +received):\n%s", diff)
	}

	// An empty band is a legal message with no trailing bytes.
	if _, _, _, gotChunk, err = DecodeBandResult(EncodeBandHeader(3, 16, 4)); err != nil {
		t.Fatalf("empty band: %v", err)
	} else if len(gotChunk) != 0 {
		t.Errorf("empty band decoded %d chunk bytes", len(gotChunk))
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		p    []byte
	}{
		{"empty", nil},
		{"truncated", EncodeRenderRequest(RenderRequest{})[:10]},
		{"wrong type", EncodeBandHeader(1, 8, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeRenderRequest(tc.p); err == nil {
				t.Error("DecodeRenderRequest accepted malformed input")
			}
		})
	}

	if _, _, _, _, err := DecodeBandResult([]byte{msgBandResult, 0}); err == nil {
		t.Error("DecodeBandResult accepted a truncated header")
	}
	if _, _, _, _, err := DecodeBandResult(EncodeRenderRequest(RenderRequest{})); err == nil {
		t.Error("DecodeBandResult accepted a render request message")
	}
	// Chunk length must be a whole number of rows.
	bad := append(EncodeBandHeader(1, 8, 0), make([]byte, 33)...)
	if _, _, _, _, err := DecodeBandResult(bad); err == nil {
		t.Error("DecodeBandResult accepted a ragged chunk")
	}
}
