//go:build js && wasm

package main

import "syscall/js"

// initCanvas sizes the canvas element and fills it with a background
// color so unrendered areas are visibly distinct.
func initCanvas(width, height int, color string) {
	doc := js.Global().Get("document")
	canvas := doc.Call("getElementById", "view")

	canvas.Set("width", width)
	canvas.Set("height", height)

	ctx := canvas.Call("getContext", "2d")
	ctx.Set("fillStyle", color)
	ctx.Call("fillRect", 0, 0, width, height)
}

// resizeCanvas adjusts the canvas to a new window size. Resizing clears
// the canvas; the caller re-requests a render right after.
func resizeCanvas(width, height int) {
	canvas := js.Global().Get("document").Call("getElementById", "view")
	canvas.Set("width", width)
	canvas.Set("height", height)
}

// drawBand paints one band's RGBA bytes at its vertical position.
func drawBand(width, startY int, chunk []byte) {
	document := js.Global().Get("document")
	canvas := document.Call("getElementById", "view")
	ctx := canvas.Call("getContext", "2d")

	// Copy the band into a JS Uint8ClampedArray; ImageData wants the
	// clamped flavour of byte array.
	jsData := js.Global().Get("Uint8ClampedArray").New(len(chunk))
	js.CopyBytesToJS(jsData, chunk)

	rows := len(chunk) / (width * 4)
	imageData := js.Global().Get("ImageData").New(jsData, width, rows)

	// putImageData(data, x, y) — bands always span the full width.
	ctx.Call("putImageData", imageData, 0, startY)
}
