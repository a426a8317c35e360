//go:build js && wasm

// webclient.go is the WASM explorer for the Mandelbrot render server.
// It captures pan (drag), zoom (wheel) and window-resize gestures, turns
// them into render requests sent over WebSocket, and paints the band
// results the server streams back into the canvas.
// Note: all rendering happens server-side; this client only translates
// input into view state and displays pixels.

package main

import (
	"fmt"
	"log"
	"math"
	"syscall/js"

	mandel "github.com/marben/mandelzoom"
)

const defaultMaxIter = 100

// explorer holds the current view state and the WebSocket to the server.
// All methods run on JS event callbacks, which never overlap, so no
// locking is needed.
type explorer struct {
	sock *socket

	width, height uint32
	view          mandel.ViewState
	maxIter       uint32

	seq uint32 // current request tag; bands with an older tag are dropped

	dragging     bool
	lastX, lastY float64
}

// main is the entry point for the WASM explorer.
// It sizes the canvas to the window, connects to the server and wires up
// the input events.
func main() {
	logScreenf("Starting WASM explorer...")

	// Step 1: Size the canvas to the browser window
	window := js.Global().Get("window")
	width := uint32(window.Get("innerWidth").Int())
	height := uint32(window.Get("innerHeight").Int())
	initCanvas(int(width), int(height), "#3a3a6e")
	logScreenf("Canvas initialized to %dx%d", width, height)

	// Step 2: Determine server address for the WebSocket connection
	loc := window.Get("location")
	host := loc.Get("host").String()
	proto := "ws"
	if loc.Get("protocol").String() == "https:" {
		proto = "wss"
	}
	websocketURL := proto + "://" + host + "/ws"

	e := &explorer{
		width:   width,
		height:  height,
		view:    mandel.Home.View(width),
		maxIter: defaultMaxIter,
	}

	// Step 3: Connect to the render server
	logScreenf("Connecting to render server at %s...", websocketURL)
	e.sock = newSocket(websocketURL, e.onMessage, func() {
		logScreenf("WebSocket connected.")
		e.requestRender()
	})

	// Step 4: Wire up pan / zoom / resize events
	e.bindEvents()

	// Step 5: Block main goroutine to keep WASM running
	select {}
}

// requestRender snapshots the current view into a new request and sends
// it. The server supersedes whatever it was still rendering for us.
func (e *explorer) requestRender() {
	e.seq++
	req := mandel.RenderRequest{
		Width:   e.width,
		Height:  e.height,
		MaxIter: e.maxIter,
		View:    e.view,
		Seq:     e.seq,
	}
	e.sock.send(mandel.EncodeRenderRequest(req))
	hudSetView(e.view)
}

// onMessage handles one band result from the server.
func (e *explorer) onMessage(data []byte) {
	seq, width, startY, chunk, err := mandel.DecodeBandResult(data)
	if err != nil {
		logScreenf("bad band message: %v", err)
		return
	}
	if seq != e.seq || len(chunk) == 0 {
		// Band of a superseded request (or an empty band); ignore.
		return
	}
	drawBand(int(width), int(startY), chunk)
}

// bindEvents attaches the gesture handlers that translate browser input
// into view-state changes.
func (e *explorer) bindEvents() {
	canvas := js.Global().Get("document").Call("getElementById", "view")

	canvas.Set("onmousedown", js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		e.dragging = true
		e.lastX = ev.Get("clientX").Float()
		e.lastY = ev.Get("clientY").Float()
		return nil
	}))

	canvas.Set("onmousemove", js.FuncOf(func(this js.Value, args []js.Value) any {
		if !e.dragging {
			return nil
		}
		ev := args[0]
		x := ev.Get("clientX").Float()
		y := ev.Get("clientY").Float()
		// Dragging moves the plane with the pointer: shift the origin
		// by the pixel delta converted to plane units.
		e.view.OffsetX -= (x - e.lastX) / e.view.Zoom
		e.view.OffsetY -= (y - e.lastY) / e.view.Zoom
		e.lastX, e.lastY = x, y
		e.requestRender()
		return nil
	}))

	canvas.Set("onmouseup", js.FuncOf(func(this js.Value, args []js.Value) any {
		e.dragging = false
		return nil
	}))

	canvas.Set("onwheel", js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := args[0]
		ev.Call("preventDefault")
		mx := ev.Get("clientX").Float()
		my := ev.Get("clientY").Float()
		e.zoomAt(mx, my, math.Pow(1.0015, -ev.Get("deltaY").Float()))
		e.requestRender()
		return nil
	}))

	js.Global().Get("window").Set("onresize", js.FuncOf(func(this js.Value, args []js.Value) any {
		window := js.Global().Get("window")
		e.width = uint32(window.Get("innerWidth").Int())
		e.height = uint32(window.Get("innerHeight").Int())
		resizeCanvas(int(e.width), int(e.height))
		e.requestRender()
		return nil
	}))
}

// zoomAt scales the view by factor while keeping the plane point under
// the pixel (mx,my) fixed.
func (e *explorer) zoomAt(mx, my, factor float64) {
	newZoom := e.view.Zoom * factor
	e.view.OffsetX += mx/e.view.Zoom - mx/newZoom
	e.view.OffsetY += my/e.view.Zoom - my/newZoom
	e.view.Zoom = newZoom
}

// logScreenf appends a formatted message to the log element in the DOM.
func logScreenf(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	log.Print(msg)

	doc := js.Global().Get("document")
	logElem := doc.Call("getElementById", "log")
	logElem.Set("textContent", logElem.Get("textContent").String()+msg+"\n")
}

// hudSetView updates the HUD with the current plane coordinates and zoom.
func hudSetView(v mandel.ViewState) {
	doc := js.Global().Get("document")
	doc.Call("getElementById", "hudZoom").Set("textContent", fmt.Sprintf("%.6g", v.Zoom))
	doc.Call("getElementById", "hudPos").Set("textContent", fmt.Sprintf("%.6g%+.6gi", v.OffsetX, v.OffsetY))
}
