//go:build js && wasm

package main

import "syscall/js"

// socket is a thin wrapper over the browser WebSocket. The protocol is
// message-oriented, so unlike a stream wrapper there is no read
// buffering: every received binary message is delivered whole to onMsg.
type socket struct {
	ws   js.Value
	open bool
}

func newSocket(url string, onMsg func([]byte), onOpen func()) *socket {
	s := &socket{ws: js.Global().Get("WebSocket").New(url)}

	s.ws.Set("binaryType", "arraybuffer")

	s.ws.Set("onopen", js.FuncOf(func(js.Value, []js.Value) any {
		s.open = true
		onOpen()
		return nil
	}))

	s.ws.Set("onmessage", js.FuncOf(func(this js.Value, args []js.Value) any {
		jsDataToBytes(args[0].Get("data"), onMsg)
		return nil
	}))

	s.ws.Set("onclose", js.FuncOf(func(js.Value, []js.Value) any {
		logScreenf("ws closed")
		s.open = false
		return nil
	}))

	s.ws.Set("onerror", js.FuncOf(func(js.Value, []js.Value) any {
		logScreenf("ws error")
		return nil
	}))

	return s
}

// send transmits one binary message. Messages sent before the socket is
// open are dropped; a render request is only meaningful once the server
// can answer it, and the onOpen hook issues a fresh one anyway.
func (s *socket) send(p []byte) {
	if !s.open {
		return
	}
	u8 := js.Global().Get("Uint8Array").New(len(p))
	js.CopyBytesToJS(u8, p)
	s.ws.Call("send", u8)
}

// jsDataToBytes converts a received JS binary payload into a Go byte
// slice, handling the shapes a WebSocket message can arrive in.
func jsDataToBytes(data js.Value, deliver func([]byte)) {
	// Uint8Array / Uint8ClampedArray
	if data.InstanceOf(js.Global().Get("Uint8Array")) ||
		data.InstanceOf(js.Global().Get("Uint8ClampedArray")) {

		b := make([]byte, data.Get("byteLength").Int())
		js.CopyBytesToGo(b, data)
		deliver(b)
		return
	}

	// ArrayBuffer
	if data.InstanceOf(js.Global().Get("ArrayBuffer")) {
		u8 := js.Global().Get("Uint8Array").New(data)
		b := make([]byte, u8.Get("byteLength").Int())
		js.CopyBytesToGo(b, u8)
		deliver(b)
		return
	}

	// Blob → async
	if data.InstanceOf(js.Global().Get("Blob")) {
		promise := data.Call("arrayBuffer")
		then := js.FuncOf(func(this js.Value, args []js.Value) any {
			buf := args[0]
			u8 := js.Global().Get("Uint8Array").New(buf)
			b := make([]byte, u8.Get("byteLength").Int())
			js.CopyBytesToGo(b, u8)
			deliver(b)
			return nil
		})
		promise.Call("then", then)
		return
	}

	panic("unsupported JS binary type")
}
