// The render server hosts the WASM explorer and performs all rendering.
// Browsers connect over WebSocket, stream view-state changes and receive
// finished bands back; each connection gets its own parallel coordinator.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	port := flag.Int("port", 8080, "http listen port")
	workers := flag.Int("workers", 4, "concurrent band workers per render")
	static := flag.String("static", "./static", "directory with index.html, wasm_exec.js and main.wasm")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", renderHandler(*workers))
	mux.Handle("/", http.FileServer(http.Dir(*static)))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost:%d", *port)
	return srv.ListenAndServe()
}

// renderHandler upgrades the connection and hands it to a render session.
func renderHandler(workers int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		serveSession(c, workers)
	}
}
