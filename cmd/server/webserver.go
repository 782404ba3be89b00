package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
)

// webServer creates a server serving files in the static folder and the
// websocket endpoint viewers connect to.
func webServer(ctx context.Context, addr, static string, hub *viewerHub) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(ctx, hub))
	mux.Handle("/", http.FileServer(http.Dir(static)))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// websocketHandler upgrades the request and streams frames to it until the
// client goes away or ctx is cancelled.
func websocketHandler(ctx context.Context, hub *viewerHub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		if err := hub.serve(ctx, c, r.RemoteAddr); err != nil {
			log.Printf("viewer %s: %v", r.RemoteAddr, err)
			return
		}
		c.Close(websocket.StatusNormalClosure, "")
	}
}
