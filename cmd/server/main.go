package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/NYTimes/gziphandler"

	"pv_simulator/internal/web"
	"pv_simulator/internal/ws"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	// Set up WebSocket hub and solve handler
	hub := ws.NewHub()
	wsHandler := ws.NewHandler(hub)

	// Routes. The WebSocket endpoint stays outside the gzip wrap; the
	// upgrade needs to hijack the raw connection.
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	web.NewHandler().Register(apiMux)

	mux := http.NewServeMux()
	mux.Handle("/ws", wsHandler)
	mux.Handle("/", gziphandler.GzipHandler(apiMux))

	log.Printf("Starting server on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}
