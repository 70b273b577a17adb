package httpserver

import (
	"log"
	"net/http"
	"time"
)

// StartHTTP serves the mux with sane timeouts. The write timeout stays
// generous because a guess request can sit on the judge for a while.
func StartHTTP(addr string, mux *http.ServeMux) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      200 * time.Second,
		IdleTimeout:       90 * time.Second,
	}
	log.Printf("listening on %s", addr)
	return srv.ListenAndServe()
}
