// Dev entrypoint so `go run .` serves with defaults. The flag surface lives
// in cmd/server.
package main

import (
	"log"
	"net/http"

	"levelup/internal/config"
	"levelup/internal/serverapp"
)

func main() {
	cfg, err := config.Load("levelup.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
