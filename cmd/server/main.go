package main

import (
	"flag"
	"log"
	"net/http"

	"levelup/internal/config"
	"levelup/internal/serverapp"
)

func main() {
	configPath := flag.String("config", "levelup.yml", "path to YAML config")
	addr := flag.String("addr", "", "listen address override")
	dataDir := flag.String("data-dir", "", "data directory override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:  cfg,
		DataDir: *dataDir,
		Logger:  log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
