package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gnosis/pkg/api"
	"gnosis/pkg/gnosis"
	"gnosis/pkg/store"

	log "github.com/sirupsen/logrus"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose logging")
	configPath := flag.String("config", "gnosis.toml", "Path to the config file")

	flag.Parse()
	if *verbose {
		// Set the log level to debug
		log.SetLevel(log.DebugLevel)
	}
	// Set the log format to include a leading timestamp in ISO8601 format
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	config, err := store.NewDatastore(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	sheet, save, err := config.OpenSheet()
	if err != nil {
		log.Fatalf("Failed to open sheet backend: %v", err)
	}
	manager, err := gnosis.New(sheet)
	if err != nil {
		log.Fatalf("Failed to initialise stats manager: %v", err)
	}
	log.Printf("Tracking statistics from %s to %s",
		manager.StartDate().Format("2006-01-02"),
		manager.EndDate().Format("2006-01-02"))

	router := api.GetRouter(manager)
	go startServer(router, config.Store.ListenAddress)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

mainloop:
	// In all cases, just exit and let the container restart from scratch.
	// There's less to get wrong doing it this way.
	for {
		select {
		case <-signalChan:
			log.Info("Signalled, breaking main loop")
			break mainloop
		}
	}

	if err := save(); err != nil {
		log.Errorf("Failed to save workbook: %v", err)
	}
}

func startServer(router http.Handler, listenAddress string) {
	server := http.Server{
		Addr:              listenAddress,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
	}
	log.Infof("listening for HTTP on: %s", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal("ListenAndServeError", err)
	}
}
