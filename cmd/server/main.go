package main

import (
	"log"
	"net/http"
	"time"

	"taskdeck/internal/api"
	"taskdeck/internal/auth"
	"taskdeck/internal/config"
	"taskdeck/internal/files"
	"taskdeck/internal/utils"
)

// defaultTags are seeded on first start so a fresh install has something to
// file tasks under.
var defaultTags = []string{"Work", "Personal", "Study"}

func main() {
	cfg := config.Load("config.json")

	logger, err := utils.NewLogger(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Close()

	secret, err := config.ReadMasterSecret(cfg.SecretFile)
	if err != nil {
		log.Fatal(err)
	}
	authn, err := auth.New(secret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	if err != nil {
		log.Fatal(err)
	}

	tasks, err := files.OpenTaskStore(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}
	tags, err := files.OpenTagStore(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}
	users, err := files.OpenUserStore(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}

	if len(tags.All()) == 0 {
		for _, name := range defaultTags {
			if _, err := tags.Create(name); err != nil {
				log.Fatal(err)
			}
		}
		logger.Info("seeded default tags")
	}

	s := api.NewServer(tasks, tags, users, authn, logger)
	log.Println("Server running on", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, s.Router()))
}
