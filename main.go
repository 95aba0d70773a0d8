package main

import (
	"log"
	"os"

	"github.com/horgh/carbon/config"
)

func main() {
	log.SetFlags(0)

	args := getArgs()
	if args == nil {
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(args.ConfigFile)
	if err != nil {
		log.Fatal(err)
	}

	b := NewBouncer(cfg.BouncerName)

	if err := b.Start(cfg.Servers, defaultListenAddr); err != nil {
		log.Fatal(err)
	}
}
