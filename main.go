package main

import (
	"context"
	"fmt"
	"os"

	logger "github.com/Easy-Infra-Ltd/easy-logger"

	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/config"
	"github.com/Easy-Infra-Ltd/easy-phishcheck/src/service"
)

func main() {
	log := logger.CreateLoggerFromEnv(nil, "blue").With("process", "easyphishcheck")

	cfgPath := "config.json"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	svc := service.New(cfg, log)
	if err := svc.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "phishcheck: %v\n", err)
		os.Exit(1)
	}
}
