package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"cft/internal/di"
	"cft/internal/structures"
)

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	debug := flag.Bool("debug", false, "enable debug logging to console")
	flag.Parse()

	flags := &structures.CliFlags{
		ConfigPath: *configPath,
		DebugMode:  *debug,
	}

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %s\n", err)
		os.Exit(1)
	}
}
