package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/vmunix/catchup/internal/config"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "Path to config file (default: search CATCHUP_CONFIG, ./config.toml, XDG, /etc)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("catchupd %s\n", version)
		os.Exit(0)
	}

	path := *configPath
	if path == "" {
		var err error
		if path, err = config.Discover(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			if errors.Is(err, config.ErrNotFound) {
				fmt.Fprintln(os.Stderr, "run 'catchup init' to create one")
			}
			os.Exit(1)
		}
	}

	if err := runServer(path); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
