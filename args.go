package main

import (
	"fmt"
	"os"
)

const defaultConfigFile = "conf.yaml"

// Args are command line arguments: a single optional positional path to
// the YAML configuration file.
type Args struct {
	ConfigFile string
}

func getArgs() *Args {
	if len(os.Args) > 2 {
		printUsage(fmt.Errorf("too many arguments"))
		return nil
	}

	configFile := defaultConfigFile
	if len(os.Args) == 2 {
		configFile = os.Args[1]
	}

	return &Args{ConfigFile: configFile}
}

func printUsage(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "%s\n", err)
	_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [config-file]\n", os.Args[0])
}
