// Package main starts the AreaCage server.
package main

import "os"

// main is the entrypoint for the areacage CLI.
func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
