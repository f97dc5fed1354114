package main

import "os"

func main() {
	// Execute has already reported the error.
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
