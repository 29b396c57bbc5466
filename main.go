package main

import (
	"log"

	"TodoAPI/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
