package main

import (
	"log"

	"github.com/tarinagarwal/RRC2025/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
