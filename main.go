package main

import (
	"log"

	"StackBot/internal/adapters/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	a.Start()
}
