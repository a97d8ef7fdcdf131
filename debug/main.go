package main

import (
	"os"

	"github.com/courseforge/courseforge/internal/server"
)

func main() {
	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	err := server.Start(httpPort)
	if err != nil {
		return
	}
}
