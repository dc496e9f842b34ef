package main

import (
	"flag"
	"os"

	"github.com/joho/godotenv"

	"github.com/crystal-grimoire/backend/grimoireservice"
)

func main() {
	// Optional build-target flag override (local | cloud-dev | cloud)
	buildTarget := flag.String("build-target", "", "Override BUILD_TARGET (local, cloud-dev, cloud)")
	flag.Parse()

	// A missing .env file is fine; configuration comes from the
	// environment either way.
	_ = godotenv.Load()

	if err := grimoireservice.Run(*buildTarget); err != nil {
		os.Exit(1)
	}
}
