package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/scott-cotton/cli"
)

func main() {
	// .env may carry GROVEL_CONFIG_PATCH for a project.
	_ = godotenv.Load()
	cli.MainContext(context.Background(), MainCommand())
}
