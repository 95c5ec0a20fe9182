package main

import (
	"github.com/joho/godotenv"

	"hrms/internal/app/server"
)

func main() {
	_ = godotenv.Load()
	server.Run()
}
