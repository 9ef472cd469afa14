package main

import (
	"log/slog"
	"os"

	"github.com/arun278627862/secure-quiz/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		slog.Error("Failed to load .env file")
		return
	}
	port := os.Getenv("QUIZ_PORT")
	if len(port) == 0 {
		slog.Error("Env QUIZ_PORT not set")
		return
	}
	ss, err := server.NewShowServer(port)
	if err != nil {
		return
	}
	ss.Run()
}
