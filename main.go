package main

import (
	"os"

	"github.com/mohit-756/interview-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
