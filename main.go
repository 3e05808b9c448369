package main

import (
	"os"

	"github.com/EVCare-Admin/EVCare-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
