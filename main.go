package main

import (
	"os"

	"github.com/portal-prestadores/portal/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
