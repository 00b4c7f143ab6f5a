//go:build tinygo

package main

import (
	"picotris/app"
	"picotris/config"
	"picotris/hal"
)

func main() {
	app.Run(hal.New(), config.Default())
}
