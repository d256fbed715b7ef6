package main

import (
	wayfarer "github.com/wayfarer-app/wayfarer/app"
)

func main() {
	app := wayfarer.New(nil, nil)
	app.Start()
}
