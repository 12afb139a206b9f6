package main

import "gigflow_backend/internal/app"

func main() {
	app.Run()
}
