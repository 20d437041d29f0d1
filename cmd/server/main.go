package main

import "admissions/internal/app"

// @title           Admissions Portal API
// @version         1.0
// @description     Candidate registration and multi-stage application workflow.
// @BasePath        /
func main() {
	app.Run()
}
