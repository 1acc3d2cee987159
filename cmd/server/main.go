package main

import "onboarding/internal/app"

// @title           Customer Onboarding API
// @version         1.0
// @description     Registration, OTP verification, migration and contact-change flows for customer onboarding.
// @BasePath        /
func main() {
	app.Run()
}
