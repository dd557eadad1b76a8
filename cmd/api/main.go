package main

import (
	"log"

	"rmassistant/cmd"
	"rmassistant/internal"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	secrets, err := internal.LoadSecrets()
	if err != nil {
		log.Fatal(err)
	}

	apiHandler, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(apiHandler)

	if err := apiHandler.StartApi(secrets.Port); err != nil {
		log.Fatal(err)
	}
}
