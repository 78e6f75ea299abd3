package main

import (
	"github.com/SemiSummit/registration_service/config"
	"github.com/SemiSummit/registration_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
