package main

import (
	"github.com/ScholarStream/scholarship_service/config"
	"github.com/ScholarStream/scholarship_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
