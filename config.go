package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

//Config represents options given in the environment
type Config struct {
	ListenAddr string //addr format used for net.Dial; required
	Prefix     string //url prefix to mount api to without trailing slash; default: /api

	AIProvider   string //openai, gemini, or local; default: local
	AIEndpoint   string //chat completions URL; required for openai
	AIModel      string //required for openai
	AIAPIKey     string //optional bearer token for openai
	GeminiModel  string //default: gemini-2.0-flash
	GeminiAPIKey string //if empty, read by the genai client from GEMINI_API_KEY or GOOGLE_API_KEY

	FixtureFile string //.json, .yaml, or .yml fixture file
	SQLDriver   string //mysql or sqlite; fixtures are read from SQL if set
	SQLDSN      string

	FlowTimeout      time.Duration //default: 60s
	MaxToolRounds    int           //default: 5
	BriefingCacheTTL time.Duration //0 disables the briefing cache
	SimulateLatency  bool
	SensorInterval   time.Duration //default: 2s
	APIKeyHash       string        //bcrypt hash; if set, flow endpoints require X-API-Key
}

var config = &Config{}

func checkEmpty(val, name string) {
	if val == "" {
		log.Fatalf("PDM_%s must be configured\n", name)
	}
}

func init() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalln("Error reading .env file:", err)
	}

	err := envconfig.Process("PDM", config)
	if err != nil {
		log.Fatalln("Error reading configuration from environment:", err)
	}

	if config.Prefix == "" {
		config.Prefix = "/api"
	}
	config.Prefix = strings.TrimSuffix(config.Prefix, "/")

	if config.AIProvider == "" {
		config.AIProvider = "local"
	}
	if config.FlowTimeout == 0 {
		config.FlowTimeout = 60 * time.Second
	}
	if config.MaxToolRounds == 0 {
		config.MaxToolRounds = 5
	}
	if config.SensorInterval == 0 {
		config.SensorInterval = 2 * time.Second
	}

	switch config.AIProvider {
	case "openai":
		checkEmpty(config.AIEndpoint, "AIENDPOINT")
		checkEmpty(config.AIModel, "AIMODEL")
	case "gemini", "local":
	default:
		log.Fatalf("PDM_AIPROVIDER must be openai, gemini, or local, got %q\n", config.AIProvider)
	}

	if config.FixtureFile != "" && config.SQLDriver != "" {
		log.Fatalln("Only one of PDM_FIXTUREFILE and PDM_SQLDRIVER can be configured")
	}
	if config.SQLDriver != "" {
		checkEmpty(config.SQLDSN, "SQLDSN")
	}

	checkEmpty(config.ListenAddr, "LISTENADDR")
}
