package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/handlers"
	"github.com/korylprince/proactiveshield-server/api"
	"github.com/korylprince/proactiveshield-server/chatbot"
	"github.com/korylprince/proactiveshield-server/httpapi"
	_ "modernc.org/sqlite"
)

func loadFixtures(ctx context.Context) (*api.Fixtures, error) {
	switch {
	case config.FixtureFile != "":
		log.Println("Loading fixtures from:", config.FixtureFile)
		return api.LoadFixtureFile(config.FixtureFile)
	case config.SQLDriver != "":
		log.Println("Loading fixtures from database:", config.SQLDriver)
		db, err := sql.Open(config.SQLDriver, config.SQLDSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return api.LoadFixturesSQL(ctx, db)
	}
	log.Println("Using built-in fixtures")
	return api.DefaultFixtures(), nil
}

func newModel(ctx context.Context) (chatbot.Model, error) {
	switch config.AIProvider {
	case "openai":
		log.Printf("Using OpenAI-compatible model %s at %s", config.AIModel, config.AIEndpoint)
		return chatbot.NewAIClient(config.AIEndpoint, config.AIModel, config.AIAPIKey, config.MaxToolRounds), nil
	case "gemini":
		m, err := chatbot.NewGeminiModel(ctx, config.GeminiAPIKey, config.GeminiModel, config.MaxToolRounds)
		if err != nil {
			return nil, err
		}
		log.Println("Using model", m.Name())
		return m, nil
	}
	log.Println("Using offline local model")
	return chatbot.NewLocalModel(), nil
}

func main() {
	ctx := context.Background()

	fixtures, err := loadFixtures(ctx)
	if err != nil {
		log.Fatalln("Could not load fixtures:", err)
	}

	store, err := api.NewStore(fixtures)
	if err != nil {
		log.Fatalln("Could not create store:", err)
	}
	for _, a := range store.Orphans() {
		log.Printf("Warning: alert %s references unknown equipment %s", a.ID, a.EquipmentID)
	}

	model, err := newModel(ctx)
	if err != nil {
		log.Fatalln("Could not create model:", err)
	}

	opts := []chatbot.FlowOption{chatbot.WithTimeout(config.FlowTimeout)}
	if config.BriefingCacheTTL > 0 {
		opts = append(opts, chatbot.WithBriefingCache(chatbot.NewBriefingCache(config.BriefingCacheTTL)))
	}
	flows := chatbot.NewFlows(model, chatbot.NewTools(store), opts...)

	r := httpapi.NewRouter(os.Stdout, &httpapi.Options{
		Prefix:          config.Prefix,
		Store:           store,
		Flows:           flows,
		SensorInterval:  config.SensorInterval,
		SimulateLatency: config.SimulateLatency,
		APIKeyHash:      []byte(config.APIKeyHash),
	})

	chain := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(
		handlers.CORS(
			handlers.AllowedOrigins([]string{"*"}),
			handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", httpapi.APIKeyHeader}),
			handlers.ExposedHeaders([]string{httpapi.RequestIDHeader}),
		)(handlers.CompressHandler(r)),
	)

	log.Println("Listening on:", config.ListenAddr)
	log.Println(http.ListenAndServe(config.ListenAddr, chain))
}
