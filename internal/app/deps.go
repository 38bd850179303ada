package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go/v3"

	"data-agent/internal/client"
	"data-agent/internal/config"
	"data-agent/internal/llm"
	"data-agent/internal/logger"
	"data-agent/internal/store"
)

// ClientDeps bundles what the terminal and web clients need.
type ClientDeps struct {
	Config config.Config
	Log    *slog.Logger
	Client *client.Client
}

// ServiceDeps bundles what the answer service needs.
type ServiceDeps struct {
	Config     config.Config
	Log        *slog.Logger
	Store      store.Store
	Translator llm.Translator
}

// loadConfig reads an optional .env file and then the environment.
func loadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config.Config{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return config.Load(), nil
}

// BuildClient loads config and creates the query client. apiURL, when
// non-empty, overrides API_URL. Logs go to logOut.
func BuildClient(logOut io.Writer, apiURL string) (ClientDeps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return ClientDeps{}, err
	}
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	log := logger.NewTo(logOut, cfg.LogLevel)
	log.Debug("using answer service", "url", cfg.APIURL)
	return ClientDeps{
		Config: cfg,
		Log:    log,
		Client: client.New(cfg.APIURL, log),
	}, nil
}

// BuildService loads config and connects the store and translator.
func BuildService() (ServiceDeps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return ServiceDeps{}, err
	}
	log := logger.New(cfg.LogLevel)

	st, err := buildStore(cfg, log)
	if err != nil {
		return ServiceDeps{}, fmt.Errorf("failed to initialize store: %w", err)
	}
	tr, err := buildTranslator(cfg, log)
	if err != nil {
		return ServiceDeps{}, fmt.Errorf("failed to initialize translator: %w", err)
	}
	return ServiceDeps{
		Config:     cfg,
		Log:        log,
		Store:      st,
		Translator: tr,
	}, nil
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	if cfg.DBURL == "" {
		return nil, fmt.Errorf("DB_URL is required")
	}
	db, err := store.NewPostgres(cfg.DBURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
	}
	log.Info("using Postgres store")
	return db, nil
}

func buildTranslator(cfg config.Config, log *slog.Logger) (llm.Translator, error) {
	switch cfg.LLMProvider {
	case "demo":
		log.Info("using demo translator")
		return llm.Demo{}, nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
		tr, err := llm.NewOpenAIClient(cfg.OpenAIKey, openai.ChatModel(cfg.LLMModel))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		log.Info("using OpenAI translator", "model", cfg.LLMModel)
		return tr, nil
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER: %s (valid options: demo, openai)", cfg.LLMProvider)
	}
}

// LoaderDeps bundles what the CSV loader needs.
type LoaderDeps struct {
	Config config.Config
	Log    *slog.Logger
	Loader *store.Loader
}

// BuildLoader loads config and connects the table loader.
func BuildLoader() (LoaderDeps, error) {
	cfg, err := loadConfig()
	if err != nil {
		return LoaderDeps{}, err
	}
	log := logger.New(cfg.LogLevel)
	if cfg.DBURL == "" {
		return LoaderDeps{}, fmt.Errorf("DB_URL is required")
	}
	l, err := store.NewLoader(cfg.DBURL)
	if err != nil {
		return LoaderDeps{}, fmt.Errorf("failed to initialize loader: %w", err)
	}
	return LoaderDeps{Config: cfg, Log: log, Loader: l}, nil
}
