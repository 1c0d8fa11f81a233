package es

import (
	"io"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/hairlyf/backend/internal/config"
)

// NewClient connects to elasticsearch. Returns nil without error when no
// ES_URL is configured; product search then falls back to the database.
func NewClient(cfg *config.Config, l *slog.Logger) (*elasticsearch.Client, error) {
	if cfg.ES_URL == "" {
		l.Info("elasticsearch disabled, no ES_URL configured")
		return nil, nil
	}

	esCfg := elasticsearch.Config{
		Addresses: []string{cfg.ES_URL},
		Username:  cfg.ES_USER,
		Password:  cfg.ES_PASSWORD,
	}

	client, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, err
	}

	res, err := client.Info()
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		l.Error("elasticsearch info failed", "status", res.Status(), "body", string(body))
		return nil, errFromStatus(res.Status())
	}

	l.Info("connected to elasticsearch", "url", cfg.ES_URL)
	return client, nil
}

type statusError string

func (e statusError) Error() string { return "elasticsearch error: " + string(e) }

func errFromStatus(status string) error { return statusError(status) }
