package common

import (
	"github.com/futig/rag-backend/internal/config"
	pkgHTTP "github.com/futig/rag-backend/pkg/http"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

const userAgent = "rag-backend"

func httpOptions(cfg config.HTTPClientConfig) []pkgHTTP.HttpOpts {
	return []pkgHTTP.HttpOpts{
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithTLSHandshakeTimeout(cfg.TLSHandshakeTimeout),
		pkgHTTP.WithMaxIdleConns(cfg.MaxIdleConns),
		pkgHTTP.WithMaxIdleConnsPerHost(cfg.MaxIdleConnsPerHost),
		pkgHTTP.WithUserAgent(userAgent),
		pkgHTTP.WithRequestLogging(),
	}
}

func NewBaseConnector(cfg config.HTTPClientConfig, logger *zap.Logger) *pkgHTTP.Connector {
	connCfg := &pkgHTTP.ConnectorConfig{
		Logger:  logger,
		BaseURL: cfg.Url,
	}

	opts := append(httpOptions(cfg), pkgHTTP.WithAuthToken(cfg.Token))

	return pkgHTTP.NewConnector(connCfg, opts...)
}

// NewOpenAIClient builds an OpenAI-compatible SDK client on top of the shared
// HTTP client stack. The SDK's own retries are disabled.
func NewOpenAIClient(cfg config.HTTPClientConfig) openai.Client {
	// the SDK streams through this client, so the overall timeout is left to ctx
	httpClient := pkgHTTP.NewClient(append(httpOptions(cfg), pkgHTTP.WithRequestTimeout(0))...)

	return openai.NewClient(
		option.WithBaseURL(cfg.Url),
		option.WithAPIKey(cfg.Token),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)
}
