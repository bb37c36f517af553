package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/city-fighting/internal/pkg/errors"
	"go.uber.org/zap"
)

// maxErrorBody - сколько байт тела ответа с ошибкой попадает в лог
const maxErrorBody = 512

// Client - общий JSON-клиент для внешних API. Любая сетевая ошибка, не-200
// и битый JSON возвращаются обернутыми в ErrSourceUnavailable.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	source     string
	logger     *zap.Logger
}

func New(source, baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		source:     source,
		logger:     logger.With(zap.String("source", source)),
	}
}

func (c *Client) Source() string {
	return c.source
}

// HasToken - задан ли токен для API, требующего авторизации
func (c *Client) HasToken() bool {
	return strings.TrimSpace(c.token) != ""
}

// URL собирает адрес запроса относительно baseURL
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// GetJSON выполняет GET и декодирует ответ в out
func (c *Client) GetJSON(ctx context.Context, rawURL string, out interface{}) error {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Warn("Failed to decode response", zap.Error(err))
		return errors.Wrap(errors.ErrSourceUnavailable, fmt.Errorf("%s: failed to decode response: %w", c.source, err))
	}
	return nil
}

// Get выполняет GET и возвращает тело ответа со статусом 200
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	c.logger.Debug("Calling external API", zap.String("url", rawURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrSourceUnavailable, fmt.Errorf("%s: failed to create request: %w", c.source, err))
	}
	req.Header.Set("Accept", "application/json")
	if c.HasToken() {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrSourceUnavailable, fmt.Errorf("%s: failed to execute request: %w", c.source, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Warn("External API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, errors.Wrap(errors.ErrSourceUnavailable, fmt.Errorf("%s: status %d", c.source, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(errors.ErrSourceUnavailable, fmt.Errorf("%s: failed to read response: %w", c.source, err))
	}

	c.logger.Debug("External API call successful",
		zap.Int("bytes", len(body)),
		zap.Duration("took", time.Since(start)))

	return body, nil
}
