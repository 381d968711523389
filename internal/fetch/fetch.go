// Package fetch — сетевой примитив пайплайна: GET по URL с жёстким
// таймаутом и фиксированным набором заголовков.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout — жёсткий предел на один запрос. Источник, не успевший
// ответить, считается отказавшим только он сам, а не весь прогон.
const DefaultTimeout = 12 * time.Second

const userAgent = "info-teacher-radar/1.0 (+https://github.com/rixia6254/info-teacher-radar)"

// Client выполняет ограниченные по времени GET-запросы.
type Client struct {
	http    *http.Client
	timeout time.Duration
}

// New создаёт клиент с заданным таймаутом (0 — DefaultTimeout).
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Text загружает URL и возвращает тело ответа как текст.
// Не-2xx статус, сетевая ошибка и таймаут равнозначны: все три — отказ.
func (c *Client) Text(ctx context.Context, rawURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, text/html;q=0.9, */*;q=0.8")
	req.Header.Set("Accept-Language", "ja,en;q=0.7")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}
