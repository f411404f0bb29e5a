package funcs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"
)

var (
	randSource = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
	mu         sync.Mutex
)

// HTTPRequest выполняет запрос и отдает статус и тело ответа как есть.
// Статус не интерпретируется, это задача вызывающего.
func HTTPRequest(
	ctx context.Context,
	client *http.Client,
	method string,
	u string,
	body []byte,
	headers map[string]string,
) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, u, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json") // default

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to execute request: %w", err)
	}

	defer func() {
		if err = resp.Body.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close response body", slog.String("error", err.Error()))
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body) // cut data (once)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, bodyBytes, nil
}

func RandStrLimit(n int) string {
	mu.Lock()
	defer mu.Unlock()

	letters := []rune("abcdefghijklmnopqrstuvwxyz") // только нижний регистр
	lettersLen := len(letters)
	b := make([]rune, n)

	for i := range b {
		b[i] = letters[randSource.Intn(lettersLen)]
	}

	return string(b)
}

func RandStr() string {
	return RandStrLimit(10)
}
