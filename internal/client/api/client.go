// Package api реализует хранилище журнала документов поверх HTTP API сервера.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/inkboard/internal/client/sync"
	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/pkg/api"
)

// ErrDocumentNotFound сервер не знает документа
var ErrDocumentNotFound = errors.New("document not found")

var _ sync.Persistence = (*Client)(nil)

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				return nil
			},
		},
	}
}

// BaseURL адрес сервера
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateDocument создаёт документ и возвращает его id
func (c *Client) CreateDocument(ctx context.Context, title string) (string, error) {
	var resp api.DocumentResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/v1/documents", api.CreateDocumentRequest{Title: title}, &resp)
	if err != nil {
		return "", fmt.Errorf("create document request failed: %w", err)
	}
	return resp.ID, nil
}

// LoadDocument получает последний снапшот и события после него
func (c *Client) LoadDocument(ctx context.Context, documentID string) (*models.LoadedDocument, error) {
	var resp api.LoadDocumentResponse
	if err := c.doRequest(ctx, http.MethodGet, documentPath(documentID), nil, &resp); err != nil {
		return nil, fmt.Errorf("load document request failed: %w", err)
	}

	loaded := &models.LoadedDocument{
		Info:   infoFromResponse(resp.Document),
		Events: eventsFromWire(resp.Events),
	}
	if resp.Snapshot != nil {
		snap, err := snapshotFromWire(*resp.Snapshot)
		if err != nil {
			return nil, fmt.Errorf("invalid snapshot: %w", err)
		}
		loaded.Snapshot = &snap
	}
	return loaded, nil
}

// AppendEvents отправляет пакет событий
func (c *Client) AppendEvents(ctx context.Context, documentID string, events []models.Event) error {
	req := api.AppendEventsRequest{Events: eventsToWire(events)}
	var resp api.AppendEventsResponse
	if err := c.doRequest(ctx, http.MethodPost, documentPath(documentID)+"/events", req, &resp); err != nil {
		return fmt.Errorf("append events request failed: %w", err)
	}
	return nil
}

// WriteSnapshot сохраняет снапшот документа
func (c *Client) WriteSnapshot(ctx context.Context, documentID string, snapshot models.Snapshot) error {
	req, err := snapshotToWire(snapshot)
	if err != nil {
		return err
	}
	if err := c.doRequest(ctx, http.MethodPost, documentPath(documentID)+"/snapshots", req, nil); err != nil {
		return fmt.Errorf("write snapshot request failed: %w", err)
	}
	return nil
}

// UpdateDocumentMetadata меняет метаданные документа
func (c *Client) UpdateDocumentMetadata(ctx context.Context, documentID string, meta models.Metadata) error {
	req := api.UpdateDocumentRequest{Title: meta.Title}
	if err := c.doRequest(ctx, http.MethodPatch, documentPath(documentID), req, nil); err != nil {
		return fmt.Errorf("update document request failed: %w", err)
	}
	return nil
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

func documentPath(documentID string) string {
	return "/api/v1/documents/" + url.PathEscape(documentID)
}

// doRequest выполняет HTTP запрос
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	fullURL := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := string(respBody)
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			message = errResp.Error
			if errResp.Message != "" {
				message = errResp.Message
			}
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, message)
		}
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, message)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
