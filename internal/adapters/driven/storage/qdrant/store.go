// Package qdrant provides a driven.VectorStore backed by a Qdrant server,
// reached through its REST API.
//
// Qdrant only accepts unsigned integers or UUIDs as point ids, so the
// 32-character hex ids produced by domain.PointID are sent in canonical UUID
// form and converted back when results are read.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/docvec/internal/core/domain"
	"github.com/custodia-labs/docvec/internal/core/ports/driven"
	"github.com/custodia-labs/docvec/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Default configuration values.
const (
	DefaultURL     = "http://localhost:6333"
	DefaultTimeout = 15 * time.Second
)

// Config holds connection details for a Qdrant server.
type Config struct {
	// URL is the REST endpoint (default: http://localhost:6333).
	URL string

	// APIKey is sent in the api-key header when set (Qdrant Cloud).
	APIKey string

	// Timeout is the per-request timeout (default: 15s).
	Timeout time.Duration
}

// Store is a minimal REST client for Qdrant.
type Store struct {
	url    string
	apiKey string
	client *http.Client
}

// NewStore creates a Qdrant store. No request is made until first use.
func NewStore(cfg Config) *Store {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Store{
		url:    strings.TrimRight(cfg.URL, "/"),
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type vectorParams struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

type collectionInfo struct {
	PointsCount int `json:"points_count"`
	Config      struct {
		Params struct {
			Vectors vectorParams `json:"vectors"`
		} `json:"params"`
	} `json:"config"`
}

type qdrantPoint struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload domain.Payload `json:"payload"`
}

type scoredPoint struct {
	ID      json.RawMessage `json:"id"`
	Score   float64         `json:"score"`
	Payload domain.Payload  `json:"payload"`
}

type scrollPage struct {
	Points []struct {
		ID      json.RawMessage `json:"id"`
		Payload struct {
			Title string `json:"title"`
		} `json:"payload"`
	} `json:"points"`
	NextPageOffset json.RawMessage `json:"next_page_offset"`
}

// scrollPageSize bounds each scroll request made by DeleteByTitle.
const scrollPageSize = 256

// ListCollections returns the names of all collections.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	var result struct {
		Collections []struct {
			Name string `json:"name"`
		} `json:"collections"`
	}
	if err := s.do(ctx, http.MethodGet, "/collections", nil, &result); err != nil {
		return nil, err
	}
	names := make([]string, len(result.Collections))
	for i, c := range result.Collections {
		names[i] = c.Name
	}
	return names, nil
}

// GetCollection returns the vector size and distance of a collection.
func (s *Store) GetCollection(ctx context.Context, name string) (*domain.Collection, error) {
	info, err := s.info(ctx, name)
	if err != nil {
		return nil, err
	}
	return &domain.Collection{
		Name:      name,
		Dimension: info.Config.Params.Vectors.Size,
		Distance:  domain.Distance(info.Config.Params.Vectors.Distance),
	}, nil
}

func (s *Store) info(ctx context.Context, name string) (*collectionInfo, error) {
	var info collectionInfo
	if err := s.do(ctx, http.MethodGet, collectionPath(name, ""), nil, &info); err != nil {
		return nil, s.notFound(name, err)
	}
	return &info, nil
}

// CreateCollection creates a collection with the given size and distance.
func (s *Store) CreateCollection(ctx context.Context, c domain.Collection) error {
	distance := c.Distance
	if distance == "" {
		distance = domain.DistanceCosine
	}
	body := map[string]any{
		"vectors": vectorParams{Size: c.Dimension, Distance: string(distance)},
	}
	logger.Debug("qdrant: creating collection %s (size=%d, distance=%s)", c.Name, c.Dimension, distance)
	return s.do(ctx, http.MethodPut, collectionPath(c.Name, ""), body, nil)
}

// DeleteCollection drops a collection.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	if err := s.do(ctx, http.MethodDelete, collectionPath(name, ""), nil, nil); err != nil {
		return s.notFound(name, err)
	}
	return nil
}

// Upsert writes points and waits for them to be applied.
func (s *Store) Upsert(ctx context.Context, collection string, points []domain.Point) error {
	if len(points) == 0 {
		return nil
	}
	out := make([]qdrantPoint, len(points))
	for i, p := range points {
		id, err := toUUID(p.ID)
		if err != nil {
			return err
		}
		out[i] = qdrantPoint{ID: id, Vector: p.Vector, Payload: p.Payload}
	}
	body := map[string]any{"points": out}
	if err := s.do(ctx, http.MethodPut, collectionPath(collection, "/points?wait=true"), body, nil); err != nil {
		return s.notFound(collection, err)
	}
	return nil
}

// Search returns the closest points with their payloads.
func (s *Store) Search(ctx context.Context, collection string, vector []float32, limit int) ([]domain.ScoredPoint, error) {
	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var result []scoredPoint
	if err := s.do(ctx, http.MethodPost, collectionPath(collection, "/points/search"), body, &result); err != nil {
		return nil, s.notFound(collection, err)
	}

	hits := make([]domain.ScoredPoint, len(result))
	for i, r := range result {
		hits[i] = domain.ScoredPoint{
			ID:      fromWireID(r.ID),
			Payload: r.Payload,
			Score:   r.Score,
		}
	}
	return hits, nil
}

// DeletePoints removes points by id.
func (s *Store) DeletePoints(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	wire := make([]string, len(ids))
	for i, id := range ids {
		u, err := toUUID(id)
		if err != nil {
			return err
		}
		wire[i] = u
	}
	body := map[string]any{"points": wire}
	if err := s.do(ctx, http.MethodPost, collectionPath(collection, "/points/delete?wait=true"), body, nil); err != nil {
		return s.notFound(collection, err)
	}
	return nil
}

// DeleteByTitle removes every point whose payload title matches title
// ignoring case. Qdrant keyword matches are exact, so titles are scrolled
// and compared client-side before the stale ids are deleted.
func (s *Store) DeleteByTitle(ctx context.Context, collection, title string, keep []string) error {
	kept := make(map[string]bool, len(keep))
	for _, id := range keep {
		kept[id] = true
	}

	var stale []string
	var offset json.RawMessage
	for {
		body := map[string]any{
			"limit":        scrollPageSize,
			"with_payload": map[string]any{"include": []string{"title"}},
			"with_vector":  false,
		}
		if len(offset) > 0 {
			body["offset"] = offset
		}
		var page scrollPage
		if err := s.do(ctx, http.MethodPost, collectionPath(collection, "/points/scroll"), body, &page); err != nil {
			return s.notFound(collection, err)
		}
		for _, p := range page.Points {
			id := fromWireID(p.ID)
			// Integer ids were not written by this store.
			if _, err := uuid.Parse(id); err != nil {
				continue
			}
			if strings.EqualFold(p.Payload.Title, title) && !kept[id] {
				stale = append(stale, id)
			}
		}
		if len(page.NextPageOffset) == 0 || string(page.NextPageOffset) == "null" {
			break
		}
		offset = page.NextPageOffset
	}

	if len(stale) == 0 {
		return nil
	}
	logger.Debug("qdrant: pruning %d point(s) of %q from %s", len(stale), title, collection)
	return s.DeletePoints(ctx, collection, stale)
}

// Count returns the approximate number of points.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	var result struct {
		Count int `json:"count"`
	}
	body := map[string]any{"exact": false}
	if err := s.do(ctx, http.MethodPost, collectionPath(collection, "/points/count"), body, &result); err != nil {
		return 0, s.notFound(collection, err)
	}
	return result.Count, nil
}

// Close releases idle connections.
func (s *Store) Close() error {
	s.client.CloseIdleConnections()
	return nil
}

// statusError is a non-2xx response.
type statusError struct {
	method string
	path   string
	code   int
	msg    string
}

func (e *statusError) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("qdrant %s %s: status %d", e.method, e.path, e.code)
	}
	return fmt.Sprintf("qdrant %s %s: status %d: %s", e.method, e.path, e.code, e.msg)
}

// notFound maps a 404 to domain.ErrCollectionNotFound.
func (s *Store) notFound(name string, err error) error {
	var se *statusError
	if errors.As(err, &se) && se.code == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
	}
	return err
}

// do sends a JSON request and decodes the "result" field of the response into out.
func (s *Store) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("qdrant: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.url+path, reader)
	if err != nil {
		return fmt.Errorf("qdrant: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var envelope struct {
			Status struct {
				Error string `json:"error"`
			} `json:"status"`
		}
		raw, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(raw))
		if json.Unmarshal(raw, &envelope) == nil && envelope.Status.Error != "" {
			msg = envelope.Status.Error
		}
		return &statusError{method: method, path: path, code: resp.StatusCode, msg: msg}
	}

	if out == nil {
		return nil
	}
	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("qdrant: decode response: %w", err)
	}
	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("qdrant: decode result: %w", err)
	}
	return nil
}

func collectionPath(name, suffix string) string {
	return "/collections/" + url.PathEscape(name) + suffix
}

// toUUID renders a 32-character hex id as a canonical UUID.
// Ids already in UUID form pass through.
func toUUID(id string) (string, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: point id %q is not a 128-bit hex id", domain.ErrInvalidInput, id)
	}
	return u.String(), nil
}

// fromWireID converts a Qdrant id back to the 32-character form.
// Integer ids written by other tools are returned as their decimal text.
func fromWireID(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if u, err := uuid.Parse(s); err == nil {
			return strings.ReplaceAll(u.String(), "-", "")
		}
		return s
	}
	return strings.TrimSpace(string(raw))
}
