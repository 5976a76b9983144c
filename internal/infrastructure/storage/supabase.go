package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/m4lucen4/alquilandia-dashboard/internal/domain"
)

// Supabase sube objetos con la API REST de Supabase Storage.
// El bucket debe ser público para que la URL devuelta sea accesible.
type Supabase struct {
	baseURL    string
	serviceKey string
	bucket     string
	httpClient *http.Client
}

// NewSupabase baseURL es la URL del proyecto (https://xxxx.supabase.co).
func NewSupabase(baseURL, serviceKey, bucket string, timeout time.Duration) *Supabase {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Supabase{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		bucket:     bucket,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Put POST /storage/v1/object/{bucket}/{key} con x-upsert; devuelve la URL pública.
func (s *Supabase) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	objectPath := s.bucket + "/" + escapeKey(clean)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/storage/v1/object/"+objectPath, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("storage: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.serviceKey)
	req.Header.Set("apikey", s.serviceKey)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-upsert", "true")
	req.Header.Set("Cache-Control", "max-age=3600")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: storage: llamada HTTP fallida: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 16*1024))
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.Unmarshal(raw, &body) == nil {
			if body.Message != "" {
				msg = body.Message
			} else if body.Error != "" {
				msg = body.Error
			}
		}
		return "", fmt.Errorf("%w: storage: HTTP %d: %s", domain.ErrUpstream, resp.StatusCode, msg)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return s.baseURL + "/storage/v1/object/public/" + objectPath, nil
}
