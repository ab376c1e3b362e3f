// Package leadclient lead formalarini tashqi endpointga POST qiladi.
package leadclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yourusername/caviar-shop/internal/domain/entity"
	"github.com/yourusername/caviar-shop/internal/domain/repository"
	"go.uber.org/zap"
)

// StatusError endpoint 2xx bo'lmagan javob qaytardi
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lead endpoint responded with status %d", e.StatusCode)
}

type httpLeadSender struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// NewHTTPLeadSender yangi HTTP lead yuboruvchi yaratish
func NewHTTPLeadSender(endpoint string, timeout time.Duration, logger *zap.Logger) repository.LeadSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &httpLeadSender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Submit leadni JSON ko'rinishida yuborish. Javob tanasi o'qilmaydi, faqat status.
func (s *httpLeadSender) Submit(ctx context.Context, lead entity.Lead) error {
	body, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("failed to encode lead: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send lead: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	s.logger.Debug("lead posted",
		zap.String("type", string(lead.Type)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}
	return nil
}
