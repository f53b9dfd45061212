// internal/service/dollar_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cyberwallet-api/internal/apperr"
	"cyberwallet-api/internal/domain"
	"cyberwallet-api/internal/repository"
)

const dollarRequestTimeout = 5 * time.Second

// DollarQuote is one upstream rate annotated with its movement since the
// last observation.
type DollarQuote struct {
	Name   string  `json:"nombre"`
	House  string  `json:"casa"`
	Buy    float64 `json:"compra"`
	Sell   float64 `json:"venta"`
	Change string  `json:"change"` // up, down or neutral
}

// DollarService defines the interface for the dollar quotation proxy.
type DollarService interface {
	Quotes(ctx context.Context) ([]DollarQuote, error)
}

// dollarService fetches rates from the upstream provider and diffs each sell
// price against the persisted baseline.
type dollarService struct {
	client     *http.Client
	baseURL    string
	dbExecutor repository.DBExecutor
	dollarRepo repository.DollarRateRepository
}

// NewDollarService creates a new instance of DollarService.
func NewDollarService(
	baseURL string,
	dbExecutor repository.DBExecutor,
	dollarRepo repository.DollarRateRepository,
) DollarService {
	return &dollarService{
		client:     &http.Client{Timeout: dollarRequestTimeout},
		baseURL:    baseURL,
		dbExecutor: dbExecutor,
		dollarRepo: dollarRepo,
	}
}

// Quotes returns the upstream rates with a change annotation per source. A
// never-seen source starts as neutral; the new sell price becomes the next
// baseline either way.
func (s *dollarService) Quotes(ctx context.Context) ([]DollarQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, dollarRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/v1/dolares", nil)
	if err != nil {
		return nil, fmt.Errorf("quotes: failed to build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeExternalServiceError, "No se pudo obtener la cotización del dólar.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Newf(apperr.CodeExternalServiceError, "El proveedor de cotizaciones respondió %d.", resp.StatusCode)
	}

	var quotes []DollarQuote
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return nil, apperr.Wrap(apperr.CodeExternalServiceError, "Respuesta de cotizaciones inválida.", err)
	}

	for i := range quotes {
		quotes[i].Change = s.annotate(ctx, &quotes[i])
	}
	return quotes, nil
}

func (s *dollarService) annotate(ctx context.Context, quote *DollarQuote) string {
	previous, err := s.dollarRepo.GetDollarRate(ctx, s.dbExecutor, quote.Name)
	if err != nil {
		return "neutral"
	}

	change := "neutral"
	if previous != nil {
		switch {
		case quote.Sell > previous.LastSell:
			change = "up"
		case quote.Sell < previous.LastSell:
			change = "down"
		}
	}

	_ = s.dollarRepo.UpsertDollarRate(ctx, s.dbExecutor, &domain.DollarRate{
		Source:   quote.Name,
		LastSell: quote.Sell,
	})
	return change
}
