package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/etude-leroux/site-api/internal/config"
	"github.com/etude-leroux/site-api/internal/dtos"
	"github.com/etude-leroux/site-api/internal/utils"
)

// Outbound webhook calls get an explicit deadline; a stuck automation
// endpoint must not pin request handlers.
const webhookTimeout = 10 * time.Second

// ContactService forwards validated contact submissions to the
// configured automation webhook. Nothing is stored locally: the payload
// is stamped, shipped and discarded.
type ContactService interface {
	Submit(ctx context.Context, req dtos.ContactRequest) error
}

type contactService struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewContactService(cfg *config.Config) ContactService {
	return &contactService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: webhookTimeout,
		},
	}
}

func (s *contactService) Submit(ctx context.Context, req dtos.ContactRequest) error {
	//-----------------------------------------------------------------
	// 1) Webhook must be configured
	//-----------------------------------------------------------------
	if s.cfg.ContactWebhookURL == "" {
		return &utils.AppError{
			StatusCode: http.StatusInternalServerError,
			Code:       utils.ErrCodeInternal,
			Message:    "Le service de contact est temporairement indisponible.",
			Err:        utils.ErrWebhookNotConfigured,
		}
	}

	//-----------------------------------------------------------------
	// 2) Forward with a server-side timestamp
	//-----------------------------------------------------------------
	payload := dtos.ContactWebhookPayload{
		ContactRequest: req,
		Date:           time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.ContactWebhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return &utils.AppError{
			StatusCode: http.StatusBadGateway,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "L'envoi de votre message a échoué. Veuillez réessayer.",
			Err:        err,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &utils.AppError{
			StatusCode: http.StatusBadGateway,
			Code:       utils.ErrCodeExternalServiceFailure,
			Message:    "L'envoi de votre message a échoué. Veuillez réessayer.",
			Err:        fmt.Errorf("webhook returned status %d", resp.StatusCode),
		}
	}

	utils.Logger.Infof("Contact submission forwarded (objet: %s)", req.Objet)
	return nil
}
