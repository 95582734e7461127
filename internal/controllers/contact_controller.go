package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/etude-leroux/site-api/internal/dtos"
	"github.com/etude-leroux/site-api/internal/services"
	"github.com/etude-leroux/site-api/internal/utils"
)

type ContactController struct {
	svc     services.ContactService
	limiter services.RateLimiterService
}

func NewContactController(s services.ContactService, limiter services.RateLimiterService) *ContactController {
	return &ContactController{svc: s, limiter: limiter}
}

var validate = newValidator()

// newValidator reports fields by their json name so validation details
// match what the form actually posted.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// -----------------------------------------------------------------------------
// POST /api/contact
// -----------------------------------------------------------------------------
func (c *ContactController) SubmitContact(w http.ResponseWriter, r *http.Request) {
	clientIP := utils.GetClientIP(r)

	// The rate check runs on the address alone, before the body is even
	// parsed: a throttled client gets 429 whatever it sent.
	allowed, err := c.limiter.Allow(r.Context(), clientIP)
	if err != nil {
		// Ledger store failure (e.g. Redis down). Let the submission
		// through: availability of the form wins over precise limiting.
		utils.Logger.WithError(err).Warn("Rate limit check failed, allowing request")
	} else if !allowed {
		utils.Logger.Warnf("Contact rate limit exceeded (ip: %s)", clientIP)
		utils.RespondErrorWithCode(
			w, http.StatusTooManyRequests, utils.ErrCodeRateLimitExceeded,
			"Trop de demandes. Veuillez réessayer dans une minute.", nil,
		)
		return
	}

	var req dtos.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}

	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Certains champs sont invalides", fieldErrors(err), err,
		)
		return
	}

	if err := c.svc.Submit(r.Context(), req); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.ContactResponse{
		Success: true,
		Message: "Votre message a bien été envoyé. Nous vous répondrons dans les plus brefs délais.",
	})
}

// fieldErrors flattens validator output into a field → message map, so
// the form can surface every problem at once.
func fieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = messageForTag(fe)
	}
	return out
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Ce champ est requis"
	case "email":
		return "Adresse e-mail invalide"
	case "oneof":
		return "Valeur non reconnue"
	case "min":
		return fmt.Sprintf("Minimum %s caractères", fe.Param())
	case "max":
		return fmt.Sprintf("Maximum %s caractères", fe.Param())
	default:
		return "Champ invalide"
	}
}
