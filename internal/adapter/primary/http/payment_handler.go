package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/bankportal/payment-portal/internal/core/validation"
	"github.com/bankportal/payment-portal/internal/port/input"
)

// PaymentHandler is a primary adapter (HTTP handler)
type PaymentHandler struct {
	paymentService input.PaymentService
	logger         *slog.Logger
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService input.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Amount accepts either a JSON number or a numeric string
type Amount string

// UnmarshalJSON keeps the literal text so the validator decides what is numeric
func (a *Amount) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	switch {
	case raw == "null":
		*a = ""
	case strings.HasPrefix(raw, `"`):
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		*a = Amount(raw)
	}
	return nil
}

// CreatePaymentRequest represents the HTTP request to create a payment
type CreatePaymentRequest struct {
	Amount           Amount `json:"amount"`
	Currency         string `json:"currency"`
	Provider         string `json:"provider"`
	RecipientAccount string `json:"recipient_account"`
	SwiftCode        string `json:"swift_code"`
	Reference        string `json:"reference"`
}

// UpdateStatusRequest represents the HTTP request to transition a payment
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// PaymentResponse represents the HTTP response for a payment
type PaymentResponse struct {
	ID               string     `json:"id"`
	OwnerID          string     `json:"owner_id"`
	Amount           string     `json:"amount"`
	Currency         string     `json:"currency"`
	Provider         string     `json:"provider"`
	RecipientAccount string     `json:"recipient_account"`
	SwiftCode        string     `json:"swift_code"`
	Reference        string     `json:"reference"`
	Status           string     `json:"status"`
	VerifiedBy       string     `json:"verified_by,omitempty"`
	VerifiedAt       string     `json:"verified_at,omitempty"`
	SubmittedAt      string     `json:"submitted_at,omitempty"`
	CreatedAt        string     `json:"created_at"`
	UpdatedAt        string     `json:"updated_at"`
	Owner            *OwnerInfo `json:"owner,omitempty"`
}

// OwnerInfo is the owner identity attached to staff listings
type OwnerInfo struct {
	FullName      string `json:"full_name"`
	AccountNumber string `json:"account_number"`
}

func toPaymentResponse(p *input.PaymentResponse) PaymentResponse {
	resp := PaymentResponse{
		ID:               p.ID.String(),
		OwnerID:          p.OwnerID.String(),
		Amount:           p.Amount.StringFixed(2),
		Currency:         string(p.Currency),
		Provider:         string(p.Provider),
		RecipientAccount: p.RecipientAccount,
		SwiftCode:        p.SwiftCode,
		Reference:        p.Reference,
		Status:           string(p.Status),
		VerifiedAt:       formatTime(p.VerifiedAt),
		SubmittedAt:      formatTime(p.SubmittedAt),
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        p.UpdatedAt.Format(time.RFC3339),
	}
	if p.VerifiedBy != nil {
		resp.VerifiedBy = p.VerifiedBy.String()
	}
	return resp
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// CreatePayment handles payment creation
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create payment")
	}

	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// Convert to service request
	serviceReq := input.CreatePaymentRequest{
		Amount:           string(req.Amount),
		Currency:         req.Currency,
		Provider:         validation.ProviderOrDefault(req.Provider),
		RecipientAccount: req.RecipientAccount,
		SwiftCode:        req.SwiftCode,
		Reference:        req.Reference,
	}

	// Call service (input port)
	response, err := h.paymentService.CreatePayment(c.Request().Context(), actor, serviceReq)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to create payment")
	}

	return c.JSON(http.StatusCreated, toPaymentResponse(response))
}

// GetPayment handles payment retrieval by ID
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to retrieve payment")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid payment ID")
	}

	response, err := h.paymentService.GetPayment(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to retrieve payment")
	}

	return c.JSON(http.StatusOK, toPaymentResponse(response))
}

// ListOwnPayments handles the customer's payment history
func (h *PaymentHandler) ListOwnPayments(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch payment history")
	}

	payments, err := h.paymentService.ListOwnPayments(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch payment history")
	}

	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, toPaymentResponse(&payments[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// ListAllPayments handles the staff listing across every customer
func (h *PaymentHandler) ListAllPayments(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch payments")
	}

	payments, err := h.paymentService.ListAllPayments(c.Request().Context(), actor)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch payments")
	}

	out := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		resp := toPaymentResponse(&payments[i].PaymentResponse)
		if owner := payments[i].Owner; owner != nil {
			resp.Owner = &OwnerInfo{FullName: owner.FullName, AccountNumber: owner.AccountNumber}
		}
		out = append(out, resp)
	}
	return c.JSON(http.StatusOK, out)
}

// UpdateStatus handles a manual status transition
func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update payment status")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid payment ID")
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	response, err := h.paymentService.UpdateStatus(c.Request().Context(), actor, input.UpdateStatusRequest{
		PaymentID: id,
		Status:    req.Status,
	})
	if err != nil {
		return writeError(c, h.logger, err, "Failed to update payment status")
	}

	return c.JSON(http.StatusOK, toPaymentResponse(response))
}

// PaymentEventResponse is one recorded step of a payment's audit trail
type PaymentEventResponse struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	ActorID    string `json:"actor_id"`
	FromStatus string `json:"from_status,omitempty"`
	ToStatus   string `json:"to_status"`
	OccurredAt string `json:"occurred_at"`
}

// ListPaymentEvents handles the staff view of a payment's audit trail
func (h *PaymentHandler) ListPaymentEvents(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch payment events")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(c, "Invalid payment ID")
	}

	events, err := h.paymentService.ListPaymentEvents(c.Request().Context(), actor, id)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch payment events")
	}

	out := make([]PaymentEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, PaymentEventResponse{
			ID:         e.ID.String(),
			Type:       string(e.Type),
			ActorID:    e.ActorID.String(),
			FromStatus: string(e.FromStatus),
			ToStatus:   string(e.ToStatus),
			OccurredAt: e.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, out)
}
