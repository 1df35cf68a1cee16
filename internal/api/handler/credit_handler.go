package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"credit-application-system/internal/api/handler/dto"
	"credit-application-system/internal/domain/credit"
	"credit-application-system/internal/pkg/apperrors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CreditHandler struct {
	service credit.CreditService
	logger  *slog.Logger
}

func NewCreditHandler(s credit.CreditService, l *slog.Logger) *CreditHandler {
	if s == nil {
		panic("credit service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CreditHandler{
		service: s,
		logger:  l.With("component", "CreditHandler"),
	}
}

// IssueCredit handles POST /api/credits
// @Summary Issue a credit
// @Description Issues a credit for an existing customer. The first installment must fall within three months.
// @Tags Credits
// @Accept json
// @Produce json
// @Param request body dto.CreditRequest true "Credit request payload"
// @Success 201 {object} dto.CreditView "Credit issued"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or business rule violation"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/credits [post]
// @Security BearerAuth
func (h *CreditHandler) IssueCredit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditRequest
	if !readBody(w, r, &req, h.logger) {
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Validation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}

	entity, err := req.ToEntity()
	if err != nil {
		respondError(w, err)
		return
	}

	saved, err := h.service.Save(r.Context(), entity)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to issue credit", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "Credit issued",
		slog.String("creditCode", saved.CreditCode.String()),
		slog.Int64("customerID", saved.CustomerID()),
	)
	respondJSON(w, http.StatusCreated, dto.NewCreditView(saved))
}

// ListCredits handles GET /api/credits?customerId={id}
// @Summary List a customer's credits
// @Tags Credits
// @Produce json
// @Param customerId query int true "Customer ID" Minimum(1)
// @Success 200 {array} dto.CreditListView "Credits of the customer, possibly empty"
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid customerId"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/credits [get]
// @Security BearerAuth
func (h *CreditHandler) ListCredits(w http.ResponseWriter, r *http.Request) {
	customerID, err := int64QueryParam(r, "customerId")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid customerId query parameter", slog.Any("error", err))
		respondError(w, err)
		return
	}

	credits, err := h.service.FindAllByCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to list credits", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCreditListView(credits))
}

// GetCredit handles GET /api/credits/{creditCode}?customerId={id}
// @Summary Retrieve a credit by code
// @Description Returns the credit only when it belongs to the given customer.
// @Tags Credits
// @Produce json
// @Param creditCode path string true "Credit code (UUID)"
// @Param customerId query int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CreditView "Credit details"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters or unknown credit code"
// @Failure 403 {object} dto.ErrorResponse "Credit belongs to another customer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/credits/{creditCode} [get]
// @Security BearerAuth
func (h *CreditHandler) GetCredit(w http.ResponseWriter, r *http.Request) {
	rawCode := chi.URLParam(r, "creditCode")
	code, err := uuid.Parse(rawCode)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid credit code in URL", slog.String("creditCode", rawCode))
		respondError(w, fmt.Errorf("%w: invalid creditCode format: %s", apperrors.ErrInvalidArgument, rawCode))
		return
	}
	customerID, err := int64QueryParam(r, "customerId")
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid customerId query parameter", slog.Any("error", err))
		respondError(w, err)
		return
	}

	found, err := h.service.FindByCreditCode(r.Context(), customerID, code)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get credit", slog.Any("error", err))
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.NewCreditView(found))
}
