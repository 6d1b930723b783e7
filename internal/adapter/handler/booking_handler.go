package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/okairos/servibook/internal/core/domain"
	"github.com/okairos/servibook/internal/core/services"
)

// BookingHandler is the thin HTTP surface over the engine. The core contract
// lives in the services; this layer only decodes requests and maps errors to
// status codes.
type BookingHandler struct {
	lifecycle *services.LifecycleService
	payment   *services.PaymentService
	scope     *services.ScopeService
	listing   *services.ListingService
}

func NewBookingHandler(lifecycle *services.LifecycleService, payment *services.PaymentService, scope *services.ScopeService, listing *services.ListingService) *BookingHandler {
	return &BookingHandler{lifecycle: lifecycle, payment: payment, scope: scope, listing: listing}
}

type statusChangeRequest struct {
	BookingID string `json:"booking_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

type bookingScopeRequest struct {
	BookingID string `json:"booking_id"`
	Scope     string `json:"scope"`
	DeletedBy string `json:"deleted_by,omitempty"`
}

type paymentRequest struct {
	BookingID string `json:"booking_id"`
	Method    string `json:"method,omitempty"`
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	result, err := h.listing.CombinedList(r.Context(), page, pageSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	json.NewEncoder(w).Encode(result)
}

func (h *BookingHandler) AvailableStatuses(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	current := domain.BookingStatus(r.URL.Query().Get("current"))
	json.NewEncoder(w).Encode(map[string]any{
		"statuses": domain.AvailableStatuses(current),
	})
}

func (h *BookingHandler) RequestStatusChange(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req statusChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	from := domain.BookingStatus(req.From)
	to := domain.BookingStatus(req.To)
	if err := h.lifecycle.RequestStatusChange(bookingID, from, to); err != nil {
		var invalid *domain.InvalidTransitionError
		if errors.As(err, &invalid) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	json.NewEncoder(w).Encode(map[string]string{
		"message": domain.TransitionMessage(from, to),
	})
}

func (h *BookingHandler) ConfirmStatusChange(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := h.lifecycle.ConfirmStatusChange(r.Context()); err != nil {
		if errors.Is(err, domain.ErrNoPendingChange) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadGateway, "status change failed and was rolled back")
		return
	}
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *BookingHandler) CancelStatusChange(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	h.lifecycle.CancelStatusChange()
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (h *BookingHandler) MarkAsPaid(w http.ResponseWriter, r *http.Request) {
	h.paymentOp(w, r, func(id uuid.UUID, req paymentRequest) (int64, error) {
		return h.payment.MarkAsPaid(r.Context(), id, req.Method)
	})
}

func (h *BookingHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	h.paymentOp(w, r, func(id uuid.UUID, _ paymentRequest) (int64, error) {
		return h.payment.VerifyPayment(r.Context(), id)
	})
}

func (h *BookingHandler) RefundPayment(w http.ResponseWriter, r *http.Request) {
	h.paymentOp(w, r, func(id uuid.UUID, _ paymentRequest) (int64, error) {
		return h.payment.MarkAsRefunded(r.Context(), id)
	})
}

func (h *BookingHandler) paymentOp(w http.ResponseWriter, r *http.Request, fn func(uuid.UUID, paymentRequest) (int64, error)) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	count, err := fn(bookingID, req)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) {
			writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "payment update failed")
		return
	}
	json.NewEncoder(w).Encode(map[string]int64{"count": count})
}

func (h *BookingHandler) ArchiveBookings(w http.ResponseWriter, r *http.Request) {
	h.scopeOp(w, r, func(id uuid.UUID, req bookingScopeRequest) (domain.BatchResult, error) {
		deletedBy, err := uuid.Parse(req.DeletedBy)
		if err != nil {
			return domain.BatchResult{}, errors.New("invalid deleted_by")
		}
		return h.scope.ArchiveScopeByID(r.Context(), id, domain.RecurringScope(req.Scope), deletedBy)
	})
}

func (h *BookingHandler) DeleteBookings(w http.ResponseWriter, r *http.Request) {
	h.scopeOp(w, r, func(id uuid.UUID, req bookingScopeRequest) (domain.BatchResult, error) {
		return h.scope.DeleteScopeByID(r.Context(), id, domain.RecurringScope(req.Scope))
	})
}

func (h *BookingHandler) scopeOp(w http.ResponseWriter, r *http.Request, fn func(uuid.UUID, bookingScopeRequest) (domain.BatchResult, error)) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req bookingScopeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	result, err := fn(bookingID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUngroupedScope), errors.Is(err, domain.ErrUnknownScope):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, domain.ErrBookingNotFound):
			writeError(w, http.StatusNotFound, "booking not found")
		default:
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	status := http.StatusOK
	if result.Succeeded < result.Requested {
		// Partial success is a warning, never reported as a clean 200.
		status = http.StatusMultiStatus
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"requested":  result.Requested,
		"succeeded":  result.Succeeded,
		"failed_ids": result.FailedIDs,
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
