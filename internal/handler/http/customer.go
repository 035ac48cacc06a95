package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/careroster/roster-backend/internal/domain/customer"
	"github.com/careroster/roster-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CustomerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type customerHandlerImpl struct {
	customerService customer.CustomerService
}

func NewCustomerHandler(customerService customer.CustomerService) CustomerHandler {
	return &customerHandlerImpl{customerService: customerService}
}

func (h *customerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := customer.CustomerFilter{
		Search: getStringQueryParam(r, "q"),
		Page:   getIntQueryParam(r, "page", 1),
		Limit:  getIntQueryParam(r, "limit", 20),
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.customerService.ListCustomers(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *customerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.customerService.GetCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *customerHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req customer.UpsertCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCustomer decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.customerService.CreateCustomer(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Customer created successfully", result)
}

func (h *customerHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req customer.UpsertCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateCustomer decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.customerService.UpdateCustomer(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer updated successfully", result)
}

func (h *customerHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.customerService.DeleteCustomer(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Customer deleted successfully", nil)
}
