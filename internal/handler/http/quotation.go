package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/quotation"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/handler/http/response"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/pkg/pdf"
	quotationservice "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/quotation"
)

type QuotationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Send(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	ConvertToInvoice(w http.ResponseWriter, r *http.Request)
	MarkInvoicePaid(w http.ResponseWriter, r *http.Request)
	DownloadPDF(w http.ResponseWriter, r *http.Request)
	DownloadInvoicePDF(w http.ResponseWriter, r *http.Request)
}

type QuotationHandlerImpl struct {
	quotationService *quotationservice.QuotationService
}

func NewQuotationHandler(s *quotationservice.QuotationService) QuotationHandler {
	return &QuotationHandlerImpl{quotationService: s}
}

func (h *QuotationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req quotation.CreateQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	created, err := h.quotationService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Quotation created", created)
}

func (h *QuotationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *quotation.QuotationStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := quotation.QuotationStatus(raw)
		status = &s
	}

	quotations, err := h.quotationService.List(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, quotations)
}

func (h *QuotationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	q, err := h.quotationService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, q)
}

func (h *QuotationHandlerImpl) Send(w http.ResponseWriter, r *http.Request) {
	q, err := h.quotationService.Send(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Quotation sent", q)
}

func (h *QuotationHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	q, err := h.quotationService.Accept(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Quotation accepted", q)
}

func (h *QuotationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	q, err := h.quotationService.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Quotation rejected", q)
}

func (h *QuotationHandlerImpl) ConvertToInvoice(w http.ResponseWriter, r *http.Request) {
	inv, err := h.quotationService.ConvertToInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Invoice issued", inv)
}

func (h *QuotationHandlerImpl) MarkInvoicePaid(w http.ResponseWriter, r *http.Request) {
	inv, err := h.quotationService.MarkInvoicePaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Invoice marked paid", inv)
}

func (h *QuotationHandlerImpl) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	q, err := h.quotationService.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	contact, err := h.quotationService.ResolveClient(r.Context(), q)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	rendered, err := pdf.RenderQuotation(q, contact)
	if err != nil {
		response.InternalServerError(w, "Failed to render PDF")
		return
	}

	writePDF(w, fmt.Sprintf("%s.pdf", q.Number), rendered)
}

func (h *QuotationHandlerImpl) DownloadInvoicePDF(w http.ResponseWriter, r *http.Request) {
	inv, err := h.quotationService.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var contact party.Contact
	if inv.QuotationID != nil {
		q, err := h.quotationService.GetByID(r.Context(), *inv.QuotationID)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		contact, err = h.quotationService.ResolveClient(r.Context(), q)
		if err != nil {
			response.HandleError(w, err)
			return
		}
	}

	rendered, err := pdf.RenderInvoice(inv, contact)
	if err != nil {
		response.InternalServerError(w, "Failed to render PDF")
		return
	}

	writePDF(w, fmt.Sprintf("%s.pdf", inv.Number), rendered)
}

func writePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
