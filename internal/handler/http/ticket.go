package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/party"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/domain/ticket"
	"github.com/chimfwembeC/tekrem-erp-sub007/internal/handler/http/response"
	fileservice "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/file"
	ticketservice "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/ticket"
)

type TicketHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MarkInProgress(w http.ResponseWriter, r *http.Request)
	MarkPending(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Reopen(w http.ResponseWriter, r *http.Request)
	AddComment(w http.ResponseWriter, r *http.Request)
	ListComments(w http.ResponseWriter, r *http.Request)
	UploadAttachment(w http.ResponseWriter, r *http.Request)
}

type TicketHandlerImpl struct {
	ticketService *ticketservice.TicketService
	fileService   *fileservice.FileService
}

func NewTicketHandler(ticketService *ticketservice.TicketService, fileService *fileservice.FileService) TicketHandler {
	return &TicketHandlerImpl{
		ticketService: ticketService,
		fileService:   fileService,
	}
}

func (h *TicketHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req ticket.CreateTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	// Tickets filed without an explicit requester belong to the caller.
	if req.RequesterID == "" {
		req.RequesterKind = string(party.KindUser)
		req.RequesterID = userIDFromRequest(r)
	}

	created, err := h.ticketService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Ticket created", created)
}

func (h *TicketHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var status *ticket.TicketStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := ticket.TicketStatus(raw)
		status = &s
	}

	tickets, err := h.ticketService.List(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, tickets)
}

func (h *TicketHandlerImpl) MarkInProgress(w http.ResponseWriter, r *http.Request) {
	t, err := h.ticketService.MarkInProgress(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ticket in progress", t)
}

func (h *TicketHandlerImpl) MarkPending(w http.ResponseWriter, r *http.Request) {
	t, err := h.ticketService.MarkPending(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ticket pending", t)
}

func (h *TicketHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	t, err := h.ticketService.Resolve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ticket resolved", t)
}

func (h *TicketHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	var req ticket.CloseTicketRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	t, err := h.ticketService.Close(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ticket closed", t)
}

func (h *TicketHandlerImpl) Reopen(w http.ResponseWriter, r *http.Request) {
	var req ticket.ReopenTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	t, err := h.ticketService.Reopen(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Ticket reopened", t)
}

func (h *TicketHandlerImpl) AddComment(w http.ResponseWriter, r *http.Request) {
	var req ticket.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	author := party.UserRef(userIDFromRequest(r))
	comment, err := h.ticketService.AddComment(r.Context(), chi.URLParam(r, "id"), author, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Comment added", comment)
}

func (h *TicketHandlerImpl) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.ticketService.ListComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, comments)
}

func (h *TicketHandlerImpl) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")

	// The ticket must exist before accepting an upload for it.
	if _, err := h.ticketService.TicketRepository.GetByID(r.Context(), ticketID); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.BadRequest(w, "Invalid multipart form", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file field is required", nil)
		return
	}
	defer file.Close()

	path, err := h.fileService.UploadTicketAttachment(r.Context(), ticketID, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	url, err := h.fileService.GetURL(r.Context(), path)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attachment uploaded", map[string]string{
		"path": path,
		"url":  url,
	})
}
