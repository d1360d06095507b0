package http

import (
	"net/http"

	"github.com/chimfwembeC/tekrem-erp-sub007/internal/handler/http/response"
	directoryservice "github.com/chimfwembeC/tekrem-erp-sub007/internal/service/directory"
)

type EmployeeHandler interface {
	DepartmentHeadcount(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	directoryService *directoryservice.DirectoryService
}

func NewEmployeeHandler(s *directoryservice.DirectoryService) EmployeeHandler {
	return &EmployeeHandlerImpl{directoryService: s}
}

func (h *EmployeeHandlerImpl) DepartmentHeadcount(w http.ResponseWriter, r *http.Request) {
	counts, err := h.directoryService.DepartmentHeadcount(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, counts)
}
