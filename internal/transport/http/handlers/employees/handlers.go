package employeehandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"payroll/internal/domain/employee"
	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/middleware"
	"payroll/internal/transport/http/render"
	"payroll/internal/transport/http/shared"
)

type Handler struct {
	Employees *employee.Service
	Render    *render.Renderer
}

func NewHandler(svc *employee.Service, renderer *render.Renderer) *Handler {
	return &Handler{Employees: svc, Render: renderer}
}

// createPayload accepts amounts as JSON numbers or numeric strings.
type createPayload struct {
	Name        string      `json:"name"`
	Department  string      `json:"department"`
	Role        string      `json:"role"`
	JoiningDate string      `json:"joiningDate"`
	BasicSalary json.Number `json:"basicSalary"`
}

type formView struct {
	Input  employee.CreateInput
	Errors []string
}

// RegisterRoutes mounts the HTML pages. Callers apply the session gate.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/employees", h.handleListPage)
	r.Get("/employees/new", h.handleNewPage)
	r.Post("/employees/new", h.handleCreateForm)
	r.Get("/add-employee", h.handleNewPage)
	r.Post("/add-employee", h.handleCreateForm)
}

func (h *Handler) RegisterAPIRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{employeeID}", h.handleGet)
	})
}

func (h *Handler) handleListPage(w http.ResponseWriter, r *http.Request) {
	list, err := h.Employees.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list employees failed", "err", err)
		h.Render.Error(w, r, http.StatusInternalServerError, "Could not load employees.")
		return
	}
	h.Render.HTML(w, r, http.StatusOK, "employees", "Employees", list)
}

func (h *Handler) handleNewPage(w http.ResponseWriter, r *http.Request) {
	h.Render.HTML(w, r, http.StatusOK, "employee_new", "Add employee", formView{})
}

func (h *Handler) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Render.HTML(w, r, http.StatusBadRequest, "employee_new", "Add employee", formView{Errors: []string{"Invalid form submission."}})
		return
	}
	input := employee.CreateInput{
		Name:        r.PostFormValue("name"),
		Department:  r.PostFormValue("department"),
		Role:        r.PostFormValue("role"),
		JoiningDate: r.PostFormValue("joining_date"),
		BasicSalary: r.PostFormValue("basic_salary"),
	}

	if _, err := h.Employees.Create(r.Context(), input); err != nil {
		var verr *employee.ValidationError
		if errors.As(err, &verr) {
			h.Render.HTML(w, r, http.StatusUnprocessableEntity, "employee_new", "Add employee", formView{Input: input, Errors: verr.Messages})
			return
		}
		slog.ErrorContext(r.Context(), "create employee failed", "err", err)
		h.Render.Error(w, r, http.StatusInternalServerError, "Could not save the employee.")
		return
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Employees.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list employees failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createPayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	emp, err := h.Employees.Create(r.Context(), employee.CreateInput{
		Name:        payload.Name,
		Department:  payload.Department,
		Role:        payload.Role,
		JoiningDate: payload.JoiningDate,
		BasicSalary: payload.BasicSalary.String(),
	})
	if err != nil {
		var verr *employee.ValidationError
		if errors.As(err, &verr) {
			v := shared.NewValidator()
			v.AddMessages(verr.Messages)
			v.Reject(w, middleware.GetRequestID(r.Context()))
			return
		}
		slog.ErrorContext(r.Context(), "create employee failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "employeeID"), 10, 64)
	if err != nil {
		api.NotFound(w, "employee", middleware.GetRequestID(r.Context()))
		return
	}
	emp, err := h.Employees.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			api.NotFound(w, "employee", middleware.GetRequestID(r.Context()))
			return
		}
		slog.ErrorContext(r.Context(), "get employee failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "employee_get_failed", "failed to load employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}
