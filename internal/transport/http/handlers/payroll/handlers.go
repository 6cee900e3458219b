package payrollhandler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"payroll/internal/domain/employee"
	"payroll/internal/domain/payroll"
	"payroll/internal/transport/http/api"
	"payroll/internal/transport/http/middleware"
	"payroll/internal/transport/http/render"
	"payroll/internal/transport/http/shared"
)

const (
	msgInvalidAmount    = "Bonus and deductions must be numbers."
	msgEmployeeNotFound = "Employee not found."
)

type Handler struct {
	Payroll   *payroll.Service
	Employees *employee.Service
	Render    *render.Renderer
}

func NewHandler(svc *payroll.Service, employees *employee.Service, renderer *render.Renderer) *Handler {
	return &Handler{Payroll: svc, Employees: employees, Render: renderer}
}

// generatePayload accepts amounts as JSON numbers or numeric strings.
type generatePayload struct {
	EmployeeID json.Number `json:"employeeId"`
	Bonus      json.Number `json:"bonus"`
	Deductions json.Number `json:"deductions"`
}

type formView struct {
	Employees []employee.Employee
	Input     payroll.GenerateInput
	Error     string
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/salaries", h.handleListPage)
	r.Get("/salaries/new", h.handleNewPage)
	r.Post("/salaries/new", h.handleGenerateForm)
	r.Get("/generate-salary", h.handleNewPage)
	r.Post("/generate-salary", h.handleGenerateForm)
	r.Get("/salaries/{salaryID}/payslip.pdf", h.handlePayslip)
}

func (h *Handler) RegisterAPIRoutes(r chi.Router) {
	r.Route("/salaries", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleGenerate)
	})
}

func (h *Handler) handleListPage(w http.ResponseWriter, r *http.Request) {
	list, err := h.Payroll.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list salaries failed", "err", err)
		h.Render.Error(w, r, http.StatusInternalServerError, "Could not load salary records.")
		return
	}
	h.Render.HTML(w, r, http.StatusOK, "salaries", "Salaries", list)
}

func (h *Handler) handleNewPage(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, payroll.GenerateInput{}, "")
}

func (h *Handler) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderForm(w, r, http.StatusBadRequest, payroll.GenerateInput{}, "Invalid form submission.")
		return
	}
	input := payroll.GenerateInput{
		EmployeeID: r.PostFormValue("employee_id"),
		Bonus:      r.PostFormValue("bonus"),
		Deductions: r.PostFormValue("deductions"),
	}

	if _, err := h.Payroll.Generate(r.Context(), input); err != nil {
		switch {
		case errors.Is(err, payroll.ErrInvalidAmount):
			h.renderForm(w, r, http.StatusUnprocessableEntity, input, msgInvalidAmount)
		case errors.Is(err, payroll.ErrEmployeeNotFound):
			h.renderForm(w, r, http.StatusNotFound, input, msgEmployeeNotFound)
		default:
			slog.ErrorContext(r.Context(), "generate salary failed", "err", err)
			h.Render.Error(w, r, http.StatusInternalServerError, "Could not generate the salary.")
		}
		return
	}
	http.Redirect(w, r, "/salaries", http.StatusSeeOther)
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, input payroll.GenerateInput, message string) {
	list, err := h.Employees.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list employees failed", "err", err)
		h.Render.Error(w, r, http.StatusInternalServerError, "Could not load employees.")
		return
	}
	h.Render.HTML(w, r, status, "salary_new", "Generate salary", formView{Employees: list, Input: input, Error: message})
}

func (h *Handler) handlePayslip(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "salaryID"), 10, 64)
	if err != nil {
		h.Render.Error(w, r, http.StatusNotFound, "Salary record not found.")
		return
	}
	slip, err := h.Payroll.Payslip(r.Context(), id)
	if err != nil {
		if errors.Is(err, payroll.ErrSalaryNotFound) || errors.Is(err, payroll.ErrEmployeeNotFound) {
			h.Render.Error(w, r, http.StatusNotFound, "Salary record not found.")
			return
		}
		slog.ErrorContext(r.Context(), "load payslip failed", "salaryId", id, "err", err)
		h.Render.Error(w, r, http.StatusInternalServerError, "Could not build the payslip.")
		return
	}

	var buf bytes.Buffer
	if err := payroll.RenderPayslip(&buf, slip); err != nil {
		slog.ErrorContext(r.Context(), "render payslip failed", "salaryId", id, "err", err)
		h.Render.Error(w, r, http.StatusInternalServerError, "Could not build the payslip.")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=payslip-%d.pdf", id))
	_, _ = buf.WriteTo(w)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	list, err := h.Payroll.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "list salaries failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "salary_list_failed", "failed to list salaries", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, list, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload generatePayload
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID.String(), "is required")
	v.Required("bonus", payload.Bonus.String(), "is required")
	v.Required("deductions", payload.Deductions.String(), "is required")
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	record, err := h.Payroll.Generate(r.Context(), payroll.GenerateInput{
		EmployeeID: payload.EmployeeID.String(),
		Bonus:      payload.Bonus.String(),
		Deductions: payload.Deductions.String(),
	})
	if err != nil {
		switch {
		case errors.Is(err, payroll.ErrInvalidAmount):
			v.Add("", msgInvalidAmount)
			v.Reject(w, middleware.GetRequestID(r.Context()))
		case errors.Is(err, payroll.ErrEmployeeNotFound):
			api.NotFound(w, "employee", middleware.GetRequestID(r.Context()))
		default:
			slog.ErrorContext(r.Context(), "generate salary failed", "err", err)
			api.Fail(w, http.StatusInternalServerError, "salary_generate_failed", "failed to generate salary", middleware.GetRequestID(r.Context()))
		}
		return
	}
	api.Created(w, record, middleware.GetRequestID(r.Context()))
}
