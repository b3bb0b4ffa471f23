package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"pwdassist/internal/auth"
	apperrors "pwdassist/internal/errors"
	"pwdassist/internal/model"
	"pwdassist/internal/service"
)

// StudentHandler serves the NGO-only student records API.
type StudentHandler struct {
	studentService service.StudentService
}

// NewStudentHandler creates a student handler.
func NewStudentHandler(studentService service.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// StudentRequest represents a student create/update payload.
type StudentRequest struct {
	Name            string `json:"name" validate:"required"`
	Age             int    `json:"age"`
	DisabilityType  string `json:"disability_type"`
	CertificateFile string `json:"certificate_file"`
}

// StudentResult represents a mutation outcome.
type StudentResult struct {
	Success bool   `json:"success"`
	ID      uint   `json:"id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// List godoc
// @Summary List the caller's students, newest first
// @Tags students
// @Produce json
// @Success 200 {array} model.Student
// @Router /api/students [get]
func (h *StudentHandler) List(c echo.Context) error {
	sess := auth.CurrentSession(c)

	students, err := h.studentService.List(c.Request().Context(), sess.UserID)
	if err != nil {
		// read path degrades to an empty list when the store is unreachable
		c.Logger().Errorf("list students: %v", err)
		return c.JSON(http.StatusOK, []model.Student{})
	}
	if students == nil {
		students = []model.Student{}
	}
	return c.JSON(http.StatusOK, students)
}

// Create godoc
// @Summary Add a student
// @Tags students
// @Accept json
// @Produce json
// @Param student body StudentRequest true "Student payload"
// @Success 201 {object} StudentResult
// @Failure 400 {object} StudentResult
// @Failure 500 {object} StudentResult
// @Router /api/students [post]
func (h *StudentHandler) Create(c echo.Context) error {
	sess := auth.CurrentSession(c)

	var req StudentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, StudentResult{Success: false, Error: "No data provided"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, StudentResult{Success: false, Error: "name is required"})
	}

	student, err := h.studentService.Create(c.Request().Context(), sess.UserID, service.StudentInput{
		Name:            req.Name,
		Age:             req.Age,
		DisabilityType:  req.DisabilityType,
		CertificateFile: req.CertificateFile,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return c.JSON(http.StatusBadRequest, StudentResult{Success: false, Error: "name is required"})
		}
		c.Logger().Errorf("create student: %v", err)
		return c.JSON(http.StatusInternalServerError, StudentResult{Success: false, Error: "internal server error"})
	}

	return c.JSON(http.StatusCreated, StudentResult{Success: true, ID: student.ID})
}

// Update godoc
// @Summary Update a student owned by the caller
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param student body StudentRequest true "Student payload"
// @Success 200 {object} StudentResult
// @Failure 400 {object} StudentResult
// @Failure 500 {object} StudentResult
// @Router /api/students/{id} [put]
func (h *StudentHandler) Update(c echo.Context) error {
	sess := auth.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, StudentResult{Success: false, Error: "invalid id"})
	}

	var req StudentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, StudentResult{Success: false, Error: "No data provided"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, StudentResult{Success: false, Error: "name is required"})
	}

	err = h.studentService.Update(c.Request().Context(), sess.UserID, uint(id), service.StudentInput{
		Name:            req.Name,
		Age:             req.Age,
		DisabilityType:  req.DisabilityType,
		CertificateFile: req.CertificateFile,
	})
	if err != nil {
		// absent and foreign records are indistinguishable here
		if errors.Is(err, apperrors.ErrNotFoundOrNotOwned) {
			return c.JSON(http.StatusOK, StudentResult{Success: false, Error: "record not found"})
		}
		c.Logger().Errorf("update student: %v", err)
		return c.JSON(http.StatusInternalServerError, StudentResult{Success: false, Error: "internal server error"})
	}

	return c.JSON(http.StatusOK, StudentResult{Success: true})
}

// Delete godoc
// @Summary Delete a student owned by the caller
// @Tags students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} StudentResult
// @Failure 400 {object} StudentResult
// @Failure 500 {object} StudentResult
// @Router /api/students/{id} [delete]
func (h *StudentHandler) Delete(c echo.Context) error {
	sess := auth.CurrentSession(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, StudentResult{Success: false, Error: "invalid id"})
	}

	if err := h.studentService.Delete(c.Request().Context(), sess.UserID, uint(id)); err != nil {
		if errors.Is(err, apperrors.ErrNotFoundOrNotOwned) {
			return c.JSON(http.StatusOK, StudentResult{Success: false, Error: "record not found"})
		}
		c.Logger().Errorf("delete student: %v", err)
		return c.JSON(http.StatusInternalServerError, StudentResult{Success: false, Error: "internal server error"})
	}

	return c.JSON(http.StatusOK, StudentResult{Success: true})
}
