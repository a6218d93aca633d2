package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attendtrack/internal/student"
)

type createStudentRequest struct {
	Name           string `json:"name"`
	RegisterNumber string `json:"registerNumber"`
	Year           string `json:"year"`
	Branch         string `json:"branch"`
	DOB            string `json:"dob"`
	Gender         string `json:"gender"`
	Community      string `json:"community"`
	Minority       string `json:"minority"`
	BloodGroup     string `json:"bloodGroup"`
	Aadhar         string `json:"aadhar"`
	Mobile         string `json:"mobile"`
	Email          string `json:"email"`
}

func (h *Handler) createStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid student payload"})
		return
	}

	st, err := h.students.Add(c.Request.Context(), student.Profile{
		Name:           req.Name,
		RegisterNumber: req.RegisterNumber,
		Year:           req.Year,
		Branch:         req.Branch,
		DOB:            req.DOB,
		Gender:         req.Gender,
		Community:      req.Community,
		Minority:       req.Minority,
		BloodGroup:     req.BloodGroup,
		Aadhar:         req.Aadhar,
		Mobile:         req.Mobile,
		Email:          req.Email,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student added successfully", "student": st})
}

func (h *Handler) listStudents(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		storageError(c, err)
		return
	}
	if students == nil {
		students = []student.WithAttendance{}
	}
	c.JSON(http.StatusOK, students)
}

func (h *Handler) getStudent(c *gin.Context) {
	st, err := h.students.Find(c.Request.Context(), c.Param("registerNumber"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (h *Handler) deleteStudent(c *gin.Context) {
	if err := h.students.Remove(c.Request.Context(), c.Param("registerNumber")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Student deleted successfully"})
}
