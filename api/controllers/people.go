package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/podolskiy06021990-bit/orderdesk-backend/api/responses"
	"github.com/podolskiy06021990-bit/orderdesk-backend/api/validators"
	peoplesvc "github.com/podolskiy06021990-bit/orderdesk-backend/internal/people"
	pkgerrors "github.com/podolskiy06021990-bit/orderdesk-backend/pkg/errors"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/logger"
)

type createPersonRequest struct {
	FirstName string `json:"first_name" validate:"required"`
}

func CreatePerson(svc peoplesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPersonRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		person, err := svc.CreatePerson(r.Context(), payload.FirstName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, person)
	}
}

func GetPerson(svc peoplesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid person id"))
			return
		}
		person, err := svc.GetPerson(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, person)
	}
}

type assignStudentProfileRequest struct {
	Grade float64 `json:"grade" validate:"gte=0,lte=100"`
}

func AssignStudentProfile(svc peoplesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid person id"))
			return
		}
		var payload assignStudentProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		person, err := svc.AssignStudentProfile(r.Context(), id, payload.Grade)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, person)
	}
}

type assignTeacherProfileRequest struct {
	Qualification string `json:"qualification" validate:"required"`
	Subject       string `json:"subject" validate:"required"`
}

func AssignTeacherProfile(svc peoplesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid person id"))
			return
		}
		var payload assignTeacherProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		person, err := svc.AssignTeacherProfile(r.Context(), id, payload.Qualification, payload.Subject)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, person)
	}
}

func ListStudents(svc peoplesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		persons, err := svc.ListStudents(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, persons)
	}
}

func ListTeachers(svc peoplesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		persons, err := svc.ListTeachers(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, persons)
	}
}
