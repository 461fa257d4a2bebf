package controllers

import (
	"net/http"

	"github.com/podolskiy06021990-bit/orderdesk-backend/api/responses"
	statssvc "github.com/podolskiy06021990-bit/orderdesk-backend/internal/stats"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/logger"
)

func GetStats(svc statssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := svc.Overview(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}
