package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ujenzihq/ujenzipay-backend/api/responses"
	"github.com/ujenzihq/ujenzipay-backend/api/validators"
	"github.com/ujenzihq/ujenzipay-backend/internal/payments"
	pkgerrors "github.com/ujenzihq/ujenzipay-backend/pkg/errors"
	"github.com/ujenzihq/ujenzipay-backend/pkg/logger"
)

// PaymentsList serves the searchable, tab-scoped, grouped payment listing.
func PaymentsList(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		tab, err := validators.TabFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		groupBy, err := validators.GroupKeyFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listing, err := svc.List(r.Context(), payments.ListQuery{
			Search:  r.URL.Query().Get("search"),
			Tab:     tab,
			GroupBy: groupBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, listing)
	}
}

// PaymentsGet serves a single record projection.
func PaymentsGet(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		id, err := validators.UUIDFromPath(chi.URLParam(r, "recordID"), "record id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// PaymentsInsights evaluates the insight rule catalogue over the stored
// snapshot.
func PaymentsInsights(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		result, err := svc.Insights(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Dashboards badge the insights panel by the most urgent finding.
		if len(result) > 0 {
			top := result[0].Severity
			for _, insight := range result[1:] {
				if insight.Severity.MoreUrgentThan(top) {
					top = insight.Severity
				}
			}
			w.Header().Set("X-Insight-Severity", top.String())
		}

		responses.WriteSuccess(w, result)
	}
}
