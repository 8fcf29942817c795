package compliance

import (
	"errors"
	"net/http"
	"staysync/infras/otel"
	"staysync/internal/domains/compliance"
	"staysync/internal/domains/compliance/dto"
	"staysync/shared/constant"
	"staysync/shared/daterange"
	"staysync/shared/timezone"
	"staysync/shared/validator"
	"staysync/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	otel otel.Otel
}

func New(otel otel.Otel) Handler {
	return Handler{
		otel: otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/compliance", func(routerGroup chi.Router) {
		routerGroup.Post("/tourist-tax", handler.TouristTax)
		routerGroup.Post("/license", handler.ValidateLicense)
	})
}

// TouristTax computes the tax owed for a stay under the given rule.
// @Summary Compute tourist tax
// @Tags Compliance
// @Accept json
// @Produce json
// @Param request body dto.TouristTaxRequest true "Rule and stay"
// @Success 200 {object} response.Data[compliance.Tax]
// @Failure 400 {object} response.Error
// @Router /v1/compliance/tourist-tax [post]
func (handler *Handler) TouristTax(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TouristTax")
	defer scope.End()

	req := dto.TouristTaxRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	tax, err := compliance.TouristTax(req.Rule, req.Stay)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, tax)
}

// ValidateLicense reports whether a registration number is acceptable in a jurisdiction.
// A refused license is a normal answer, not an error.
func (handler *Handler) ValidateLicense(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ValidateLicense")
	defer scope.End()

	req := dto.LicenseRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	expiresAt, on := req.Dates(daterange.Day(timezone.Now()))

	res := dto.LicenseResponse{
		Jurisdiction:    req.Jurisdiction,
		RequiresLicense: compliance.RequiresLicense(req.Jurisdiction),
		Valid:           true,
	}

	err := compliance.ValidateLicense(req.Jurisdiction, req.Number, expiresAt, on)

	var licenseErr *compliance.LicenseError

	switch {
	case errors.As(err, &licenseErr):
		res.Valid = false
		res.Reason = licenseErr.Reason
	case err != nil:
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
