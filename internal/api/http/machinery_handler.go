package http

import (
	"net/http"
	"strconv"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
	"agrirent-backend/internal/service"
)

// MachineryHandler serves the machinery catalog routes.
type MachineryHandler struct {
	machinery service.MachineryService
}

func NewMachineryHandler(machinery service.MachineryService) *MachineryHandler {
	return &MachineryHandler{machinery: machinery}
}

type createMachineryRequest struct {
	Name                string               `json:"name"`
	Type                domain.MachineryType `json:"type"`
	Description         string               `json:"description"`
	HourlyRateCents     int32                `json:"hourly_rate_cents"`
	DailyRateCents      int32                `json:"daily_rate_cents"`
	OperatorAvailable   bool                 `json:"operator_available"`
	OperatorChargeCents int32                `json:"operator_charge_cents"`
	Location            domain.Location      `json:"location"`
	Specifications      map[string]string    `json:"specifications,omitempty"`
}

func (h *MachineryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	var req createMachineryRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.machinery.Create(r.Context(), user.ID, &domain.Machinery{
		Name:                req.Name,
		Type:                req.Type,
		Description:         req.Description,
		HourlyRateCents:     req.HourlyRateCents,
		DailyRateCents:      req.DailyRateCents,
		OperatorAvailable:   req.OperatorAvailable,
		OperatorChargeCents: req.OperatorChargeCents,
		Location:            req.Location,
		Specifications:      req.Specifications,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusCreated, "machinery added successfully", created)
}

func (h *MachineryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	m, err := h.machinery.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", m)
}

// List answers the catalog query. Filters come from the query string:
// type, available, latitude/longitude with radius_km.
func (h *MachineryHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := repository.MachineryFilter{
		Type:          domain.MachineryType(query.Get("type")),
		AvailableOnly: query.Get("available") == "true",
	}

	if latRaw, lngRaw := query.Get("latitude"), query.Get("longitude"); latRaw != "" || lngRaw != "" {
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lng, lngErr := strconv.ParseFloat(lngRaw, 64)
		if latErr != nil || lngErr != nil {
			respondError(w, domain.ValidationError("latitude and longitude must both be valid numbers"))
			return
		}
		filter.Near = &domain.GeoPoint{Latitude: lat, Longitude: lng}

		filter.RadiusKM = 10 // default search radius
		if radiusRaw := query.Get("radius_km"); radiusRaw != "" {
			radius, err := strconv.ParseFloat(radiusRaw, 64)
			if err != nil {
				respondError(w, domain.ValidationError("invalid radius_km"))
				return
			}
			filter.RadiusKM = radius
		}
	}

	items, err := h.machinery.List(r.Context(), filter)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", items)
}

func (h *MachineryHandler) ListByProvider(w http.ResponseWriter, r *http.Request) {
	providerID, err := pathID(r, "providerId")
	if err != nil {
		respondError(w, err)
		return
	}

	items, err := h.machinery.ListByOwner(r.Context(), providerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "", items)
}

type updateMachineryRequest struct {
	Name                *string               `json:"name,omitempty"`
	Type                *domain.MachineryType `json:"type,omitempty"`
	Description         *string               `json:"description,omitempty"`
	HourlyRateCents     *int32                `json:"hourly_rate_cents,omitempty"`
	DailyRateCents      *int32                `json:"daily_rate_cents,omitempty"`
	OperatorAvailable   *bool                 `json:"operator_available,omitempty"`
	OperatorChargeCents *int32                `json:"operator_charge_cents,omitempty"`
	Location            *domain.Location      `json:"location,omitempty"`
	Specifications      map[string]string     `json:"specifications,omitempty"`
}

func (h *MachineryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req updateMachineryRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.machinery.Update(r.Context(), user.ID, id, service.MachineryUpdate{
		Name:                req.Name,
		Type:                req.Type,
		Description:         req.Description,
		HourlyRateCents:     req.HourlyRateCents,
		DailyRateCents:      req.DailyRateCents,
		OperatorAvailable:   req.OperatorAvailable,
		OperatorChargeCents: req.OperatorChargeCents,
		Location:            req.Location,
		Specifications:      req.Specifications,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "machinery updated successfully", updated)
}

func (h *MachineryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		respondError(w, domain.AuthenticationError("not authenticated"))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.machinery.Delete(r.Context(), user.ID, id); err != nil {
		respondError(w, err)
		return
	}
	respondData(w, http.StatusOK, "machinery deleted successfully", nil)
}
