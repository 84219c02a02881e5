package handlers

import (
	"net/http"

	"github.com/pyamsoft/fridge/pkg/errhttp"
	"github.com/pyamsoft/fridge/pkg/httpx"
	"github.com/pyamsoft/fridge/pkg/preferences"
	pkgvalidator "github.com/pyamsoft/fridge/pkg/validator"
	butlersvcs "github.com/pyamsoft/fridge/services/butler/application/services"
)

// SettingsBody is the household's reminder and expiration settings.
type SettingsBody struct {
	ExpiringSoonDays        int     `json:"expiring_soon_days"        validate:"min=0,max=30"      example:"1"`
	SameDayExpired          bool    `json:"same_day_expired"                                       example:"false"`
	ZeroCountConsumed       bool    `json:"zero_count_consumed"                                    example:"false"`
	NotificationPeriodHours int     `json:"notification_period_hours" validate:"min=1,max=168"     example:"2"`
	DoNotDisturb            bool    `json:"do_not_disturb"                                         example:"true"`
	QuietStartHour          int     `json:"quiet_start_hour"          validate:"min=0,max=23"      example:"22"`
	QuietEndHour            int     `json:"quiet_end_hour"            validate:"min=0,max=23"      example:"7"`
	NearbyRangeMeters       float64 `json:"nearby_range_meters"       validate:"min=50,max=50000"  example:"1600"`
} // @name Settings

func toSettingsBody(s preferences.Settings) SettingsBody {
	return SettingsBody(s)
}

// SettingsHandler serves /settings.
type SettingsHandler struct {
	svc *butlersvcs.Services
}

func NewSettingsHandler(svc *butlersvcs.Services) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get returns the household settings, with defaults for unsaved fields.
//
//	@Summary	Get settings
//	@Tags		settings
//	@Produce	json
//	@Success	200	{object}	SettingsBody
//	@Failure	401	{object}	ErrorResponse
//	@Router		/settings [get]
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	s, err := h.svc.Settings.Get(r.Context(), hh)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSettingsBody(s))
}

// Put replaces every settings field.
//
//	@Summary	Save settings
//	@Tags		settings
//	@Accept		json
//	@Produce	json
//	@Param		request	body		SettingsBody	true	"Settings"
//	@Success	200		{object}	SettingsBody
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/settings [put]
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	hh, ok := householdID(w, r)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[SettingsBody](w, r)
	if !ok {
		return
	}
	s := preferences.Settings(*req)
	if err := h.svc.Settings.Save(r.Context(), hh, s); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toSettingsBody(s))
}
