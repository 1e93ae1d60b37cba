package usps

import (
	"strings"

	"github.com/kestrelworks/uspsbatch/internal/record"
)

// Result is the outcome of validating one row: either Enriched or Rejected,
// never both. Row materializes exactly one output row either way, so a batch
// always emits one output row per input row.
type Result interface {
	// Row returns the output row for this outcome. The original input fields
	// are always carried through unmodified.
	Row() *record.Record

	isResult()
}

// Enriched is a successfully standardized row: the input fields plus the
// Standardized_* columns and optional Warnings.
type Enriched struct {
	row *record.Record
}

func (e Enriched) Row() *record.Record { return e.row }
func (Enriched) isResult()             {}

// Rejected is a row that could not be standardized. Reason is the
// human-readable cause; StatusCode is the HTTP status when the rejection came
// from the API, 0 otherwise.
type Rejected struct {
	input      *record.Record
	Reason     string
	StatusCode int
}

// Row returns the input row with a single ValidationError column added.
func (r Rejected) Row() *record.Record {
	out := r.input.Clone()
	out.Set(record.KeyValidationError, r.Reason)
	return out
}

func (Rejected) isResult() {}

func newRejected(rec *record.Record, reason string, status int) Rejected {
	return Rejected{input: rec, Reason: reason, StatusCode: status}
}

// Output column names for the standardized address.
const (
	ColStandardizedFirm         = "Standardized_Firm"
	ColStandardizedStreet       = "Standardized_StreetAddress"
	ColStandardizedStreetAbbrev = "Standardized_StreetAddressAbbrev"
	ColStandardizedSecondary    = "Standardized_SecondaryAddress"
	ColStandardizedCity         = "Standardized_City"
	ColStandardizedCityAbbrev   = "Standardized_CityAbbrev"
	ColStandardizedState        = "Standardized_State"
	ColStandardizedZIPCode      = "Standardized_ZIPCode"
	ColStandardizedZIPPlus4     = "Standardized_ZIPPlus4"
	ColStandardizedUrbanization = "Standardized_Urbanization"
	ColDeliveryPoint            = "DeliveryPoint"
	ColCarrierRoute             = "CarrierRoute"
	ColDPVConfirmation          = "DPVConfirmation"
	ColDPVCMRA                  = "DPVCMRA"
	ColBusiness                 = "Business"
	ColCentralDeliveryPoint     = "CentralDeliveryPoint"
	ColVacant                   = "Vacant"
)

// validateResponse is the JSON shape of the standardization endpoint.
// Address and AdditionalInfo stay loosely typed so a present-but-empty object
// remains distinguishable from an absent one.
type validateResponse struct {
	Firm           string         `json:"firm"`
	Address        map[string]any `json:"address"`
	Warnings       []string       `json:"warnings"`
	AdditionalInfo map[string]any `json:"additionalInfo"`
}

// enrich merges the API response into a copy of the input row.
func enrich(rec *record.Record, resp validateResponse) Enriched {
	out := rec.Clone()

	// A warnings list, even an empty one, surfaces as a Warnings column.
	if resp.Warnings != nil {
		out.Set(record.KeyWarnings, strings.Join(resp.Warnings, "; "))
	}

	out.Set(ColStandardizedFirm, resp.Firm)
	out.Set(ColStandardizedStreet, objString(resp.Address, "streetAddress"))
	out.Set(ColStandardizedStreetAbbrev, objString(resp.Address, "streetAddressAbbreviation"))
	out.Set(ColStandardizedSecondary, objString(resp.Address, "secondaryAddress"))
	out.Set(ColStandardizedCity, objString(resp.Address, "city"))
	out.Set(ColStandardizedCityAbbrev, objString(resp.Address, "cityAbbreviation"))
	out.Set(ColStandardizedState, objString(resp.Address, "state"))
	out.Set(ColStandardizedZIPCode, objString(resp.Address, "ZIPCode"))
	out.Set(ColStandardizedZIPPlus4, objString(resp.Address, "ZIPPlus4"))
	out.Set(ColStandardizedUrbanization, objString(resp.Address, "urbanization"))

	// The seven additionalInfo columns exist only when the response carried a
	// non-empty additionalInfo object; an absent or empty object adds none of
	// them, so "never reported" stays distinguishable from "reported empty".
	if len(resp.AdditionalInfo) > 0 {
		out.Set(ColDeliveryPoint, objString(resp.AdditionalInfo, "deliveryPoint"))
		out.Set(ColCarrierRoute, objString(resp.AdditionalInfo, "carrierRoute"))
		out.Set(ColDPVConfirmation, objString(resp.AdditionalInfo, "DPVConfirmation"))
		out.Set(ColDPVCMRA, objString(resp.AdditionalInfo, "DPVCMRA"))
		out.Set(ColBusiness, objString(resp.AdditionalInfo, "business"))
		out.Set(ColCentralDeliveryPoint, objString(resp.AdditionalInfo, "centralDeliveryPoint"))
		out.Set(ColVacant, objString(resp.AdditionalInfo, "vacant"))
	}

	return Enriched{row: out}
}

// objString reads a field from a decoded JSON object, defaulting to "".
func objString(obj map[string]any, key string) string {
	if obj == nil {
		return ""
	}
	v, ok := obj[key]
	if !ok || v == nil {
		return ""
	}
	return record.Stringify(v)
}
