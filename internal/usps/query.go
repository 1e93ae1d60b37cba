package usps

import (
	"net/url"

	"github.com/kestrelworks/uspsbatch/internal/record"
)

// BuildAddressQuery maps one input row to the query parameters of a
// standardization request. Returns ok=false when the row is ineligible for
// submission: streetAddress and state are required, and at least one of city
// or a usable ZIPCode must be present. Pure; no I/O.
func BuildAddressQuery(rec *record.Record) (url.Values, bool) {
	street := rec.GetString(record.KeyStreetAddress)
	state := rec.GetString(record.KeyState)
	city := rec.GetString(record.KeyCity)

	rawZIP, _ := rec.Get(record.KeyZIPCode)
	zipCode := record.CleanZIP(rawZIP)
	rawPlus4, _ := rec.Get(record.KeyZIPPlus4)
	zipPlus4 := record.CleanZIP(rawPlus4)

	if street == "" || state == "" {
		return nil, false
	}
	if city == "" && zipCode == "" {
		return nil, false
	}

	params := url.Values{}
	params.Set(record.KeyStreetAddress, street)
	params.Set(record.KeyState, state)
	if city != "" {
		params.Set(record.KeyCity, city)
	}
	if zipCode != "" {
		params.Set(record.KeyZIPCode, zipCode)
	}

	// Optional fields ride along only when present and non-empty.
	if firm := rec.GetString(record.KeyFirm); firm != "" {
		params.Set(record.KeyFirm, firm)
	}
	if secondary := rec.GetString(record.KeySecondaryAddress); secondary != "" {
		params.Set(record.KeySecondaryAddress, secondary)
	}
	if zipPlus4 != "" {
		params.Set(record.KeyZIPPlus4, zipPlus4)
	}
	if urb := rec.GetString(record.KeyUrbanization); urb != "" {
		params.Set(record.KeyUrbanization, urb)
	}

	return params, true
}
