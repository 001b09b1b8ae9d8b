package window

import (
	"net/url"
	"strings"
)

// Query parameter names of a navigation address.
const (
	ParamStartDate = "startDate"
	ParamEndDate   = "endDate"
	ParamPattern   = "pattern"
)

// Address holds the navigation parameters a window is resolved from.
// Values are kept raw; validation happens in Resolve.
type Address struct {
	StartDate string
	EndDate   string
	Pattern   string
}

// AddressFromValues reads an Address out of query values.
func AddressFromValues(values url.Values) Address {
	return Address{
		StartDate: values.Get(ParamStartDate),
		EndDate:   values.Get(ParamEndDate),
		Pattern:   values.Get(ParamPattern),
	}
}

// ParseAddress reads an Address from a relative or absolute address such as
// "./?startDate=2025-01-01&endDate=2025-01-08". Unparseable input yields an
// empty Address, which resolves to the default window.
func ParseAddress(raw string) Address {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Address{}
	}
	query := raw
	if idx := strings.Index(raw, "?"); idx >= 0 {
		query = raw[idx+1:]
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return Address{}
	}
	return AddressFromValues(values)
}

// Values returns the address as query values, omitting empty parameters.
func (a Address) Values() url.Values {
	values := url.Values{}
	if a.StartDate != "" {
		values.Set(ParamStartDate, a.StartDate)
	}
	if a.EndDate != "" {
		values.Set(ParamEndDate, a.EndDate)
	}
	if a.Pattern != "" {
		values.Set(ParamPattern, a.Pattern)
	}
	return values
}

// Query encodes the address parameters in startDate, endDate, pattern order.
func (a Address) Query() string {
	var parts []string
	if a.StartDate != "" {
		parts = append(parts, ParamStartDate+"="+url.QueryEscape(a.StartDate))
	}
	if a.EndDate != "" {
		parts = append(parts, ParamEndDate+"="+url.QueryEscape(a.EndDate))
	}
	if a.Pattern != "" {
		parts = append(parts, ParamPattern+"="+url.QueryEscape(a.Pattern))
	}
	return strings.Join(parts, "&")
}

// String returns the relative address, e.g. "./?startDate=...&endDate=...".
func (a Address) String() string {
	q := a.Query()
	if q == "" {
		return "./"
	}
	return "./?" + q
}
