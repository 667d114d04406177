// internal/models/customer.go
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Numeric is a numeric field that tolerates the string forms the upstream
// CRM emits. It unmarshals from JSON numbers and from numeric strings; a
// blank or whitespace-only string is a missing value. An unparseable
// non-blank string is kept as raw text and rejected during encoding, not
// during decoding.
type Numeric struct {
	raw        string
	value      float64
	parsed     bool
	missing    bool
	fromString bool
}

// NumericFromFloat builds a parsed Numeric, used in tests and job payloads.
func NumericFromFloat(v float64) Numeric {
	return Numeric{
		raw:    strconv.FormatFloat(v, 'f', -1, 64),
		value:  v,
		parsed: true,
	}
}

// NumericFromString builds a Numeric from its raw string form.
func NumericFromString(s string) Numeric {
	n := Numeric{raw: s, fromString: true}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		n.missing = true
		return n
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		n.value = v
		n.parsed = true
	}
	return n
}

func (n *Numeric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Numeric{missing: true}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumericFromString(s)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Numeric{raw: string(data), value: v, parsed: true}
	return nil
}

// MarshalJSON reproduces the value as it arrived so that the canonical
// record payload is stable for hashing and auditing.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if n.fromString || n.missing {
		return json.Marshal(n.raw)
	}
	if n.parsed {
		return json.Marshal(n.value)
	}
	return json.Marshal("")
}

// Float64 returns the parsed value. ok is false for missing and
// unparseable values.
func (n Numeric) Float64() (float64, bool) {
	return n.value, n.parsed
}

// Missing reports whether the field was absent, null or blank.
func (n Numeric) Missing() bool {
	return n.missing || (!n.parsed && strings.TrimSpace(n.raw) == "")
}

// Raw returns the original textual form, for error details.
func (n Numeric) Raw() string {
	return n.raw
}

// CustomerRecord is one customer row in the exact field layout of the
// training dataset. Field names match the upstream CSV headers, mixed
// casing included.
type CustomerRecord struct {
	CustomerID       string  `json:"customerId,omitempty"`
	Gender           string  `json:"gender"`
	SeniorCitizen    int     `json:"SeniorCitizen"`
	Partner          string  `json:"Partner"`
	Dependents       string  `json:"Dependents"`
	Tenure           Numeric `json:"tenure"`
	PhoneService     string  `json:"PhoneService"`
	MultipleLines    string  `json:"MultipleLines"`
	InternetService  string  `json:"InternetService"`
	OnlineSecurity   string  `json:"OnlineSecurity"`
	OnlineBackup     string  `json:"OnlineBackup"`
	DeviceProtection string  `json:"DeviceProtection"`
	TechSupport      string  `json:"TechSupport"`
	StreamingTV      string  `json:"StreamingTV"`
	StreamingMovies  string  `json:"StreamingMovies"`
	Contract         string  `json:"Contract"`
	PaperlessBilling string  `json:"PaperlessBilling"`
	PaymentMethod    string  `json:"PaymentMethod"`
	MonthlyCharges   Numeric `json:"MonthlyCharges"`
	TotalCharges     Numeric `json:"TotalCharges"`

	raw json.RawMessage
}

// UnmarshalJSON keeps the payload as it arrived alongside the decoded
// fields. Every struct field round-trips through Marshal as present, so
// required-field checks must run against the arrived payload to tell a
// field that was never sent apart from one sent blank.
func (r *CustomerRecord) UnmarshalJSON(data []byte) error {
	type plain CustomerRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*r = CustomerRecord(p)
	r.raw = append(json.RawMessage(nil), data...)
	return nil
}

// RawPayload returns the JSON the record was decoded from, or nil when the
// record was built in code.
func (r *CustomerRecord) RawPayload() []byte {
	return r.raw
}

// CategoricalValue looks up a categorical field by its dataset column name.
func (r *CustomerRecord) CategoricalValue(column string) (string, bool) {
	switch column {
	case "gender":
		return r.Gender, true
	case "Partner":
		return r.Partner, true
	case "Dependents":
		return r.Dependents, true
	case "PhoneService":
		return r.PhoneService, true
	case "MultipleLines":
		return r.MultipleLines, true
	case "InternetService":
		return r.InternetService, true
	case "OnlineSecurity":
		return r.OnlineSecurity, true
	case "OnlineBackup":
		return r.OnlineBackup, true
	case "DeviceProtection":
		return r.DeviceProtection, true
	case "TechSupport":
		return r.TechSupport, true
	case "StreamingTV":
		return r.StreamingTV, true
	case "StreamingMovies":
		return r.StreamingMovies, true
	case "Contract":
		return r.Contract, true
	case "PaperlessBilling":
		return r.PaperlessBilling, true
	case "PaymentMethod":
		return r.PaymentMethod, true
	}
	return "", false
}

// NumericValue looks up a numeric field by its dataset column name.
func (r *CustomerRecord) NumericValue(column string) (Numeric, bool) {
	switch column {
	case "tenure":
		return r.Tenure, true
	case "MonthlyCharges":
		return r.MonthlyCharges, true
	case "TotalCharges":
		return r.TotalCharges, true
	}
	return Numeric{}, false
}
