package domain

import "fmt"

// AccessPoint holds the static identity and attributes of one simulated
// access point. Instances are created once by the samplers, persisted to the
// device catalog and never mutated afterwards.
type AccessPoint struct {
	ID           int64
	VendorSource string
	VendorName   string
	Model        string
	Band         string
	SSID         string
	Longitude    float64
	Latitude     float64
	State        string
	Region       string
}

// Label returns the zero-padded public identifier ("AP000000001") used as the
// symbol value in the time-series store and in search filters.
func (a AccessPoint) Label() string {
	return APLabel(a.ID)
}

// APLabel formats a numeric access-point id into its public form.
func APLabel(id int64) string {
	return fmt.Sprintf("AP%09d", id)
}
