// Package sampler draws the static device catalog: per-device categorical
// attributes and geographic locations.
package sampler

import (
	"math/rand"
	"time"

	"github.com/lcalzada-xor/aptel/internal/core/domain"
)

// Fixed categorical domains for access-point attributes.
var (
	vendorSources = []string{"radius", "cisco"}
	vendorNames   = []string{"Cisco", "Netgear", "TP-Link", "Ubiquiti", "Aruba", "Ruckus"}
	models        = []string{"ModelA", "ModelB", "ModelC", "ModelD", "ModelE"}
	bands         = []string{"2.4GHz", "5GHz", "6GHz"}
	ssidTypes     = []string{"GuestWiFi", "CorpNet", "IoTNet", "PublicHotspot"}
)

// AttributeSampler draws static per-device attributes independent of time.
type AttributeSampler struct {
	rng *rand.Rand
}

// NewAttributeSampler creates a sampler seeded from the wall clock.
func NewAttributeSampler() *AttributeSampler {
	return &AttributeSampler{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewAttributeSamplerWithSource creates a sampler with a caller-owned source,
// used for reproducible draws.
func NewAttributeSamplerWithSource(src rand.Source) *AttributeSampler {
	return &AttributeSampler{rng: rand.New(src)}
}

// Sample returns n independent draws (with replacement) from the fixed
// categorical domains, with sequential ids 0..n-1. Locations are left zero;
// the caller merges them from the location sampler.
func (s *AttributeSampler) Sample(n int) []domain.AccessPoint {
	aps := make([]domain.AccessPoint, n)
	for i := range aps {
		aps[i] = domain.AccessPoint{
			ID:           int64(i),
			VendorSource: vendorSources[s.rng.Intn(len(vendorSources))],
			VendorName:   vendorNames[s.rng.Intn(len(vendorNames))],
			Model:        models[s.rng.Intn(len(models))],
			Band:         bands[s.rng.Intn(len(bands))],
			SSID:         ssidTypes[s.rng.Intn(len(ssidTypes))],
		}
	}
	return aps
}
