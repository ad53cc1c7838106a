package sampler

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/lcalzada-xor/aptel/internal/core/ports"
	"github.com/lcalzada-xor/aptel/internal/geo"
)

// rejectionBatch is the number of candidate points drawn per rejection round.
const rejectionBatch = 512

// LocationSampler draws geographic coordinates uniformly distributed by area
// within the boundary polygon of each administrative state.
type LocationSampler struct {
	geocoder ports.Geocoder
	rng      *rand.Rand
}

// NewLocationSampler creates a sampler backed by the given geocoder.
func NewLocationSampler(geocoder ports.Geocoder) *LocationSampler {
	return &LocationSampler{
		geocoder: geocoder,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewLocationSamplerWithSource creates a sampler with a caller-owned source.
func NewLocationSamplerWithSource(geocoder ports.Geocoder, src rand.Source) *LocationSampler {
	return &LocationSampler{geocoder: geocoder, rng: rand.New(src)}
}

// Sample produces approximately target (longitude, latitude, state, region)
// tuples. Each state is sampled independently to a quota of
// ceil(target/numStates); per-state rounding may push the combined count
// modestly above target, which is accepted, not corrected.
//
// A geocoder failure aborts the whole operation.
func (s *LocationSampler) Sample(ctx context.Context, target int) ([]geo.Location, error) {
	states := geo.States()
	quota := (target + len(states) - 1) / len(states)

	var out []geo.Location
	for _, state := range states {
		boundary, err := s.geocoder.StateBoundary(ctx, state)
		if err != nil {
			return nil, fmt.Errorf("geocode %s: %w", state, err)
		}
		points := s.sampleInBoundary(boundary, quota)
		region := geo.StateRegion(state)
		for _, p := range points {
			out = append(out, geo.Location{
				Longitude: p[0],
				Latitude:  p[1],
				State:     state,
				Region:    region,
			})
		}
	}
	return out, nil
}

// sampleInBoundary rejection-samples n points uniformly inside the boundary:
// draw uniform candidates within the bounding box, keep those inside the
// polygon, repeat until the quota is met, then truncate.
func (s *LocationSampler) sampleInBoundary(boundary orb.MultiPolygon, n int) []orb.Point {
	bound := boundary.Bound()
	kept := make([]orb.Point, 0, n)
	for len(kept) < n {
		for i := 0; i < rejectionBatch; i++ {
			p := orb.Point{
				bound.Min[0] + s.rng.Float64()*(bound.Max[0]-bound.Min[0]),
				bound.Min[1] + s.rng.Float64()*(bound.Max[1]-bound.Min[1]),
			}
			if planar.MultiPolygonContains(boundary, p) {
				kept = append(kept, p)
			}
		}
	}
	return kept[:n]
}
