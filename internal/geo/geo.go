package geo

// Location represents a geographic coordinate tagged with the administrative
// area it was sampled from.
type Location struct {
	Longitude float64
	Latitude  float64
	State     string
	Region    string
}

// RegionStates maps each named region to its administrative states. The
// location sampler draws an even share of points from every state listed
// here.
var RegionStates = map[string][]string{
	"west":  {"California", "Washington", "Oregon"},
	"east":  {"New York", "Massachusetts", "Florida"},
	"north": {"Minnesota", "Michigan", "Wisconsin"},
	"south": {"Texas", "Georgia", "Louisiana"},
}

// regionOrder fixes the iteration order so sampling is reproducible given a
// seeded source.
var regionOrder = []string{"west", "east", "north", "south"}

// States returns all administrative states in a stable order.
func States() []string {
	var states []string
	for _, region := range regionOrder {
		states = append(states, RegionStates[region]...)
	}
	return states
}

// StateRegion returns the region a state belongs to, or "" if unknown.
func StateRegion(state string) string {
	for region, states := range RegionStates {
		for _, s := range states {
			if s == state {
				return region
			}
		}
	}
	return ""
}
