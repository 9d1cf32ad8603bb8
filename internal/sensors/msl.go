package sensors

import (
	"context"

	"backend-topout/internal/shared/geo"
)

// mslProvider wraps a provider whose GPS fixes carry raw ellipsoid
// altitudes and converts them to mean sea level before anyone
// downstream sees them. Barometric readings are already sea-level
// referenced and pass through untouched.
type mslProvider struct {
	Provider
}

func MSLCorrected(p Provider) Provider {
	return mslProvider{Provider: p}
}

func (m mslProvider) Location(ctx context.Context) (Location, error) {
	loc, err := m.Provider.Location(ctx)
	if err != nil {
		return Location{}, err
	}
	loc.Altitude = geo.MSLAltitude(loc.Altitude, loc.Lat, loc.Lon)
	return loc, nil
}
