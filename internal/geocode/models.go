// Package geocode defines the geocoding domain model.
package geocode

import (
	"errors"
	"fmt"
)

// ErrNoMatch is returned when a place name resolves to zero features.
var ErrNoMatch = errors.New("no matching place found")

// Coordinate is a WGS84 position.
type Coordinate struct {
	// Lon is the longitude in degrees, [-180, 180].
	Lon float64

	// Lat is the latitude in degrees, [-90, 90].
	Lat float64
}

// Validate checks the coordinate against valid WGS84 ranges.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %f out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %f out of range [-180, 180]", c.Lon)
	}
	return nil
}
