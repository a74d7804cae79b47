package spatial

import "fmt"

// BBox represents a geographic bounding box in WGS84 degrees
type BBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether the point lies within the box
func (b BBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat && p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// ValidateCoordinate checks that a latitude/longitude pair lies in valid WGS84 ranges.
// An out-of-range coordinate is a programmer error on the caller's side.
func ValidateCoordinate(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %.6f out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %.6f out of range [-180, 180]", lon)
	}
	return nil
}

// ExpandBBox computes the bounding box of the points, grown by a 20% margin per axis
// and floored at minRadiusKm/111 degrees on each side
func ExpandBBox(points []Point, minRadiusKm float64) (BBox, error) {
	if len(points) == 0 {
		return BBox{}, fmt.Errorf("cannot expand bounding box of empty point set")
	}
	for _, p := range points {
		if err := ValidateCoordinate(p.Lat, p.Lon); err != nil {
			return BBox{}, err
		}
	}

	minLat, maxLat := points[0].Lat, points[0].Lat
	minLon, maxLon := points[0].Lon, points[0].Lon
	for _, p := range points[1:] {
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
	}

	marginLat := (maxLat - minLat) * 0.2
	marginLon := (maxLon - minLon) * 0.2
	floor := minRadiusKm / 111.0
	if marginLat < floor {
		marginLat = floor
	}
	if marginLon < floor {
		marginLon = floor
	}

	return BBox{
		MinLat: minLat - marginLat,
		MinLon: minLon - marginLon,
		MaxLat: maxLat + marginLat,
		MaxLon: maxLon + marginLon,
	}, nil
}

// IsDistant reports whether coord is farther than thresholdKm from center
func IsDistant(coord, center Point, thresholdKm float64) bool {
	return HaversineKm(coord, center) > thresholdKm
}
