package services

import (
	"math"
	"sort"

	"github.com/pyamsoft/fridge/services/locator/domain/models"
)

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between a and b in metres.
func Distance(a, b models.Coordinate) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := lat2 - lat1
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Contains reports whether p lies inside polygon using ray casting. Fewer than
// three points never contain anything.
func Contains(polygon []models.Coordinate, p models.Coordinate) bool {
	if len(polygon) < 3 {
		return false
	}
	inside := false
	j := len(polygon) - 1
	for i := range polygon {
		a, b := polygon[i], polygon[j]
		if (a.Lat > p.Lat) != (b.Lat > p.Lat) &&
			p.Lon < (b.Lon-a.Lon)*(p.Lat-a.Lat)/(b.Lat-a.Lat)+a.Lon {
			inside = !inside
		}
		j = i
	}
	return inside
}

// ZoneDistance is 0 when p is inside the zone, otherwise the distance to the
// closest vertex. A zone without points is infinitely far away.
func ZoneDistance(z models.Zone, p models.Coordinate) float64 {
	if Contains(z.Points, p) {
		return 0
	}
	best := math.Inf(1)
	for _, v := range z.Points {
		best = math.Min(best, Distance(v, p))
	}
	return best
}

// FindNearby pairs every store and zone within rangeMeters of p, closest first.
func FindNearby(p models.Coordinate, rangeMeters float64, stores []models.Store, zones []models.Zone) []models.Nearby {
	out := make([]models.Nearby, 0)
	for _, s := range stores {
		if d := Distance(s.Coordinate, p); d <= rangeMeters {
			out = append(out, models.Nearby{Kind: models.PlaceStore, ID: s.ID, Name: s.Name, Distance: d})
		}
	}
	for _, z := range zones {
		if d := ZoneDistance(z, p); d <= rangeMeters {
			out = append(out, models.Nearby{Kind: models.PlaceZone, ID: z.ID, Name: z.Name, Distance: d})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}
