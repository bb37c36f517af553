package domain

type POICategory string

const (
	POICategorySchool   POICategory = "school"
	POICategoryHospital POICategory = "hospital"
	POICategoryPark     POICategory = "park"
	POICategoryStation  POICategory = "station"
	POICategoryOther    POICategory = "other"
)

// UnnamedPOI - имя точки без тега name
const UnnamedPOI = "unnamed"

// poiTypeKeys - порядок тегов, из которых берется сырой тип точки
var poiTypeKeys = []string{"amenity", "tourism", "leisure", "railway"}

var poiCategoryByType = map[string]POICategory{
	"school":   POICategorySchool,
	"hospital": POICategoryHospital,
	"park":     POICategoryPark,
	"station":  POICategoryStation,
}

var poiLabels = map[POICategory]string{
	POICategorySchool:   "école",
	POICategoryHospital: "hôpital",
	POICategoryPark:     "parc",
	POICategoryStation:  "gare",
	POICategoryOther:    "autre",
}

// POICategories - все категории в порядке отображения
func POICategories() []POICategory {
	return []POICategory{
		POICategorySchool,
		POICategoryHospital,
		POICategoryPark,
		POICategoryStation,
		POICategoryOther,
	}
}

// Label - подпись категории на французском
func (c POICategory) Label() string {
	if l, ok := poiLabels[c]; ok {
		return l
	}
	return poiLabels[POICategoryOther]
}

// ClassifyPOI берет первый непустой тег из amenity, tourism, leisure, railway
// и переводит его по таблице категорий. Все остальное - other.
func ClassifyPOI(tags map[string]string) POICategory {
	for _, key := range poiTypeKeys {
		raw := tags[key]
		if raw == "" {
			continue
		}
		if c, ok := poiCategoryByType[raw]; ok {
			return c
		}
		return POICategoryOther
	}
	return POICategoryOther
}

type PointOfInterest struct {
	Name        string      `json:"name"`
	Category    POICategory `json:"category"`
	Coordinates LatLon      `json:"coordinates"`
}

func NewPointOfInterest(tags map[string]string, lat, lon float64) PointOfInterest {
	name := tags["name"]
	if name == "" {
		name = UnnamedPOI
	}
	return PointOfInterest{
		Name:        name,
		Category:    ClassifyPOI(tags),
		Coordinates: LatLon{Lat: lat, Lon: lon},
	}
}

// CountPOIsByCategory - число точек по каждой категории, включая нулевые
func CountPOIsByCategory(pois []PointOfInterest) map[POICategory]int {
	counts := make(map[POICategory]int, len(poiLabels))
	for _, c := range POICategories() {
		counts[c] = 0
	}
	for _, p := range pois {
		counts[p.Category]++
	}
	return counts
}
