package domain

// LatLon - точка в WGS84
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Boundary - контур коммуны: одно или несколько колец (мультиполигон), в порядке источника
type Boundary struct {
	Rings [][]LatLon `json:"rings"`
}

func EmptyBoundary() Boundary {
	return Boundary{Rings: [][]LatLon{}}
}

func (b Boundary) IsEmpty() bool {
	return len(b.Rings) == 0
}
