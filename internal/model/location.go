package model

// Location is a display address with coordinates, stored as a JSON column.
type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}
