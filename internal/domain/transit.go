package domain

import "fmt"

// TransitDeparture - ближайшее отправление с остановки
type TransitDeparture struct {
	Stop  string `json:"stop"`
	Mode  string `json:"mode"`
	Time  string `json:"time"`
	Label string `json:"label"`
}

func NewTransitDeparture(stop, mode, hhmm string) TransitDeparture {
	d := TransitDeparture{Stop: stop, Mode: mode, Time: hhmm}
	d.Label = d.String()
	return d
}

func (d TransitDeparture) String() string {
	return fmt.Sprintf("%s – %s at %s", d.Stop, d.Mode, d.Time)
}
