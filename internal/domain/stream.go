package domain

import (
	"strings"

	"github.com/google/uuid"
)

const (
	StreamCityAggregate = "stream:city:aggregate"
	StreamCityDone      = "stream:city:done"
)

// StreamMessage - сообщение из Redis Stream; Data - JSON из поля "data"
type StreamMessage struct {
	ID   string
	Data string
}

// CityAggregateEvent - запрос на сборку данных по городу
type CityAggregateEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	City      string    `json:"city"`
}

func (e *CityAggregateEvent) IsValid() bool {
	return e.RequestID != uuid.Nil && strings.TrimSpace(e.City) != ""
}

// CityDoneEvent - результат сборки. Aggregate равен nil, если Error не пуст.
type CityDoneEvent struct {
	RequestID uuid.UUID            `json:"request_id"`
	City      string               `json:"city"`
	Aggregate *CityAggregateRecord `json:"aggregate"`
	Error     string               `json:"error"`
}
