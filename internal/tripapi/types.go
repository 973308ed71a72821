package tripapi

// Wire types for the Trip Service REST API. Dates travel as YYYY-MM-DD
// strings; times of day as HH:MM.

// CityPayload is an entry of the city catalog.
type CityPayload struct {
	ID        int64  `json:"id"`
	CityName  string `json:"city_name"`
	KoName    string `json:"ko_name"`
	KoCountry string `json:"ko_country"`
}

// TripCityPayload is one per-city date range of a trip. The service joins
// the City record into responses; requests carry only the city_id.
type TripCityPayload struct {
	ID        int64        `json:"id,omitempty"`
	TripID    int64        `json:"trip_id,omitempty"`
	CityID    int64        `json:"city_id"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	City      *CityPayload `json:"city,omitempty"`
}

// TripPayload is a trip as returned by the service.
type TripPayload struct {
	ID         int64             `json:"id"`
	Title      string            `json:"title"`
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	UserID     int64             `json:"user_id"`
	TripCities []TripCityPayload `json:"trip_cities"`
}

// CreateTripRequest creates a trip together with its city ranges. The
// service generates the day records for the whole date range itself.
type CreateTripRequest struct {
	Title      string            `json:"title"`
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	UserID     int64             `json:"user_id"`
	TripCities []TripCityPayload `json:"trip_cities"`
}

// UpdateTripRequest replaces a trip's title, date range, and full city
// range list in one call; the service regenerates its day records as a
// side effect.
type UpdateTripRequest struct {
	Title      string            `json:"title"`
	StartDate  string            `json:"start_date"`
	EndDate    string            `json:"end_date"`
	TripCities []TripCityPayload `json:"trip_cities"`
}

// TripDayPayload is one server-side day record. day_sequence is the only
// attribute the client keys on.
type TripDayPayload struct {
	ID          int64 `json:"id"`
	TripID      int64 `json:"trip_id"`
	DaySequence int   `json:"day_sequence"`
}

// SchedulePayload is a schedule entry attached to a day record.
type SchedulePayload struct {
	ID              int64   `json:"id,omitempty"`
	TripDayID       int64   `json:"trip_day_id"`
	ScheduleContent string  `json:"schedule_content"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	PlaceID         *int64  `json:"place_id"`
	ScheduleDate    string  `json:"schedule_datetime,omitempty"`
}

// UpdateScheduleRequest patches an existing schedule entry.
type UpdateScheduleRequest struct {
	ScheduleContent string  `json:"schedule_content"`
	StartTime       *string `json:"start_time"`
	EndTime         *string `json:"end_time"`
	PlaceID         *int64  `json:"place_id"`
}

// ChecklistItemPayload is a packing-list item scoped to a trip.
type ChecklistItemPayload struct {
	ID        int64  `json:"id,omitempty"`
	TripID    int64  `json:"trip_id"`
	ItemName  string `json:"item_name"`
	IsChecked bool   `json:"is_checked"`
}

// UpdateChecklistItemRequest patches an existing checklist item.
type UpdateChecklistItemRequest struct {
	ItemName  string `json:"item_name"`
	IsChecked bool   `json:"is_checked"`
}
