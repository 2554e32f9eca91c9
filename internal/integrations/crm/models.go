package crm

// Contact is the denormalized customer record as the CRM serves it.
type Contact struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	LastTravelDate string `json:"last_travel_date"` // YYYY-MM-DD, may be empty
	TripCount      int    `json:"trip_count"`
}

type contactsResponse struct {
	Contacts []Contact `json:"contacts"`
}
