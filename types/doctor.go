package types

// Doctor is a provider profile in the directory.
type Doctor struct {
	ID              string   `json:"id" bson:"_id,omitempty"`
	Name            string   `json:"name" bson:"name"`
	Specialty       string   `json:"specialty" bson:"specialty"`
	Qualification   string   `json:"qualification" bson:"qualification"`
	Email           string   `json:"email" bson:"email"`
	Phone           string   `json:"phone" bson:"phone"`
	HospitalName    string   `json:"hospitalName" bson:"hospital_name"`
	Address         string   `json:"address" bson:"address"`
	City            string   `json:"city" bson:"city"`
	ConsultationFee float64  `json:"consultationFee" bson:"consultation_fee"`
	ImageURL        string   `json:"imageUrl" bson:"image_url"`
	AvailableDays   []string `json:"availableDays" bson:"available_days"`
	StartTime       string   `json:"startTime" bson:"start_time"`
	EndTime         string   `json:"endTime" bson:"end_time"`
	SlotDuration    int      `json:"slotDuration" bson:"slot_duration"`
	IsActive        bool     `json:"isActive" bson:"is_active"`
}
