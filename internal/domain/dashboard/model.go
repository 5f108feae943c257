package dashboard

type Stats struct {
	PatientCount     int `json:"patientCount"`
	StaffCount       int `json:"staffCount"`
	AppointmentCount int `json:"appointmentCount"`
	BedOccupancy     int `json:"bedOccupancy"`
}

// bedOccupancyPlaceholder stands in until bed tracking exists.
const bedOccupancyPlaceholder = 76
