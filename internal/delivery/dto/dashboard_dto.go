package dto

type PatientDashboardResponse struct {
	Role                 string                `json:"role"`
	Name                 string                `json:"name"`
	UpcomingAppointments []AppointmentResponse `json:"upcoming_appointments"`
	DueMedications       []MedicationResponse  `json:"due_medications"`
	UnreadNotifications  int64                 `json:"unread_notifications"`
	LatestMetrics        []MetricCardResponse  `json:"latest_metrics"`
}

type DoctorDashboardResponse struct {
	Role                 string                `json:"role"`
	Name                 string                `json:"name"`
	TodayAppointments    []AppointmentResponse `json:"today_appointments"`
	TotalPatients        int                   `json:"total_patients"`
	PendingReviews       int                   `json:"pending_reviews"`
	UnreadMessages       int64                 `json:"unread_messages"`
	UpcomingAppointments []AppointmentResponse `json:"upcoming_appointments"`
}
