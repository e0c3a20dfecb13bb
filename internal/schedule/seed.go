package schedule

import (
	"github.com/google/uuid"
	"github.com/klarrein/dashboard/internal/model"
)

// DemoAppointments returns the sample week used for demos and local
// development. Every call generates fresh ids.
func DemoAppointments() []model.Appointment {
	rows := []model.Appointment{
		{Customer: "Maria Schmidt", Worker: "Anna Müller", Time: "09:00", Date: "2025-01-20", Address: "Hauptstraße 15, 10115 Berlin", Service: "Grundreinigung", Duration: "2h", Status: model.StatusConfirmed},
		{Customer: "Familie Weber", Worker: "Klaus Fischer", Time: "14:00", Date: "2025-01-20", Address: "Gartenstraße 8, 80331 München", Service: "Tiefenreinigung", Duration: "3h", Status: model.StatusConfirmed},
		{Customer: "Emma Bauer", Worker: "Anna Müller", Time: "10:30", Date: "2025-01-21", Address: "Rosenweg 22, 20095 Hamburg", Service: "Fensterreinigung", Duration: "1.5h", Status: model.StatusPending},
		{Customer: "Thomas Huber", Worker: "Sophie Wagner", Time: "08:00", Date: "2025-01-21", Address: "Kirchplatz 5, 50667 Köln", Service: "Büroreinigung", Duration: "2.5h", Status: model.StatusConfirmed},
		{Customer: "Praxis Dr. Müller", Worker: "Klaus Fischer", Time: "16:00", Date: "2025-01-22", Address: "Bahnhofstraße 12, 60329 Frankfurt", Service: "Praxisreinigung", Duration: "2h", Status: model.StatusConfirmed},
		{Customer: "Sabine Koch", Worker: "Anna Müller", Time: "13:00", Date: "2025-01-22", Address: "Lindenallee 33, 40213 Düsseldorf", Service: "Grundreinigung", Duration: "2h", Status: model.StatusConfirmed},
		{Customer: "Restaurant Bella Vista", Worker: "Sophie Wagner", Time: "07:00", Date: "2025-01-23", Address: "Marktplatz 7, 70173 Stuttgart", Service: "Gastronomiereinigung", Duration: "3h", Status: model.StatusConfirmed},
		{Customer: "Familie Zimmermann", Worker: "Klaus Fischer", Time: "15:30", Date: "2025-01-24", Address: "Waldweg 18, 30159 Hannover", Service: "Grundreinigung", Duration: "2.5h", Status: model.StatusPending},
	}
	for i := range rows {
		rows[i].ID = uuid.NewString()
	}
	return rows
}
