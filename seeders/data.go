package seeders

import "time"

type equipmentSeed struct {
	Name            string
	Type            string
	Status          string
	SerialNumber    string
	Location        string
	Notes           string
	LastMaintenance time.Duration // сколько назад, 0 - не обслуживалось
}

type ticketSeed struct {
	Title       string
	Description string
	Status      string
	Priority    string
	// EquipmentSerial пустой - заявка без оборудования.
	EquipmentSerial string
	Age             time.Duration
}

var equipmentData = []equipmentSeed{
	{Name: "Dell Latitude 5420", Type: "Laptop", Status: "in-use", SerialNumber: "DL5420-0001", Location: "Room 201", LastMaintenance: 30 * 24 * time.Hour},
	{Name: "Dell Latitude 5420", Type: "Laptop", Status: "available", SerialNumber: "DL5420-0002", Location: "Storage A"},
	{Name: "Epson EB-X51", Type: "Projector", Status: "maintenance", SerialNumber: "EPX51-1187", Location: "Lecture Hall 1", Notes: "Lamp flickers after warm-up"},
	{Name: "HP LaserJet M404", Type: "Printer", Status: "in-use", SerialNumber: "HPM404-7731", Location: "Faculty Office", LastMaintenance: 90 * 24 * time.Hour},
	{Name: "Cisco Catalyst 2960", Type: "Switch", Status: "in-use", SerialNumber: "CC2960-0042", Location: "Server Room", Notes: "Core switch, 48 ports"},
	{Name: "Logitech C920", Type: "Webcam", Status: "available", SerialNumber: "LGC920-3310", Location: "Storage B"},
}

var ticketData = []ticketSeed{
	{Title: "Projector lamp flickering", Description: "Image flickers about ten minutes into every lecture.", Status: "in-progress", Priority: "high", EquipmentSerial: "EPX51-1187", Age: 2 * time.Hour},
	{Title: "Printer paper jam", Description: "Tray 2 jams on every duplex job.", Status: "open", Priority: "medium", EquipmentSerial: "HPM404-7731", Age: 5 * time.Hour},
	{Title: "Laptop battery drains fast", Description: "Battery lasts under an hour on a full charge.", Status: "open", Priority: "low", EquipmentSerial: "DL5420-0001", Age: 26 * time.Hour},
	{Title: "Network drop in Room 201", Description: "Wired connections drop several times a day.", Status: "resolved", Priority: "high", EquipmentSerial: "CC2960-0042", Age: 3 * time.Hour},
	{Title: "Request new webcam driver", Description: "Driver update needed for the new conferencing client.", Status: "closed", Priority: "low", Age: 72 * time.Hour},
}
