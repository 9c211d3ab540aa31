// Package entities declares typed structs for common MyGeotab entity types,
// tagged with the API's JSON attribute names. They are decoded from query
// results via geotab.Entity.Decode or the generic httpengine functions.
package entities

import (
	"time"
)

// Ref is a reference to another entity by id, as the API nests them.
type Ref struct {
	ID string `json:"id"`
}

// Device is a telematics device installed in a vehicle.
type Device struct {
	ID                          string `json:"id"`
	Name                        string `json:"name"`
	SerialNumber                string `json:"serialNumber"`
	VehicleIdentificationNumber string `json:"vehicleIdentificationNumber"`
	Groups                      []Ref  `json:"groups"`
}

// User is a MyGeotab user account.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IsDriver  bool   `json:"isDriver"`
}

// Group is a node of the organization hierarchy. Defects and defect lists
// are also represented as Group nodes by the API.
type Group struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Children []Ref  `json:"children"`
}

// Defect is a vehicle defect; the API stores defects as Group nodes, so
// queries for this type resolve to the Group type name.
type Defect struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
}

// StatusDatum is one engine status record. Its type name resolves to the
// API's "StatusData".
type StatusDatum struct {
	ID         string    `json:"id"`
	Data       float64   `json:"data"`
	DateTime   time.Time `json:"dateTime"`
	Device     Ref       `json:"device"`
	Diagnostic Ref       `json:"diagnostic"`
}

// LogRecord is one GPS position record.
type LogRecord struct {
	ID        string    `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Speed     float64   `json:"speed"`
	DateTime  time.Time `json:"dateTime"`
	Device    Ref       `json:"device"`
}

// Trip is one completed vehicle trip.
type Trip struct {
	ID       string    `json:"id"`
	Device   Ref       `json:"device"`
	Driver   Ref       `json:"driver"`
	Distance float64   `json:"distance"`
	Start    time.Time `json:"start"`
	Stop     time.Time `json:"stop"`
}
