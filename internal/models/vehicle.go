package models

// VehicleDetails represents the vehicle being quoted.
type VehicleDetails struct {
	Make       string `json:"make"`
	Model      string `json:"model"`
	ModelYear  int    `json:"modelYear"`
	City       string `json:"city"`
	SumInsured int64  `json:"sumInsured"` // declared value in PKR
}
