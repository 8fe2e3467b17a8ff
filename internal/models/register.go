package models

// RegisterStatus is the availability of a register in the selection grid
type RegisterStatus string

const (
	RegisterAvailable RegisterStatus = "available"
	RegisterInUse     RegisterStatus = "in-use"
)

// Register represents a till that a cashier can open a checkout session on
type Register struct {
	ID     int            `json:"id"`
	Name   string         `json:"name"`
	Status RegisterStatus `json:"status"`
}
