package entity

// ReimbursementTypes is the fixed set of expense categories the extraction
// prompt instructs the model to choose from. The value is advisory: a record
// carrying a type outside this list is not rejected.
var ReimbursementTypes = []string{
	"Travel",
	"Hotel & Accommodation",
	"Food",
	"Medical",
	"Telephone",
	"Fuel",
	"Imprest",
	"Other",
	"Air Ticket",
	"Postage/courier/transport/delivery charges",
	"Printing and stationery for quiz",
	"Train Ticket",
}
