package types

import "github.com/google/uuid"

// User is the profile of the currently logged-in account.
type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Age      int    `json:"age"`
}

// Buyer is the purchaser snapshot captured on a line at add-to-cart time.
type Buyer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Age     int    `json:"age"`
}

// BuyerFromUser strips the login identity down to the purchase snapshot.
func BuyerFromUser(u User) Buyer {
	return Buyer{Name: u.Name, Address: u.Address, Age: u.Age}
}

// LineItem is a single purchase line. Cart lines and order-log lines share
// this shape; checkout moves lines from the cart into the order log without
// rewriting them.
type LineItem struct {
	ID          uuid.UUID `json:"id"`
	Buyer       Buyer     `json:"buyer"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Color       string    `json:"color"`
	UnitPrice   Amount    `json:"unit_price"`
	LineTotal   Amount    `json:"line_total"`
	Completed   bool      `json:"completed,omitempty"`
}
