// Package mockdata generates plausible US business identities for demo
// counterparty flows where no real entity exists.
package mockdata

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Address is a US street address.
type Address struct {
	Street      string
	Street2     string
	City        string
	Subdivision string
	PostalCode  string
	CountryCode string
}

// Business is a fictional US business entity.
type Business struct {
	Name         string
	Alias        string
	Email        string
	PhoneNumber  string
	Address      Address
	RegisteredAt string
}

// subdivisions limits generated addresses to states the demo bank is
// licensed to serve.
var subdivisions = []string{"IL", "NY"}

// USBusiness generates a fictional US business with a complete address
// and contact details.
func USBusiness() Business {
	name := gofakeit.Company()

	business := Business{
		Name:        name,
		Email:       gofakeit.Email(),
		PhoneNumber: "+1" + gofakeit.Numerify("##########"),
		Address: Address{
			Street:      gofakeit.Street(),
			City:        gofakeit.City(),
			Subdivision: gofakeit.RandomString(subdivisions),
			PostalCode:  gofakeit.Zip(),
			CountryCode: "US",
		},
		RegisteredAt: gofakeit.DateRange(
			time.Now().AddDate(-30, 0, 0),
			time.Now().AddDate(-1, 0, 0),
		).Format("2006-01-02"),
	}

	if gofakeit.Bool() {
		business.Alias = strings.Fields(name)[0]
	}
	if gofakeit.Bool() {
		business.Address.Street2 = "Suite " + gofakeit.Numerify("###")
	}
	return business
}
