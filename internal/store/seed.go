package store

import (
	"time"

	"github.com/luxeauction/marketplace/pkg/types"
)

// SampleListings returns the demo inventory used when seeding is
// enabled. End times are relative to now so the countdowns are live.
func SampleListings(now time.Time) []types.Car {
	cars := []types.Car{
		{
			ID:             "1",
			Make:           "Porsche",
			Model:          "911 Carrera",
			Year:           2022,
			VIN:            "1HGBH41JXMN109186",
			Mileage:        8500,
			StartingPrice:  95000,
			ReservePrice:   110000,
			CurrentBid:     98000,
			Images:         []string{"https://images.unsplash.com/photo-1614200187524-dc4b892acf16?w=800"},
			Condition:      "Excellent",
			SellerID:       "demo_seller",
			SellerName:     "Premium Motors",
			EndTime:        now.Add(2 * time.Hour),
			Description:    "Pristine condition, single owner.",
			CarfaxVerified: true,
		},
		{
			ID:             "2",
			Make:           "BMW",
			Model:          "M4 Competition",
			Year:           2023,
			VIN:            "2HGES16534H504893",
			Mileage:        3200,
			StartingPrice:  78000,
			ReservePrice:   85000,
			CurrentBid:     82000,
			Images:         []string{"https://images.unsplash.com/photo-1617814076367-b759c7d7e738?w=800"},
			Condition:      "Like New",
			SellerID:       "demo_seller",
			SellerName:     "Luxury Auto Group",
			EndTime:        now.Add(5 * time.Hour),
			Description:    "Carbon fiber package.",
			CarfaxVerified: true,
		},
		{
			ID:             "3",
			Make:           "Mercedes-Benz",
			Model:          "AMG GT",
			Year:           2021,
			VIN:            "3FAHP07Z79R123456",
			Mileage:        12000,
			StartingPrice:  125000,
			ReservePrice:   135000,
			CurrentBid:     128000,
			Images:         []string{"https://images.unsplash.com/photo-1618843479313-40f8afb4b4d8?w=800"},
			Condition:      "Excellent",
			SellerID:       "demo_seller2",
			SellerName:     "Elite Automotive",
			EndTime:        now.Add(8 * time.Hour),
			Description:    "AMG Performance package.",
			CarfaxVerified: true,
		},
	}
	for i := range cars {
		cars[i].Inspection = cars[i].Inspection.Normalize()
	}
	return cars
}
