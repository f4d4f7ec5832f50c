package types

import (
	"strconv"
	"time"
)

// User is the public identity record. Credentials live in the auth
// package and are never carried on this struct.
type User struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsSeller bool   `json:"isSeller"`
	IsAdmin  bool   `json:"isAdmin"`
}

// ImageCategory classifies an inspection photo.
type ImageCategory string

const (
	CategoryEngine ImageCategory = "engine"
	CategoryDamage ImageCategory = "damage"
	CategoryOther  ImageCategory = "other"
)

// Valid reports whether the category is one of the known values.
func (c ImageCategory) Valid() bool {
	switch c {
	case CategoryEngine, CategoryDamage, CategoryOther:
		return true
	}
	return false
}

// InspectionImage is a single photo record inside an inspection corner.
type InspectionImage struct {
	ID          string        `json:"id"`
	URL         string        `json:"url"`
	Description string        `json:"description"`
	Category    ImageCategory `json:"category"`
}

// Corner is one of the four fixed vehicle inspection positions.
type Corner string

const (
	FrontLeft  Corner = "frontLeft"
	FrontRight Corner = "frontRight"
	RearLeft   Corner = "rearLeft"
	RearRight  Corner = "rearRight"
)

// Valid reports whether the corner is one of the four known positions.
func (c Corner) Valid() bool {
	switch c {
	case FrontLeft, FrontRight, RearLeft, RearRight:
		return true
	}
	return false
}

// Inspection holds the photo records for all four corners. Every car
// carries all four lists; Normalize keeps them non-nil on every
// creation and update path.
type Inspection struct {
	FrontLeft  []InspectionImage `json:"frontLeft"`
	FrontRight []InspectionImage `json:"frontRight"`
	RearLeft   []InspectionImage `json:"rearLeft"`
	RearRight  []InspectionImage `json:"rearRight"`
}

// Normalize returns a copy with no nil corner lists.
func (i Inspection) Normalize() Inspection {
	if i.FrontLeft == nil {
		i.FrontLeft = []InspectionImage{}
	}
	if i.FrontRight == nil {
		i.FrontRight = []InspectionImage{}
	}
	if i.RearLeft == nil {
		i.RearLeft = []InspectionImage{}
	}
	if i.RearRight == nil {
		i.RearRight = []InspectionImage{}
	}
	return i
}

// Corner returns the image list for the given corner position.
func (i Inspection) Corner(c Corner) []InspectionImage {
	switch c {
	case FrontLeft:
		return i.FrontLeft
	case FrontRight:
		return i.FrontRight
	case RearLeft:
		return i.RearLeft
	case RearRight:
		return i.RearRight
	}
	return nil
}

// SetCorner replaces the image list for the given corner position.
func (i *Inspection) SetCorner(c Corner, images []InspectionImage) {
	switch c {
	case FrontLeft:
		i.FrontLeft = images
	case FrontRight:
		i.FrontRight = images
	case RearLeft:
		i.RearLeft = images
	case RearRight:
		i.RearRight = images
	}
}

// Car is a vehicle listing under auction.
type Car struct {
	ID             string     `json:"id"`
	Make           string     `json:"make"`
	Model          string     `json:"model"`
	Year           int        `json:"year"`
	VIN            string     `json:"vin"`
	Mileage        int        `json:"mileage"`
	StartingPrice  int        `json:"startingPrice"`
	ReservePrice   int        `json:"reservePrice"`
	CurrentBid     int        `json:"currentBid"`
	Images         []string   `json:"images"`
	Condition      string     `json:"condition"`
	SellerID       string     `json:"sellerId"`
	SellerName     string     `json:"sellerName"`
	EndTime        time.Time  `json:"endTime"`
	Description    string     `json:"description"`
	CarfaxVerified bool       `json:"carfaxVerified"`
	Inspection     Inspection `json:"inspection"`
}

// ReserveMet reports whether the current highest bid has reached the
// seller's reserve price.
func (c Car) ReserveMet() bool {
	return c.CurrentBid >= c.ReservePrice
}

// Title renders the listing headline, e.g. "2022 Porsche 911 Carrera".
func (c Car) Title() string {
	return strconv.Itoa(c.Year) + " " + c.Make + " " + c.Model
}

// Bid is one entry in a car's append-only bid log.
type Bid struct {
	CarID     string    `json:"carId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// SavedSearch is a named snapshot of a full filter state, unique per
// owner by name.
type SavedSearch struct {
	Name    string  `json:"name"`
	Filters Filters `json:"filters"`
}
