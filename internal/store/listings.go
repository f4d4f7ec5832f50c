package store

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/luxeauction/marketplace/pkg/errors"
	"github.com/luxeauction/marketplace/pkg/types"
)

// ListingDraft is the seller-provided part of a new listing; identity
// fields, current bid, end time and inspection are assigned by the
// store.
type ListingDraft struct {
	Make          string
	Model         string
	Year          int
	VIN           string
	Mileage       int
	StartingPrice int
	ReservePrice  int
	Images        []string
	Condition     string
	Description   string
	DurationHours int
}

// CarUpdate is a partial listing update; nil fields are left alone.
type CarUpdate struct {
	Make           *string
	Model          *string
	Year           *int
	VIN            *string
	Mileage        *int
	ReservePrice   *int
	Images         *[]string
	Condition      *string
	Description    *string
	CarfaxVerified *bool
	Inspection     *types.Inspection
}

// ValidBidAmount is the caller-side increment check: bids must be
// whole multiples of the increment above the current bid. The store
// itself only enforces the minimum-increment floor.
func ValidBidAmount(amount, currentBid, increment int) bool {
	if increment <= 0 {
		return amount > currentBid
	}
	above := amount - currentBid
	return above >= increment && above%increment == 0
}

// PlaceBid records a bid on a listing. The car's current bid and the
// bid log update together under one lock.
func (s *Store) PlaceBid(carID string, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return errors.New(errors.ErrUnauthorized, "log in to place a bid")
	}

	idx := s.carIndex(carID)
	if idx < 0 {
		return errors.New(errors.ErrListingNotFound, "listing not found")
	}
	car := &s.cars[idx]

	if car.SellerID == s.current.Email {
		return errors.New(errors.ErrSelfBid, "you cannot bid on your own listing")
	}
	if amount < car.CurrentBid+s.cfg.Auction.MinIncrement {
		return errors.New(errors.ErrBidTooLow, "bid amount is below the minimum increment")
	}

	car.CurrentBid = amount
	s.bids[carID] = append(s.bids[carID], types.Bid{
		CarID:     carID,
		UserID:    s.current.Email,
		UserName:  s.current.Name,
		Amount:    amount,
		Timestamp: s.now(),
	})

	log.Debugf("Bid of %d placed on %s by %s", amount, carID, s.current.Email)
	s.broadcast(Event{Type: EventBid, CarID: carID})
	return nil
}

// AddListing creates a listing for the authenticated seller. The end
// time is computed from the draft duration and the inspection starts
// out empty but fully shaped.
func (s *Store) AddListing(draft ListingDraft) (types.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return types.Car{}, errors.New(errors.ErrUnauthorized, "log in to create a listing")
	}
	if !s.current.IsSeller && !s.current.IsAdmin {
		return types.Car{}, errors.New(errors.ErrNotSeller, "only sellers can create listings")
	}
	if draft.Make == "" || draft.Model == "" || draft.Year <= 0 ||
		draft.StartingPrice <= 0 || draft.DurationHours <= 0 {
		return types.Car{}, errors.New(errors.ErrInvalidListing, "listing is missing required fields")
	}

	car := types.Car{
		ID:            uuid.New().String(),
		Make:          draft.Make,
		Model:         draft.Model,
		Year:          draft.Year,
		VIN:           draft.VIN,
		Mileage:       draft.Mileage,
		StartingPrice: draft.StartingPrice,
		ReservePrice:  draft.ReservePrice,
		CurrentBid:    draft.StartingPrice,
		Images:        draft.Images,
		Condition:     draft.Condition,
		SellerID:      s.current.Email,
		SellerName:    s.current.Name,
		EndTime:       s.now().Add(time.Duration(draft.DurationHours) * time.Hour),
		Description:   draft.Description,
		Inspection:    types.Inspection{}.Normalize(),
	}
	s.cars = append(s.cars, car)

	log.Infof("Listing %s created by %s", car.ID, car.SellerID)
	s.broadcast(Event{Type: EventListings, CarID: car.ID})
	return car, nil
}

// UpdateListing merges a partial update into an existing listing and
// re-normalizes its inspection. Only the owning seller or an admin may
// update; the current bid is never touched here.
func (s *Store) UpdateListing(carID string, upd CarUpdate) (types.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return types.Car{}, errors.New(errors.ErrUnauthorized, "log in to update a listing")
	}

	idx := s.carIndex(carID)
	if idx < 0 {
		return types.Car{}, errors.New(errors.ErrListingNotFound, "listing not found")
	}
	car := &s.cars[idx]

	if !s.current.IsAdmin && car.SellerID != s.current.Email {
		return types.Car{}, errors.New(errors.ErrUnauthorized, "not your listing")
	}

	if upd.Make != nil {
		car.Make = *upd.Make
	}
	if upd.Model != nil {
		car.Model = *upd.Model
	}
	if upd.Year != nil {
		car.Year = *upd.Year
	}
	if upd.VIN != nil {
		car.VIN = *upd.VIN
	}
	if upd.Mileage != nil {
		car.Mileage = *upd.Mileage
	}
	if upd.ReservePrice != nil {
		car.ReservePrice = *upd.ReservePrice
	}
	if upd.Images != nil {
		car.Images = *upd.Images
	}
	if upd.Condition != nil {
		car.Condition = *upd.Condition
	}
	if upd.Description != nil {
		car.Description = *upd.Description
	}
	if upd.CarfaxVerified != nil {
		car.CarfaxVerified = *upd.CarfaxVerified
	}
	if upd.Inspection != nil {
		car.Inspection = *upd.Inspection
	}
	car.Inspection = car.Inspection.Normalize()

	s.broadcast(Event{Type: EventListings, CarID: carID})
	return *car, nil
}

// DeleteListing removes a listing with its bid log and drops it from
// the active owner's favorites. Other owners' persisted favorites are
// pruned lazily when their scope next loads.
func (s *Store) DeleteListing(carID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || !s.current.IsAdmin {
		return errors.New(errors.ErrNotAdmin, "only administrators can delete listings")
	}

	idx := s.carIndex(carID)
	if idx < 0 {
		return errors.New(errors.ErrListingNotFound, "listing not found")
	}
	s.cars = append(s.cars[:idx], s.cars[idx+1:]...)
	delete(s.bids, carID)

	kept := s.favorites[:0]
	removed := false
	for _, id := range s.favorites {
		if id == carID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if removed {
		s.favorites = kept
		s.persistFavorites()
	}

	log.Infof("Listing %s deleted", carID)
	s.broadcast(Event{Type: EventListings, CarID: carID})
	return nil
}

// Cars returns a copy of all listings.
func (s *Store) Cars() []types.Car {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Car, len(s.cars))
	copy(out, s.cars)
	return out
}

// Car looks a listing up by id.
func (s *Store) Car(carID string) (types.Car, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.carIndex(carID)
	if idx < 0 {
		return types.Car{}, errors.New(errors.ErrListingNotFound, "listing not found")
	}
	return s.cars[idx], nil
}

// BidsFor returns a copy of a car's chronological bid log.
func (s *Store) BidsFor(carID string) []types.Bid {
	s.mu.Lock()
	defer s.mu.Unlock()

	bids := s.bids[carID]
	out := make([]types.Bid, len(bids))
	copy(out, bids)
	return out
}

// AllBids returns a copy of every bid log keyed by car id.
func (s *Store) AllBids() map[string][]types.Bid {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]types.Bid, len(s.bids))
	for carID, bids := range s.bids {
		cp := make([]types.Bid, len(bids))
		copy(cp, bids)
		out[carID] = cp
	}
	return out
}

// carIndex finds a car by id. Callers must hold s.mu.
func (s *Store) carIndex(carID string) int {
	for i := range s.cars {
		if s.cars[i].ID == carID {
			return i
		}
	}
	return -1
}
