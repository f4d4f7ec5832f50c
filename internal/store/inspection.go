package store

import (
	"github.com/google/uuid"

	"github.com/luxeauction/marketplace/pkg/errors"
	"github.com/luxeauction/marketplace/pkg/types"
)

// AddInspectionImage appends a photo record to one corner of a
// listing's inspection. Only the owning seller or an admin may attach
// photos; an unknown category is coerced to "other".
func (s *Store) AddInspectionImage(carID string, corner types.Corner, img types.InspectionImage) (types.InspectionImage, error) {
	if !corner.Valid() {
		return types.InspectionImage{}, errors.New(errors.ErrInvalidCorner, "unknown inspection corner")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return types.InspectionImage{}, errors.New(errors.ErrUnauthorized, "log in to edit inspections")
	}

	idx := s.carIndex(carID)
	if idx < 0 {
		return types.InspectionImage{}, errors.New(errors.ErrListingNotFound, "listing not found")
	}
	car := &s.cars[idx]

	if !s.current.IsAdmin && car.SellerID != s.current.Email {
		return types.InspectionImage{}, errors.New(errors.ErrUnauthorized, "not your listing")
	}

	if img.ID == "" {
		img.ID = uuid.New().String()
	}
	if !img.Category.Valid() {
		img.Category = types.CategoryOther
	}

	car.Inspection = car.Inspection.Normalize()
	car.Inspection.SetCorner(corner, append(car.Inspection.Corner(corner), img))

	s.broadcast(Event{Type: EventListings, CarID: carID})
	return img, nil
}

// RemoveInspectionImage deletes a photo record from a corner by id.
// A missing image id is a no-op.
func (s *Store) RemoveInspectionImage(carID string, corner types.Corner, imageID string) error {
	if !corner.Valid() {
		return errors.New(errors.ErrInvalidCorner, "unknown inspection corner")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return errors.New(errors.ErrUnauthorized, "log in to edit inspections")
	}

	idx := s.carIndex(carID)
	if idx < 0 {
		return errors.New(errors.ErrListingNotFound, "listing not found")
	}
	car := &s.cars[idx]

	if !s.current.IsAdmin && car.SellerID != s.current.Email {
		return errors.New(errors.ErrUnauthorized, "not your listing")
	}

	car.Inspection = car.Inspection.Normalize()
	images := car.Inspection.Corner(corner)
	kept := make([]types.InspectionImage, 0, len(images))
	for _, existing := range images {
		if existing.ID != imageID {
			kept = append(kept, existing)
		}
	}
	car.Inspection.SetCorner(corner, kept)

	s.broadcast(Event{Type: EventListings, CarID: carID})
	return nil
}

// InspectionForCar returns a car's inspection, or an empty normalized
// structure when the listing no longer exists.
func (s *Store) InspectionForCar(carID string) types.Inspection {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.carIndex(carID)
	if idx < 0 {
		return types.Inspection{}.Normalize()
	}
	return s.cars[idx].Inspection.Normalize()
}
