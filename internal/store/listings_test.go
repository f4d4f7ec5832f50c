package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luxeauction/marketplace/pkg/errors"
	"github.com/luxeauction/marketplace/pkg/types"
)

func registerSeller(t *testing.T, s *Store) types.Car {
	t.Helper()
	_, err := s.Register("seller@x.com", "pw", "Sally", true)
	require.NoError(t, err)

	car, err := s.AddListing(ListingDraft{
		Make: "Audi", Model: "RS6 Avant", Year: 2023,
		VIN: "WAUZZZ4G1FN000001", Mileage: 9000,
		StartingPrice: 60000, ReservePrice: 70000,
		Condition: "Excellent", DurationHours: 24,
	})
	require.NoError(t, err)
	return car
}

func registerBuyer(t *testing.T, s *Store) types.User {
	t.Helper()
	user, err := s.Register("buyer@x.com", "pw", "Bob", false)
	require.NoError(t, err)
	return user
}

func TestValidBidAmount(t *testing.T) {
	assert.True(t, ValidBidAmount(1050, 1000, 50))
	assert.True(t, ValidBidAmount(1200, 1000, 50))
	assert.False(t, ValidBidAmount(1040, 1000, 50))
	assert.False(t, ValidBidAmount(1075, 1000, 50)) // not a whole increment
	assert.False(t, ValidBidAmount(1000, 1000, 50))
}

func TestPlaceBidAcceptance(t *testing.T) {
	f := newFixture(t, testConfig())
	car := registerSeller(t, f.store)
	buyer := registerBuyer(t, f.store)

	require.NoError(t, f.store.PlaceBid(car.ID, car.CurrentBid+50))

	got, err := f.store.Car(car.ID)
	require.NoError(t, err)
	assert.Equal(t, car.CurrentBid+50, got.CurrentBid)

	bids := f.store.BidsFor(car.ID)
	require.Len(t, bids, 1)
	assert.Equal(t, buyer.Email, bids[0].UserID)
	assert.Equal(t, buyer.Name, bids[0].UserName)
	assert.Equal(t, car.CurrentBid+50, bids[0].Amount)
}

func TestPlaceBidBelowIncrementChangesNothing(t *testing.T) {
	f := newFixture(t, testConfig())
	car := registerSeller(t, f.store)
	registerBuyer(t, f.store)

	err := f.store.PlaceBid(car.ID, car.CurrentBid+40)
	assert.Equal(t, errors.ErrBidTooLow, errors.Code(err))

	got, _ := f.store.Car(car.ID)
	assert.Equal(t, car.CurrentBid, got.CurrentBid)
	assert.Empty(t, f.store.BidsFor(car.ID))
}

func TestSelfBidRejected(t *testing.T) {
	f := newFixture(t, testConfig())
	car := registerSeller(t, f.store)

	err := f.store.PlaceBid(car.ID, car.CurrentBid+50)
	assert.Equal(t, errors.ErrSelfBid, errors.Code(err))

	got, _ := f.store.Car(car.ID)
	assert.Equal(t, car.CurrentBid, got.CurrentBid)
	assert.Empty(t, f.store.BidsFor(car.ID))
}

func TestPlaceBidRequiresLoginAndListing(t *testing.T) {
	f := newFixture(t, testConfig())
	car := registerSeller(t, f.store)
	f.store.Logout()

	err := f.store.PlaceBid(car.ID, car.CurrentBid+50)
	assert.Equal(t, errors.ErrUnauthorized, errors.Code(err))

	registerBuyer(t, f.store)
	err = f.store.PlaceBid("no-such-car", 1000)
	assert.Equal(t, errors.ErrListingNotFound, errors.Code(err))
}

func TestAddListingAssignsFields(t *testing.T) {
	f := newFixture(t, testConfig())
	_, err := f.store.Register("seller@x.com", "pw", "Sally", true)
	require.NoError(t, err)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.store.now = func() time.Time { return fixed }

	car, err := f.store.AddListing(ListingDraft{
		Make: "Audi", Model: "RS6 Avant", Year: 2023,
		StartingPrice: 60000, ReservePrice: 70000, DurationHours: 48,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, car.ID)
	assert.Equal(t, "seller@x.com", car.SellerID)
	assert.Equal(t, "Sally", car.SellerName)
	assert.Equal(t, 60000, car.CurrentBid)
	assert.Equal(t, fixed.Add(48*time.Hour), car.EndTime)
	assert.False(t, car.CarfaxVerified)
	assert.NotNil(t, car.Inspection.FrontLeft)
	assert.NotNil(t, car.Inspection.RearRight)
}

func TestAddListingValidation(t *testing.T) {
	f := newFixture(t, testConfig())

	_, err := f.store.AddListing(ListingDraft{Make: "Audi"})
	assert.Equal(t, errors.ErrUnauthorized, errors.Code(err))

	registerBuyer(t, f.store)
	_, err = f.store.AddListing(ListingDraft{Make: "Audi", Model: "A4", Year: 2020, StartingPrice: 1000, DurationHours: 1})
	assert.Equal(t, errors.ErrNotSeller, errors.Code(err))
	f.store.Logout()

	_, err = f.store.Register("s2@x.com", "pw", "Sam", true)
	require.NoError(t, err)
	_, err = f.store.AddListing(ListingDraft{Make: "Audi", Model: "A4", Year: 2020, DurationHours: 1})
	assert.Equal(t, errors.ErrInvalidListing, errors.Code(err))
}

func TestUpdateListingMergesAndNormalizes(t *testing.T) {
	f := newFixture(t, testConfig())
	car := registerSeller(t, f.store)

	desc := "Fresh service, new tires."
	partial := types.Inspection{
		FrontLeft: []types.InspectionImage{{ID: "i1", URL: "u", Category: types.CategoryEngine}},
	}
	got, err := f.store.UpdateListing(car.ID, CarUpdate{
		Description: &desc,
		Inspection:  &partial,
	})
	require.NoError(t, err)

	assert.Equal(t, desc, got.Description)
	assert.Equal(t, car.Make, got.Make) // untouched fields survive
	require.Len(t, got.Inspection.FrontLeft, 1)
	assert.NotNil(t, got.Inspection.FrontRight)
	assert.NotNil(t, got.Inspection.RearLeft)
	assert.NotNil(t, got.Inspection.RearRight)
}

func TestUpdateListingAuthorization(t *testing.T) {
	cfg := testConfig()
	f := newFixture(t, cfg)
	car := registerSeller(t, f.store)
	f.store.Logout()

	// another seller cannot touch it
	_, err := f.store.Register("other@x.com", "pw", "Olga", true)
	require.NoError(t, err)
	verified := true
	_, err = f.store.UpdateListing(car.ID, CarUpdate{CarfaxVerified: &verified})
	assert.Equal(t, errors.ErrUnauthorized, errors.Code(err))
	f.store.Logout()

	// the admin can toggle verification on any listing
	_, err = f.store.Login(cfg.Admin.Email, "admin123")
	require.NoError(t, err)
	got, err := f.store.UpdateListing(car.ID, CarUpdate{CarfaxVerified: &verified})
	require.NoError(t, err)
	assert.True(t, got.CarfaxVerified)
}

func TestDeleteListingIsAdminOnly(t *testing.T) {
	f := newFixture(t, testConfig())
	car := registerSeller(t, f.store)

	err := f.store.DeleteListing(car.ID)
	assert.Equal(t, errors.ErrNotAdmin, errors.Code(err))
	_, err = f.store.Car(car.ID)
	assert.NoError(t, err)
}

func TestDeleteListingCascades(t *testing.T) {
	cfg := testConfig()
	f := newFixture(t, cfg)
	car := registerSeller(t, f.store)
	f.store.Logout()

	registerBuyer(t, f.store)
	require.NoError(t, f.store.PlaceBid(car.ID, car.CurrentBid+50))
	f.store.ToggleFavorite(car.ID)
	f.store.Logout()

	_, err := f.store.Login(cfg.Admin.Email, "admin123")
	require.NoError(t, err)
	require.NoError(t, f.store.DeleteListing(car.ID))

	_, err = f.store.Car(car.ID)
	assert.Equal(t, errors.ErrListingNotFound, errors.Code(err))
	assert.Empty(t, f.store.BidsFor(car.ID))
	f.store.Logout()

	// the buyer's persisted favorites are pruned when their scope loads
	_, err = f.store.Login("buyer@x.com", "pw")
	require.NoError(t, err)
	assert.Empty(t, f.store.Favorites())
}

func TestInspectionImageLifecycle(t *testing.T) {
	f := newFixture(t, testConfig())
	car := registerSeller(t, f.store)

	_, err := f.store.AddInspectionImage(car.ID, types.Corner("roof"), types.InspectionImage{URL: "u"})
	assert.Equal(t, errors.ErrInvalidCorner, errors.Code(err))

	img, err := f.store.AddInspectionImage(car.ID, types.RearLeft, types.InspectionImage{
		URL: "https://img/1", Description: "scrape", Category: types.ImageCategory("weird"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, img.ID)
	assert.Equal(t, types.CategoryOther, img.Category) // unknown category coerced

	insp := f.store.InspectionForCar(car.ID)
	require.Len(t, insp.RearLeft, 1)

	require.NoError(t, f.store.RemoveInspectionImage(car.ID, types.RearLeft, img.ID))
	assert.Empty(t, f.store.InspectionForCar(car.ID).RearLeft)

	// missing listings yield an empty but fully shaped inspection
	missing := f.store.InspectionForCar("gone")
	assert.NotNil(t, missing.FrontLeft)
	assert.Empty(t, missing.FrontLeft)
}
