// Package exports renders flat CSV exports of listings and bid logs,
// written as timestamp-suffixed files.
package exports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/luxeauction/marketplace/pkg/types"
)

var listingsHeader = []string{
	"id", "make", "model", "year", "vin", "mileage",
	"startingPrice", "reservePrice", "currentBid",
	"sellerId", "sellerName", "endTime", "carfaxVerified",
	"condition", "description",
}

var bidsHeader = []string{
	"carId", "carTitle", "userId", "userName", "amount", "timestamp",
}

// ListingsCSV renders all listings as CSV.
func ListingsCSV(cars []types.Car) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(listingsHeader); err != nil {
		return nil, err
	}
	for _, c := range cars {
		record := []string{
			c.ID,
			c.Make,
			c.Model,
			strconv.Itoa(c.Year),
			c.VIN,
			strconv.Itoa(c.Mileage),
			strconv.Itoa(c.StartingPrice),
			strconv.Itoa(c.ReservePrice),
			strconv.Itoa(c.CurrentBid),
			c.SellerID,
			c.SellerName,
			c.EndTime.UTC().Format(time.RFC3339),
			strconv.FormatBool(c.CarfaxVerified),
			c.Condition,
			c.Description,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// BidsCSV renders every bid log entry, flattened across cars. Bids on
// deleted listings keep their car id with an "Unknown" title.
func BidsCSV(cars []types.Car, bids map[string][]types.Bid) ([]byte, error) {
	titles := make(map[string]string, len(cars))
	order := make([]string, 0, len(cars))
	for _, c := range cars {
		titles[c.ID] = c.Title()
		order = append(order, c.ID)
	}
	unknown := make([]string, 0)
	for carID := range bids {
		if _, known := titles[carID]; !known {
			titles[carID] = "Unknown"
			unknown = append(unknown, carID)
		}
	}
	sort.Strings(unknown)
	order = append(order, unknown...)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(bidsHeader); err != nil {
		return nil, err
	}
	for _, carID := range order {
		for _, bid := range bids[carID] {
			record := []string{
				carID,
				titles[carID],
				bid.UserID,
				bid.UserName,
				strconv.Itoa(bid.Amount),
				bid.Timestamp.UTC().Format(time.RFC3339),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// WriteListingsFile writes the listings export into dir and returns
// the full path, named luxe_listings_<unix-millis>.csv.
func WriteListingsFile(dir string, cars []types.Car) (string, error) {
	data, err := ListingsCSV(cars)
	if err != nil {
		return "", err
	}
	return writeExport(dir, "luxe_listings", data)
}

// WriteBidsFile writes the bids export into dir and returns the full
// path, named luxe_bids_<unix-millis>.csv.
func WriteBidsFile(dir string, cars []types.Car, bids map[string][]types.Bid) (string, error) {
	data, err := BidsCSV(cars, bids)
	if err != nil {
		return "", err
	}
	return writeExport(dir, "luxe_bids", data)
}

func writeExport(dir, prefix string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%d.csv", prefix, time.Now().UnixMilli())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
