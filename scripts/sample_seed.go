//go:build ignore

// This script prints a small reference-data seed for local development.
// Run with: go run scripts/sample_seed.go > seed.json
// Then start the service with REFDATA_SEED_FILE=seed.json.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
)

func main() {
	validFrom := time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	window := model.ValidityWindow{ValidFrom: validFrom, ValidTo: validFrom.AddDate(1, 0, -1)}

	tables := model.ReferenceTables{
		Locations: []model.FBALocation{
			{
				FBACode: "ONT8", FBAZip: "92551", FBACity: "Moreno Valley", FBAStateCode: "CA",
				FPODZip: "90810", FPODCity: "Long Beach", FPODUnloc: "USLGB", FPODStateCode: "CA",
				FPODCFSName: "Long Beach CFS", Last10Weeks: 30, Last1Week: 4, Last3Weeks: 11,
				PresetBucket: "Hot", Loadability: 62, Consolidator: "Coload", Coast: "West",
			},
			{
				FBACode: "ABE8", FBAZip: "08518", FBACity: "Florence", FBAStateCode: "NJ",
				FPODZip: "07001", FPODCity: "Avenel", FPODUnloc: "USNYC", FPODStateCode: "NJ",
				FPODCFSName: "Avenel CFS", Last10Weeks: 6, Last1Week: 0, Last3Weeks: 1,
				PresetBucket: "Cold", Loadability: 58, Consolidator: "Coload", Coast: "East",
			},
		},
		P2P: []model.P2PTariff{
			{
				P2PType: model.ConsoleCoload, CarrierSCAC: "SAMP", POLName: "Nhava Sheva", POLUnloc: "INNSA",
				FPODName: "Long Beach", FPODUnloc: "USLGB", OriginChargesINR: 1500, OIH: 10,
				OceanFreightUSD: 55, DIH: 12, DrayageDevanningUSD: 18, TotalCostUSD: 95,
				Loadability: 62, PerCBMUSD: 95, ValidityWindow: window,
			},
			{
				P2PType: model.ConsoleOwn, CarrierSCAC: "SAMP", POLName: "Nhava Sheva", POLUnloc: "INNSA",
				FPODName: "New York", FPODUnloc: "USNYC", OriginChargesINR: 1500, OIH: 10,
				OceanFreightUSD: 70, DIH: 14, DrayageDevanningUSD: 20, TotalCostUSD: 114,
				Loadability: 58, PerCBMUSD: 114, ValidityWindow: window,
			},
		},
		Accessorials: []model.Accessorial{
			{ChargeHead: model.ChargeHeadDocumentation, FPOD: "Nhava Sheva", LocationUnloc: "INNSA", Currency: "INR", Amount: 3500},
			{ChargeHead: model.ChargeHeadOCC, FPOD: "Nhava Sheva", LocationUnloc: "INNSA", Currency: "INR", Amount: 2500},
			{ChargeHead: model.ChargeHeadDCC, FPOD: "Long Beach", LocationUnloc: "USLGB", Currency: "USD", Amount: 150},
			{ChargeHead: model.ChargeHeadDCC, FPOD: "New York", LocationUnloc: "USNYC", Currency: "USD", Amount: 175},
		},
		Palletization: []model.PalletizationCharge{
			{ServiceType: model.PalletizationPerPallet, FPOD: "Long Beach", FPODUnloc: "USLGB", Currency: "USD", Amount: 20},
			{ServiceType: model.PalletizationPerPallet, FPOD: "New York", FPODUnloc: "USNYC", Currency: "USD", Amount: 22},
		},
		StaticRates: []model.StaticRate{
			{DeliveryType: model.RateLTL, OriginZip: "90810", DestZip: "92551", Pallets: 4, Rate: 480, CarrierName: "Sample LTL", Broker: "Sample Broker", ValidityWindow: window},
			{DeliveryType: model.RateFTL, OriginZip: "90810", DestZip: "92551", Rate: 900, CarrierName: "Sample FTL", Broker: "Sample Broker", ValidityWindow: window},
			{DeliveryType: model.RateDrayage, OriginZip: "90810", DestZip: "92551", Rate: 650, CarrierName: "Sample Drayage", Broker: "Sample Broker", ValidityWindow: window},
		},
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tables); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding seed: %v\n", err)
		os.Exit(1)
	}
}
