package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

const dateLayout = "2006-01-02"

// ReferenceStore keeps the reference tables in SQLite.
type ReferenceStore struct {
	db *sql.DB
}

// OpenReferenceStore opens or creates the store at path. ":memory:" keeps
// the tables in process for the lifetime of the store.
func OpenReferenceStore(path string) (*ReferenceStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference store: %w", err)
	}
	if strings.Contains(path, ":memory:") {
		// Each connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &ReferenceStore{db: db}, nil
}

// Close closes the database.
func (s *ReferenceStore) Close() error {
	return s.db.Close()
}

// HealthCheck verifies the database is reachable.
func (s *ReferenceStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Load reads every table inside one read transaction so the snapshot is
// consistent with concurrent replacements.
func (s *ReferenceStore) Load(ctx context.Context) (*model.ReferenceTables, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	tables := &model.ReferenceTables{}
	loaders := []func(context.Context, *sql.Tx, *model.ReferenceTables) error{
		loadLocations, loadP2P, loadAccessorials, loadPalletization, loadStaticRates,
	}
	for _, load := range loaders {
		if err := load(ctx, tx, tables); err != nil {
			return nil, err
		}
	}
	return tables, tx.Commit()
}

// Replace swaps every table for the contents of tables in one transaction.
func (s *ReferenceStore) Replace(ctx context.Context, tables *model.ReferenceTables) error {
	if tables == nil {
		return fmt.Errorf("reference tables are required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"fba_locations", "p2p_tariffs", "accessorials", "palletization", "static_rates"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	writers := []func(context.Context, *sql.Tx, *model.ReferenceTables) error{
		insertLocations, insertP2P, insertAccessorials, insertPalletization, insertStaticRates,
	}
	for _, write := range writers {
		if err := write(ctx, tx, tables); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SeedFromJSON replaces every table with the JSON document read from r.
func (s *ReferenceStore) SeedFromJSON(ctx context.Context, r io.Reader) error {
	var tables model.ReferenceTables
	if err := json.NewDecoder(r).Decode(&tables); err != nil {
		return fmt.Errorf("failed to decode reference seed: %w", err)
	}
	return s.Replace(ctx, &tables)
}

// SeedFromFile is SeedFromJSON over a file.
func (s *ReferenceStore) SeedFromFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return s.SeedFromJSON(ctx, f)
}

func loadLocations(ctx context.Context, tx *sql.Tx, t *model.ReferenceTables) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT fba_code, fba_zip, fba_city, fba_state_code, fpod_zip, fpod_city, fpod_unloc,
		       fpod_state_code, fpod_cfs_name, last_10_weeks, last_1_week, last_3_weeks,
		       preset_bucket, loadability, consolidator, coast
		FROM fba_locations ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to load fba_locations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var l model.FBALocation
		if err := rows.Scan(&l.FBACode, &l.FBAZip, &l.FBACity, &l.FBAStateCode, &l.FPODZip, &l.FPODCity, &l.FPODUnloc,
			&l.FPODStateCode, &l.FPODCFSName, &l.Last10Weeks, &l.Last1Week, &l.Last3Weeks,
			&l.PresetBucket, &l.Loadability, &l.Consolidator, &l.Coast); err != nil {
			return err
		}
		t.Locations = append(t.Locations, l)
	}
	return rows.Err()
}

func loadP2P(ctx context.Context, tx *sql.Tx, t *model.ReferenceTables) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT p2p_type, carrier_scac, pol_name, pol_unloc, fpod_name, fpod_unloc, origin_charges_inr,
		       oih, ocean_freight_usd, dih, drayage_devanning_usd, total_cost_usd, loadability,
		       per_cbm_usd, notes, valid_from, valid_to
		FROM p2p_tariffs ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to load p2p_tariffs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			p        model.P2PTariff
			p2pType  string
			from, to string
		)
		if err := rows.Scan(&p2pType, &p.CarrierSCAC, &p.POLName, &p.POLUnloc, &p.FPODName, &p.FPODUnloc, &p.OriginChargesINR,
			&p.OIH, &p.OceanFreightUSD, &p.DIH, &p.DrayageDevanningUSD, &p.TotalCostUSD, &p.Loadability,
			&p.PerCBMUSD, &p.Notes, &from, &to); err != nil {
			return err
		}
		console, ok := model.LookupConsoleType(p2pType)
		if !ok || !console.Tariff() {
			return fmt.Errorf("p2p tariff %s-%s: %w %q", p.POLUnloc, p.FPODUnloc, ErrInvalidConsoleType, p2pType)
		}
		p.P2PType = console
		p.ValidityWindow = parseWindow(from, to)
		t.P2P = append(t.P2P, p)
	}
	return rows.Err()
}

func loadAccessorials(ctx context.Context, tx *sql.Tx, t *model.ReferenceTables) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT charge_head, fpod, location_unloc, currency, amount FROM accessorials ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to load accessorials: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var a model.Accessorial
		if err := rows.Scan(&a.ChargeHead, &a.FPOD, &a.LocationUnloc, &a.Currency, &a.Amount); err != nil {
			return err
		}
		t.Accessorials = append(t.Accessorials, a)
	}
	return rows.Err()
}

func loadPalletization(ctx context.Context, tx *sql.Tx, t *model.ReferenceTables) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT service_type, fpod, fpod_unloc, currency, amount FROM palletization ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to load palletization: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var p model.PalletizationCharge
		if err := rows.Scan(&p.ServiceType, &p.FPOD, &p.FPODUnloc, &p.Currency, &p.Amount); err != nil {
			return err
		}
		t.Palletization = append(t.Palletization, p)
	}
	return rows.Err()
}

func loadStaticRates(ctx context.Context, tx *sql.Tx, t *model.ReferenceTables) error {
	rows, err := tx.QueryContext(ctx, `
		SELECT delivery_type, origin_zip, dest_zip, pallets, weight_lbs, rate, carrier_name, broker,
		       date_modified, valid_from, valid_to
		FROM static_rates ORDER BY id`)
	if err != nil {
		return fmt.Errorf("failed to load static_rates: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var (
			r                  model.StaticRate
			deliveryType       string
			modified, from, to string
		)
		if err := rows.Scan(&deliveryType, &r.OriginZip, &r.DestZip, &r.Pallets, &r.WeightLbs, &r.Rate, &r.CarrierName, &r.Broker,
			&modified, &from, &to); err != nil {
			return err
		}
		if mode, ok := model.ParseRateType(deliveryType); ok {
			r.DeliveryType = mode
		} else {
			r.DeliveryType = model.RateType(deliveryType)
		}
		r.DateModified = parseDate(modified)
		r.ValidityWindow = parseWindow(from, to)
		t.StaticRates = append(t.StaticRates, r)
	}
	return rows.Err()
}

func insertLocations(ctx context.Context, tx *sql.Tx, t *model.ReferenceTables) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO fba_locations (fba_code, fba_zip, fba_city, fba_state_code, fpod_zip, fpod_city, fpod_unloc,
		                           fpod_state_code, fpod_cfs_name, last_10_weeks, last_1_week, last_3_weeks,
		                           preset_bucket, loadability, consolidator, coast)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, l := range t.Locations {
		if _, err := stmt.ExecContext(ctx, l.FBACode, l.FBAZip, l.FBACity, l.FBAStateCode, l.FPODZip, l.FPODCity, l.FPODUnloc,
			l.FPODStateCode, l.FPODCFSName, l.Last10Weeks, l.Last1Week, l.Last3Weeks,
			l.PresetBucket, l.Loadability, l.Consolidator, l.Coast); err != nil {
			return fmt.Errorf("failed to insert fba location %s: %w", l.FBACode, err)
		}
	}
	return nil
}

func insertP2P(ctx context.Context, tx *sql.Tx, t *model.ReferenceTables) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO p2p_tariffs (p2p_type, carrier_scac, pol_name, pol_unloc, fpod_name, fpod_unloc, origin_charges_inr,
		                         oih, ocean_freight_usd, dih, drayage_devanning_usd, total_cost_usd, loadability,
		                         per_cbm_usd, notes, valid_from, valid_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, p := range t.P2P {
		console, ok := model.LookupConsoleType(string(p.P2PType))
		if !ok || !console.Tariff() {
			return fmt.Errorf("p2p tariff %s-%s: %w %q", p.POLUnloc, p.FPODUnloc, ErrInvalidConsoleType, p.P2PType)
		}
		if _, err := stmt.ExecContext(ctx, string(console), p.CarrierSCAC, p.POLName, p.POLUnloc, p.FPODName, p.FPODUnloc, p.OriginChargesINR,
			p.OIH, p.OceanFreightUSD, p.DIH, p.DrayageDevanningUSD, p.TotalCostUSD, p.Loadability,
			p.PerCBMUSD, p.Notes, formatDate(p.ValidFrom), formatDate(p.ValidTo)); err != nil {
			return fmt.Errorf("failed to insert p2p tariff %s-%s: %w", p.POLUnloc, p.FPODUnloc, err)
		}
	}
	return nil
}

func insertAccessorials(ctx context.Context, tx *sql.Tx, t *model.ReferenceTables) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO accessorials (charge_head, fpod, location_unloc, currency, amount) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, a := range t.Accessorials {
		if _, err := stmt.ExecContext(ctx, a.ChargeHead, a.FPOD, a.LocationUnloc, currencyOrUSD(a.Currency), a.Amount); err != nil {
			return fmt.Errorf("failed to insert accessorial %s/%s: %w", a.LocationUnloc, a.ChargeHead, err)
		}
	}
	return nil
}

func insertPalletization(ctx context.Context, tx *sql.Tx, t *model.ReferenceTables) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO palletization (service_type, fpod, fpod_unloc, currency, amount) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, p := range t.Palletization {
		if _, err := stmt.ExecContext(ctx, p.ServiceType, p.FPOD, p.FPODUnloc, currencyOrUSD(p.Currency), p.Amount); err != nil {
			return fmt.Errorf("failed to insert palletization %s: %w", p.FPODUnloc, err)
		}
	}
	return nil
}

func insertStaticRates(ctx context.Context, tx *sql.Tx, t *model.ReferenceTables) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO static_rates (delivery_type, origin_zip, dest_zip, pallets, weight_lbs, rate, carrier_name, broker,
		                          date_modified, valid_from, valid_to)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, r := range t.StaticRates {
		if _, err := stmt.ExecContext(ctx, string(r.DeliveryType), r.OriginZip, r.DestZip, r.Pallets, r.WeightLbs, r.Rate, r.CarrierName, r.Broker,
			formatDate(r.DateModified), formatDate(r.ValidFrom), formatDate(r.ValidTo)); err != nil {
			return fmt.Errorf("failed to insert static rate %s-%s: %w", r.OriginZip, r.DestZip, err)
		}
	}
	return nil
}

func parseWindow(from, to string) model.ValidityWindow {
	return model.ValidityWindow{ValidFrom: parseDate(from), ValidTo: parseDate(to)}
}

// parseDate accepts dates and RFC 3339 timestamps; anything else is an
// open bound.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func currencyOrUSD(c string) string {
	if strings.TrimSpace(c) == "" {
		return "USD"
	}
	return c
}
