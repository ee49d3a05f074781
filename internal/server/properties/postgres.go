package properties

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/whoestate/backend/internal/common"
	"github.com/whoestate/backend/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) WithTx(tx dbx.DBTX) Repository {
	return &PostgresRepository{db: tx}
}

const propertyColumns = `id, title, description, price, gross, net, number_of_room,
	building_age, floor, number_of_floors, heating, number_of_bathrooms, kitchen,
	balcony, lift, parking, furnished, availability, dues, eligible_for_loan,
	title_deed_status, images, location, user_id, property_type, listing_type,
	sub_type, selected_features, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProperty(row rowScanner) (*Property, error) {
	p := &Property{}
	var images, location, features []byte

	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Price, &p.Gross, &p.Net,
		&p.NumberOfRoom, &p.BuildingAge, &p.Floor, &p.NumberOfFloors, &p.Heating,
		&p.NumberOfBathrooms, &p.Kitchen, &p.Balcony, &p.Lift, &p.Parking,
		&p.Furnished, &p.Availability, &p.Dues, &p.EligibleForLoan,
		&p.TitleDeedStatus, &images, &location, &p.UserID, &p.PropertyType,
		&p.ListingType, &p.SubType, &features, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(images, &p.Images); err != nil {
		return nil, fmt.Errorf("error decoding images: %w", err)
	}
	if err := json.Unmarshal(location, &p.Location); err != nil {
		return nil, fmt.Errorf("error decoding location: %w", err)
	}
	if err := json.Unmarshal(features, &p.SelectedFeatures); err != nil {
		return nil, fmt.Errorf("error decoding selected features: %w", err)
	}
	return p, nil
}

// jsonDocs marshals the document-valued fields for storage.
func jsonDocs(p *Property) (images, location, features []byte, err error) {
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.SelectedFeatures == nil {
		p.SelectedFeatures = map[string][]string{}
	}
	if images, err = json.Marshal(p.Images); err != nil {
		return nil, nil, nil, fmt.Errorf("error encoding images: %w", err)
	}
	if location, err = json.Marshal(p.Location); err != nil {
		return nil, nil, nil, fmt.Errorf("error encoding location: %w", err)
	}
	if features, err = json.Marshal(p.SelectedFeatures); err != nil {
		return nil, nil, nil, fmt.Errorf("error encoding selected features: %w", err)
	}
	return images, location, features, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *Property) (*Property, error) {
	images, location, features, err := jsonDocs(p)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO properties (title, description, price, gross, net,
		number_of_room, building_age, floor, number_of_floors, heating,
		number_of_bathrooms, kitchen, balcony, lift, parking, furnished,
		availability, dues, eligible_for_loan, title_deed_status, images,
		location, user_id, property_type, listing_type, sub_type, selected_features)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27)
		RETURNING id, created_at, updated_at`

	err = r.db.QueryRowContext(ctx, query,
		p.Title, p.Description, p.Price, p.Gross, p.Net, p.NumberOfRoom,
		p.BuildingAge, p.Floor, p.NumberOfFloors, p.Heating, p.NumberOfBathrooms,
		p.Kitchen, p.Balcony, p.Lift, p.Parking, p.Furnished, p.Availability,
		p.Dues, p.EligibleForLoan, p.TitleDeedStatus, images, location,
		p.UserID, p.PropertyType, p.ListingType, p.SubType, features).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	return scanProperty(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC`
	return r.queryMany(ctx, query)
}

func (r *PostgresRepository) LastSix(ctx context.Context) ([]*Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC LIMIT 6`
	return r.queryMany(ctx, query)
}

// Query builds a WHERE clause from the non-zero filters.
func (r *PostgresRepository) Query(ctx context.Context, q *Query) ([]*Property, error) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, strings.Replace(cond, "?", "$"+strconv.Itoa(len(args)), 1))
	}

	if q.City != "" {
		add(`location->>'city' = ?`, q.City)
	}
	if q.District != "" {
		add(`location->>'district' = ?`, q.District)
	}
	if q.Neighborhood != "" {
		add(`location->>'neighborhood' = ?`, q.Neighborhood)
	}
	if q.PropertyType != "" {
		add(`property_type = ?`, q.PropertyType)
	}
	if q.ListingType != "" {
		add(`listing_type = ?`, q.ListingType)
	}
	if q.SubType != "" {
		add(`sub_type = ?`, q.SubType)
	}
	if q.MinPrice != nil {
		add(`price >= ?`, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		add(`price <= ?`, *q.MaxPrice)
	}
	if q.MinNet != nil {
		add(`net >= ?`, *q.MinNet)
	}
	if q.MaxNet != nil {
		add(`net <= ?`, *q.MaxNet)
	}

	query := `SELECT ` + propertyColumns + ` FROM properties`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	return r.queryMany(ctx, query, args...)
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*Property, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Update replaces the whole listing; updated_at moves forward.
func (r *PostgresRepository) Update(ctx context.Context, id string, p *Property) (*Property, error) {
	images, location, features, err := jsonDocs(p)
	if err != nil {
		return nil, err
	}

	query := `UPDATE properties SET title = $2, description = $3, price = $4,
		gross = $5, net = $6, number_of_room = $7, building_age = $8, floor = $9,
		number_of_floors = $10, heating = $11, number_of_bathrooms = $12,
		kitchen = $13, balcony = $14, lift = $15, parking = $16, furnished = $17,
		availability = $18, dues = $19, eligible_for_loan = $20,
		title_deed_status = $21, images = $22, location = $23,
		property_type = $24, listing_type = $25, sub_type = $26,
		selected_features = $27, updated_at = now()
		WHERE id = $1
		RETURNING ` + propertyColumns

	row := r.db.QueryRowContext(ctx, query, id,
		p.Title, p.Description, p.Price, p.Gross, p.Net, p.NumberOfRoom,
		p.BuildingAge, p.Floor, p.NumberOfFloors, p.Heating, p.NumberOfBathrooms,
		p.Kitchen, p.Balcony, p.Lift, p.Parking, p.Furnished, p.Availability,
		p.Dues, p.EligibleForLoan, p.TitleDeedStatus, images, location,
		p.PropertyType, p.ListingType, p.SubType, features)

	return scanProperty(row)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
