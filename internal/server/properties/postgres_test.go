package properties

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/whoestate/backend/internal/common"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var propertyCols = []string{"id", "title", "description", "price", "gross", "net",
	"number_of_room", "building_age", "floor", "number_of_floors", "heating",
	"number_of_bathrooms", "kitchen", "balcony", "lift", "parking", "furnished",
	"availability", "dues", "eligible_for_loan", "title_deed_status", "images",
	"location", "user_id", "property_type", "listing_type", "sub_type",
	"selected_features", "created_at", "updated_at"}

func samplePropertyRow(id string) []driverValue {
	now := time.Now()
	return []driverValue{id, "Flat in Kadikoy", "bright corner flat", int64(1500000),
		int64(95), int64(80), "2+1", 12, 3, 5, "central", 1, "open", 1, "yes", "yes",
		"no", "empty", int64(500), "yes", "clear",
		[]byte(`["a.jpg","b.jpg"]`),
		[]byte(`{"city":"Istanbul","district":"Kadikoy","neighborhood":"Moda","geo":{"type":"Point","coordinates":[29.02,40.98]}}`),
		"u1", "Konut", "Satilik", "Daire",
		[]byte(`{"interior":["balcony"]}`),
		now, now}
}

type driverValue = driver.Value

func addSample(rows *sqlmock.Rows, id string) *sqlmock.Rows {
	return rows.AddRow(samplePropertyRow(id)...)
}

func TestGetByID_DecodesDocuments(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+properties\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("p1").
		WillReturnRows(addSample(sqlmock.NewRows(propertyCols), "p1"))

	got, err := repo.GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location.City != "Istanbul" || got.Location.Geo.Coordinates[0] != 29.02 {
		t.Fatalf("location not decoded: %+v", got.Location)
	}
	if len(got.Images) != 2 || got.Images[0] != "a.jpg" {
		t.Fatalf("images not decoded: %+v", got.Images)
	}
	if got.SelectedFeatures["interior"][0] != "balcony" {
		t.Fatalf("selected features not decoded: %+v", got.SelectedFeatures)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+properties\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestLastSix_Limit(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+properties\s+ORDER\s+BY\s+created_at\s+DESC\s+LIMIT\s+6\s*$`

	rows := sqlmock.NewRows(propertyCols)
	addSample(rows, "p1")
	addSample(rows, "p2")

	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := repo.LastSix(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
}

func TestQuery_FiltersComposeInOrder(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+properties\s+WHERE\s+location->>'city'\s*=\s*\$1\s+AND\s+property_type\s*=\s*\$2\s+AND\s+price\s*>=\s*\$3\s+AND\s+price\s*<=\s*\$4\s+ORDER\s+BY\s+created_at\s+DESC\s*$`

	min, max := int64(1000000), int64(2000000)
	mock.ExpectQuery(q).
		WithArgs("Istanbul", "Konut", min, max).
		WillReturnRows(addSample(sqlmock.NewRows(propertyCols), "p1"))

	got, err := repo.Query(context.Background(), &Query{
		City:         "Istanbul",
		PropertyType: "Konut",
		MinPrice:     &min,
		MaxPrice:     &max,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestQuery_NoFilters(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+properties\s+ORDER\s+BY\s+created_at\s+DESC\s*$`

	mock.ExpectQuery(q).WillReturnRows(sqlmock.NewRows(propertyCols))

	got, err := repo.Query(context.Background(), &Query{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

func TestCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT\s+COUNT\(\*\)\s+FROM\s+properties\s*$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(42)))

	n, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Fatalf("want 42, got %d", n)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`^DELETE\s+FROM\s+properties\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreate_MarshalsDocuments(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+properties\b.*RETURNING\s+id,\s*created_at,\s*updated_at`

	now := time.Now()
	mock.ExpectQuery(q).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("p1", now, now))

	p := &Property{
		Title:  "Flat in Kadikoy",
		Price:  1500000,
		UserID: "u1",
		Location: Location{City: "Istanbul", District: "Kadikoy",
			Geo: GeoPoint{Type: "Point", Coordinates: []float64{29.02, 40.98}}},
	}
	got, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "p1" {
		t.Fatalf("id not populated: %+v", got)
	}
	// nil document fields are stored as empty documents, not NULL
	if got.Images == nil || got.SelectedFeatures == nil {
		t.Fatalf("document fields must be normalized to empty values")
	}
}
