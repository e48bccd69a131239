package services

import (
	"context"
	"encoding/json"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentroost/rentroost-api/models"
)

func buildingRows(t *testing.T, b models.Building) *sqlmock.Rows {
	t.Helper()
	blob, err := json.Marshal(b.Units)
	require.NoError(t, err)
	return sqlmock.NewRows([]string{"id", "owner_id", "name", "units_count", "address", "units", "version"}).
		AddRow(b.ID, b.OwnerID, b.Name, b.UnitsCount, b.Address, blob, b.Version)
}

func TestBuildingCreateMintsUnits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO buildings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO audit_logs").WillReturnResult(sqlmock.NewResult(0, 1))

	svc := NewBuildingService(db)
	building, err := svc.Create(context.Background(), "owner1", models.CreateBuildingRequest{Name: "Sunrise", UnitsCount: 3})
	require.NoError(t, err)

	assert.Equal(t, 3, building.UnitsCount)
	require.Len(t, building.Units, 3)
	assert.Equal(t, "Unit 1", building.Units[0].Name)
	assert.Equal(t, "Unit 3", building.Units[2].Name)
	for _, unit := range building.Units {
		assert.NotEmpty(t, unit.ID)
		assert.Nil(t, unit.Tenant)
	}
	assert.Equal(t, 1, building.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingGetByIDNormalizes(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Legacy document: tenant with nil ledger arrays, no previousTenants.
	stored := models.Building{
		ID: "b1", OwnerID: "owner1", Name: "Sunrise", UnitsCount: 1, Version: 4,
		Units: []models.Unit{
			{ID: "u1", Name: "Unit 1", Tenant: &models.Tenant{ID: "t1", Name: "Asha", Active: true}},
		},
	}
	mock.ExpectQuery("SELECT (.+) FROM buildings").WithArgs("b1", "owner1").WillReturnRows(buildingRows(t, stored))

	svc := NewBuildingService(db)
	b, err := svc.GetByID(context.Background(), "b1", "owner1")
	require.NoError(t, err)

	require.Len(t, b.Units, 1)
	assert.NotNil(t, b.Units[0].PreviousTenants)
	assert.NotNil(t, b.Units[0].Tenant.RentPayments)
	assert.NotNil(t, b.Units[0].Tenant.ElectricityRecords)
	assert.Equal(t, 4, b.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM buildings").
		WithArgs("missing", "owner1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "name", "units_count", "address", "units", "version"}))

	svc := NewBuildingService(db)
	_, err = svc.GetByID(context.Background(), "missing", "owner1")
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "building", nferr.Resource)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildingUpdateNotOwned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE buildings").WillReturnResult(sqlmock.NewResult(0, 0))

	svc := NewBuildingService(db)
	err = svc.Update(context.Background(), &models.Building{ID: "b1", OwnerID: "intruder", Units: []models.Unit{}})
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveTenantByPhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stored := models.Building{
		ID: "b1", OwnerID: "owner1", Name: "Sunrise", UnitsCount: 2, Address: "12 Lake Road", Version: 1,
		Units: []models.Unit{
			{ID: "u1", Name: "Unit 1", Floor: "1", Tenant: &models.Tenant{
				ID: "t1", Name: "Asha", ContactNo: "9876543210", Active: true,
			}},
			{ID: "u2", Name: "Unit 2", PreviousTenants: []models.Tenant{
				{ID: "t0", Name: "Ravi", ContactNo: "9000000000", Active: false},
			}},
		},
	}
	mock.ExpectQuery("SELECT (.+) FROM buildings").WillReturnRows(buildingRows(t, stored))

	svc := NewBuildingService(db)
	tenant, dashboard, err := svc.FindActiveTenantByPhone(context.Background(), "9876543210")
	require.NoError(t, err)

	assert.Equal(t, "t1", tenant.ID)
	assert.Equal(t, "b1", dashboard.BuildingID)
	assert.Equal(t, "Sunrise", dashboard.BuildingName)
	assert.Equal(t, "u1", dashboard.UnitID)
	assert.Equal(t, "12 Lake Road", dashboard.Address)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActiveTenantIgnoresArchived(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	stored := models.Building{
		ID: "b1", OwnerID: "owner1", Name: "Sunrise", UnitsCount: 1, Version: 1,
		Units: []models.Unit{
			{ID: "u1", Name: "Unit 1", PreviousTenants: []models.Tenant{
				{ID: "t0", Name: "Ravi", ContactNo: "9000000000", Active: false},
			}},
		},
	}
	mock.ExpectQuery("SELECT (.+) FROM buildings").WillReturnRows(buildingRows(t, stored))

	svc := NewBuildingService(db)
	_, _, err = svc.FindActiveTenantByPhone(context.Background(), "9000000000")
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
