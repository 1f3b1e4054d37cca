package quotations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/malonic/quotehub-backend/pkg/db/models"
	"github.com/malonic/quotehub-backend/pkg/enums"
)

func setupQuotationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	clients := `
CREATE TABLE IF NOT EXISTS clients (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT,
  phone TEXT,
  address TEXT,
  tax_id TEXT,
  notes TEXT,
  created_at DATETIME,
  updated_at DATETIME,
  deleted_at DATETIME
);`
	quotations := `
CREATE TABLE IF NOT EXISTS quotations (
  id TEXT PRIMARY KEY,
  number TEXT NOT NULL UNIQUE,
  client_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'draft',
  currency TEXT NOT NULL DEFAULT 'EUR',
  discount_pct NUMERIC NOT NULL DEFAULT 0,
  tax_rate_pct NUMERIC NOT NULL DEFAULT 21,
  subtotal NUMERIC NOT NULL DEFAULT 0,
  tax_amount NUMERIC NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL DEFAULT 0,
  notes TEXT,
  valid_until DATETIME,
  created_by TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	quotationItems := `
CREATE TABLE IF NOT EXISTS quotation_items (
  id TEXT PRIMARY KEY,
  quotation_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  sketch TEXT,
  rate NUMERIC,
  quantity INTEGER NOT NULL DEFAULT 1,
  area_sqm NUMERIC NOT NULL,
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(clients).Error)
	require.NoError(t, db.Exec(quotations).Error)
	require.NoError(t, db.Exec(quotationItems).Error)
	return db
}

func newClient(t *testing.T, db *gorm.DB, name string) *models.Client {
	t.Helper()

	client := &models.Client{
		ID:   uuid.New(),
		Name: name,
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func newQuotation(t *testing.T, db *gorm.DB, client *models.Client, number string, status enums.QuotationStatus, created time.Time, items ...models.QuotationItem) *models.Quotation {
	t.Helper()

	for i := range items {
		items[i].ID = uuid.New()
		items[i].Position = i
	}
	quotation := &models.Quotation{
		ID:         uuid.New(),
		Number:     number,
		ClientID:   client.ID,
		Status:     status,
		Currency:   "EUR",
		TaxRatePct: decimal.NewFromInt(21),
		CreatedBy:  uuid.New(),
		Items:      items,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
	require.NoError(t, db.Create(quotation).Error)
	return quotation
}

func lineItem(name string, total string) models.QuotationItem {
	price := decimal.RequireFromString(total)
	return models.QuotationItem{
		Name:      name,
		Quantity:  1,
		UnitPrice: price,
		LineTotal: price,
	}
}

func TestRepositoryNextNumber_perYearSequence(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	client := newClient(t, db, "Acme Windows")

	at := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	number, err := repo.NextNumber(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, "Q-2026-0001", number)

	newQuotation(t, db, client, "Q-2026-0001", enums.QuotationStatusDraft, at, lineItem("Window", "120.00"))
	newQuotation(t, db, client, "Q-2025-0040", enums.QuotationStatusSent, at.AddDate(-1, 0, 0), lineItem("Door", "300.00"))

	number, err = repo.NextNumber(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, "Q-2026-0002", number)

	number, err = repo.NextNumber(context.Background(), at.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "Q-2025-0002", number)
}

func TestRepositoryFindByID_preloadsOrderedItems(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	client := newClient(t, db, "Acme Windows")

	created := newQuotation(t, db, client, "Q-2026-0001", enums.QuotationStatusDraft, time.Now().UTC(),
		lineItem("First", "100.00"), lineItem("Second", "200.00"))

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Client)
	assert.Equal(t, "Acme Windows", found.Client.Name)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "First", found.Items[0].Name)
	assert.Equal(t, "Second", found.Items[1].Name)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryList_filtersByStatusAndClient(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	acme := newClient(t, db, "Acme Windows")
	other := newClient(t, db, "Otro Cliente")

	now := time.Now().UTC()
	newQuotation(t, db, acme, "Q-2026-0001", enums.QuotationStatusDraft, now.Add(-2*time.Hour), lineItem("A", "10.00"))
	newQuotation(t, db, acme, "Q-2026-0002", enums.QuotationStatusSent, now.Add(-time.Hour), lineItem("B", "20.00"))
	newQuotation(t, db, other, "Q-2026-0003", enums.QuotationStatusDraft, now, lineItem("C", "30.00"))

	rows, total, err := repo.List(context.Background(), ListQuotationsQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, rows, 3)
	assert.Equal(t, "Q-2026-0003", rows[0].Number)
	require.NotNil(t, rows[0].Client)
	assert.Equal(t, "Otro Cliente", rows[0].Client.Name)

	draft := enums.QuotationStatusDraft
	rows, total, err = repo.List(context.Background(), ListQuotationsQuery{Status: &draft})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, rows, 2)

	rows, total, err = repo.List(context.Background(), ListQuotationsQuery{Status: &draft, ClientID: &acme.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Q-2026-0001", rows[0].Number)
}

func TestRepositoryReplaceItems_swapsRows(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	client := newClient(t, db, "Acme Windows")

	quotation := newQuotation(t, db, client, "Q-2026-0001", enums.QuotationStatusDraft, time.Now().UTC(),
		lineItem("Old A", "100.00"), lineItem("Old B", "200.00"))

	replacement := lineItem("New only", "450.00")
	replacement.Position = 0
	quotation.Subtotal = decimal.RequireFromString("450.00")
	quotation.Total = decimal.RequireFromString("544.50")
	require.NoError(t, repo.ReplaceItems(context.Background(), quotation, []models.QuotationItem{replacement}))

	found, err := repo.FindByID(context.Background(), quotation.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "New only", found.Items[0].Name)
	assert.True(t, found.Subtotal.Equal(decimal.RequireFromString("450.00")))

	var orphans int64
	require.NoError(t, db.Model(&models.QuotationItem{}).Count(&orphans).Error)
	assert.Equal(t, int64(1), orphans)
}

func TestRepositoryNextNumber_survivesDeletes(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	client := newClient(t, db, "Acme Windows")

	at := time.Date(2026, time.March, 4, 10, 0, 0, 0, time.UTC)
	first := newQuotation(t, db, client, "Q-2026-0001", enums.QuotationStatusDraft, at, lineItem("A", "10.00"))
	newQuotation(t, db, client, "Q-2026-0002", enums.QuotationStatusDraft, at, lineItem("B", "20.00"))

	affected, err := repo.Delete(context.Background(), first.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), affected)

	number, err := repo.NextNumber(context.Background(), at)
	require.NoError(t, err)
	assert.Equal(t, "Q-2026-0003", number)

	require.NoError(t, repo.Create(context.Background(), &models.Quotation{
		ID:         uuid.New(),
		Number:     number,
		ClientID:   client.ID,
		Status:     enums.QuotationStatusDraft,
		Currency:   "EUR",
		TaxRatePct: decimal.NewFromInt(21),
		CreatedBy:  uuid.New(),
	}))
}

func TestRepositoryDelete_reportsAffected(t *testing.T) {
	db := setupQuotationsTestDB(t)
	repo := NewRepository(db)
	client := newClient(t, db, "Acme Windows")

	quotation := newQuotation(t, db, client, "Q-2026-0001", enums.QuotationStatusDraft, time.Now().UTC(), lineItem("A", "10.00"))

	affected, err := repo.Delete(context.Background(), quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	affected, err = repo.Delete(context.Background(), quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)
}
