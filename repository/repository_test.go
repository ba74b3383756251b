package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Pelito1/PrimeMarket-back/config"
	"github.com/Pelito1/PrimeMarket-back/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"}, nil)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func mkProduct(t *testing.T, db *gorm.DB, name string, price string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{Name: name, Price: decimal.RequireFromString(price), Stock: stock}
	require.NoError(t, NewProductRepository(db).Create(context.Background(), p))
	return p
}

func TestInitDB_RejectsUnknownDriver(t *testing.T) {
	_, err := InitDB(config.DatabaseConfig{Driver: "oracle"}, nil)
	assert.Error(t, err)
}

func TestProductRepository_DecrementStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	p := mkProduct(t, db, "Keyboard", "49.90", 5)

	require.NoError(t, repo.DecrementStock(ctx, p.ID, 3))
	stock, err := repo.FindStock(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stock)

	err = repo.DecrementStock(ctx, p.ID, 3)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "available 2, requested 3")

	stock, err = repo.FindStock(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stock, "a rejected decrement must not change stock")

	require.NoError(t, repo.DecrementStock(ctx, p.ID, 2))
	stock, _ = repo.FindStock(ctx, p.ID)
	assert.Equal(t, 0, stock)
}

func TestProductRepository_DecrementStock_UnknownProductAndBadQuantity(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	err := repo.DecrementStock(ctx, 404, 1)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	assert.ErrorIs(t, err, models.ErrNotFound)

	p := mkProduct(t, db, "Mouse", "10", 1)
	assert.ErrorIs(t, repo.DecrementStock(ctx, p.ID, 0), models.ErrInvalidInput)
	assert.ErrorIs(t, repo.DecrementStock(ctx, p.ID, -1), models.ErrInvalidInput)
}

func TestProductRepository_UpdateLeavesStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	p := mkProduct(t, db, "Monitor", "199", 4)

	stale := *p
	require.NoError(t, repo.DecrementStock(ctx, p.ID, 3))
	stale.Name = "Monitor 27"
	require.NoError(t, repo.Update(ctx, &stale))

	loaded, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Monitor 27", loaded.Name)
	assert.Equal(t, 1, loaded.Stock)

	require.NoError(t, repo.AdjustStock(ctx, p.ID, 5))
	err = repo.AdjustStock(ctx, p.ID, -7)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "available 6, adjustment -7")
	require.NoError(t, repo.AdjustStock(ctx, p.ID, -6))
	stock, _ := repo.FindStock(ctx, p.ID)
	assert.Equal(t, 0, stock)
}

func TestOrderReferenceCounts(t *testing.T) {
	db := newTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()
	p := mkProduct(t, db, "Cable", "5", 10)
	customer := &models.Customer{Names: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	require.NoError(t, repos.Customers.Create(ctx, customer))
	order := &models.Order{PurchaseDate: time.Now().UTC(), CustomerID: customer.ID, Status: models.DefaultOrderStatus}
	require.NoError(t, repos.Orders.Create(ctx, order))
	require.NoError(t, repos.OrderDetails.Create(ctx, &models.OrderDetail{OrderID: order.ID, ProductID: p.ID, Quantity: 1}))

	n, err := repos.Orders.CountByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repos.OrderDetails.CountByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = repos.OrderDetails.CountByProduct(ctx, p.ID+1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProductRepository_Queries(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	brand := &models.Brand{Name: "Acme"}
	require.NoError(t, db.Create(brand).Error)

	for i, price := range []string{"5", "15", "25", "35", "45"} {
		p := &models.Product{Name: "Widget", Price: decimal.RequireFromString(price), Stock: i, BrandID: &brand.ID}
		if i == 4 {
			p.Name = "Gadget"
			p.Description = "a shiny widget"
		}
		require.NoError(t, repo.Create(ctx, p))
	}

	top, err := repo.FindTop(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, uint(1), top[0].ID)
	require.NotNil(t, top[0].Brand)
	assert.Equal(t, "Acme", top[0].Brand.Name)

	found, err := repo.Search(ctx, "widget")
	require.NoError(t, err)
	assert.Len(t, found, 5, "name or description match")

	inRange, err := repo.FindByPriceRange(ctx, decimal.NewFromInt(10), decimal.NewFromInt(40), 1, 2)
	require.NoError(t, err)
	require.Len(t, inRange, 2)
	assert.True(t, inRange[0].Price.Equal(decimal.NewFromInt(15)))

	secondPage, err := repo.FindByPriceRange(ctx, decimal.NewFromInt(10), decimal.NewFromInt(40), 2, 2)
	require.NoError(t, err)
	require.Len(t, secondPage, 1)
	assert.True(t, secondPage[0].Price.Equal(decimal.NewFromInt(35)))

	count, err := repo.CountByPriceRange(ctx, decimal.NewFromInt(10), decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	page, err := repo.FindPage(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	all, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), all)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
}

func TestProductRepository_CategoryAndSeasonLinks(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	categories := NewCategoryRepository(db)
	seasons := NewSeasonRepository(db)
	ctx := context.Background()

	p := mkProduct(t, db, "Lamp", "20", 3)
	a := &models.Category{Name: "Home"}
	b := &models.Category{Name: "Lighting"}
	require.NoError(t, categories.Create(ctx, a))
	require.NoError(t, categories.Create(ctx, b))
	require.NoError(t, categories.LinkProducts(ctx, a.ID, p.ID))
	s := &models.Season{Name: "Winter", StartDate: time.Now(), EndDate: time.Now().Add(time.Hour), Status: "1"}
	require.NoError(t, seasons.Create(ctx, s))
	require.NoError(t, seasons.AddProduct(ctx, s.ID, p.ID))

	require.NoError(t, repo.ReplaceCategory(ctx, p.ID, b.ID))
	inA, err := repo.FindByCategory(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, inA)
	inB, err := repo.FindByCategory(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, inB, 1)
	assert.Equal(t, p.ID, inB[0].ID)

	inSeason, err := repo.FindBySeason(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, inSeason, 1)

	require.NoError(t, repo.DeleteLinks(ctx, p.ID))
	inB, _ = repo.FindByCategory(ctx, b.ID)
	assert.Empty(t, inB)
	inSeason, _ = repo.FindBySeason(ctx, s.ID)
	assert.Empty(t, inSeason)
}

func TestCategoryRepository_ReparentAndLinks(t *testing.T) {
	db := newTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	root := &models.Category{Name: "Root"}
	require.NoError(t, repo.Create(ctx, root))
	mid := &models.Category{Name: "Mid", ParentCategoryID: &root.ID}
	require.NoError(t, repo.Create(ctx, mid))
	leaf1 := &models.Category{Name: "Leaf 1", ParentCategoryID: &mid.ID}
	leaf2 := &models.Category{Name: "Leaf 2", ParentCategoryID: &mid.ID}
	require.NoError(t, repo.Create(ctx, leaf1))
	require.NoError(t, repo.Create(ctx, leaf2))

	require.NoError(t, repo.Reparent(ctx, mid.ID, &root.ID))
	subs, err := repo.FindSubcategories(ctx, root.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 3)

	require.NoError(t, repo.Reparent(ctx, root.ID, nil))
	top, err := repo.FindTopLevel(ctx)
	require.NoError(t, err)
	assert.Len(t, top, 4)

	p1 := mkProduct(t, db, "A", "1", 1)
	p2 := mkProduct(t, db, "B", "1", 1)
	require.NoError(t, repo.LinkProducts(ctx, root.ID, p1.ID))
	require.NoError(t, repo.LinkProducts(ctx, root.ID, p1.ID, p2.ID), "existing links are ignored")
	ids, err := repo.ProductIDs(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{p1.ID, p2.ID}, ids)

	require.NoError(t, repo.UnlinkProduct(ctx, root.ID, p1.ID))
	ids, _ = repo.ProductIDs(ctx, root.ID)
	assert.Equal(t, []uint{p2.ID}, ids)

	require.NoError(t, repo.UnlinkAllProducts(ctx, root.ID))
	ids, _ = repo.ProductIDs(ctx, root.ID)
	assert.Empty(t, ids)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, models.ErrCategoryNotFound)
}

func TestOrderRepository_TotalsAndDetails(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderRepository(db)
	details := NewOrderDetailRepository(db)
	ctx := context.Background()

	p1 := mkProduct(t, db, "Pen", "1.25", 10)
	p2 := mkProduct(t, db, "Notebook", "3.10", 10)

	order := &models.Order{PurchaseDate: time.Now().UTC(), CustomerID: 1, Status: "Pending"}
	require.NoError(t, orders.Create(ctx, order))
	require.NotZero(t, order.ID)

	require.NoError(t, details.Create(ctx, &models.OrderDetail{OrderID: order.ID, ProductID: p1.ID, Quantity: 4}))
	require.NoError(t, details.Create(ctx, &models.OrderDetail{OrderID: order.ID, ProductID: p2.ID, Quantity: 2}))

	total, err := orders.ComputeTotal(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "11.2", total.String())

	require.NoError(t, orders.UpdateTotal(ctx, order.ID, total))
	loaded, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, loaded.Total.Equal(decimal.RequireFromString("11.20")))
	assert.Len(t, loaded.OrderDetails, 2)

	require.NoError(t, details.UpdateQuantity(ctx, order.ID, p1.ID, 1))
	d, err := details.Find(ctx, order.ID, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Quantity)

	require.NoError(t, orders.UpdateStatus(ctx, order.ID, "Shipped"))
	byCustomer, err := orders.FindByCustomerID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, "Shipped", byCustomer[0].Status)

	require.NoError(t, details.DeleteByOrder(ctx, order.ID))
	require.NoError(t, orders.Delete(ctx, order.ID))
	_, err = orders.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
	_, err = details.Find(ctx, order.ID, p1.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestCustomerRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomerRepository(db)
	ctx := context.Background()

	c := &models.Customer{Names: "Ana", Email: "ana@example.com", Status: "1", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, c))
	require.NotZero(t, c.ID)

	byEmail, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, c.ID, byEmail.ID)
	assert.Equal(t, "hash", byEmail.PasswordHash)

	c.Names = "Ana María"
	c.Email = "changed@example.com"
	require.NoError(t, repo.Update(ctx, c))
	loaded, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", loaded.Names)
	assert.Equal(t, "ana@example.com", loaded.Email, "email is not editable")

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err = repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, models.ErrCustomerNotFound)
}

func TestSeasonRepository_FindActive(t *testing.T) {
	db := newTestDB(t)
	repo := NewSeasonRepository(db)
	ctx := context.Background()
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	running := &models.Season{Name: "Summer", StartDate: now.AddDate(0, 0, -10), EndDate: now.AddDate(0, 0, 10), Status: "1"}
	ended := &models.Season{Name: "Spring", StartDate: now.AddDate(0, -3, 0), EndDate: now.AddDate(0, 0, -1), Status: "1"}
	disabled := &models.Season{Name: "Hidden", StartDate: now, EndDate: now.AddDate(0, 1, 0), Status: "0"}
	for _, s := range []*models.Season{running, ended, disabled} {
		require.NoError(t, repo.Create(ctx, s))
	}

	active, err := repo.FindActive(ctx, now)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Summer", active[0].Name)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, repo.UpdateStatus(ctx, disabled.ID, "1"))
	active, _ = repo.FindActive(ctx, now)
	assert.Len(t, active, 2)

	require.NoError(t, repo.Delete(ctx, running.ID))
	_, err = repo.FindByID(ctx, running.ID)
	assert.ErrorIs(t, err, models.ErrSeasonNotFound)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()
	p := mkProduct(t, db, "Chair", "80", 4)

	boom := errors.New("boom")
	err := uow.Do(ctx, func(repos Repositories) error {
		if err := repos.Customers.Create(ctx, &models.Customer{Names: "Rollback", Email: "rb@example.com", PasswordHash: "x"}); err != nil {
			return err
		}
		if err := repos.Products.DecrementStock(ctx, p.ID, 4); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	customers, err := NewCustomerRepository(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
	stock, err := NewProductRepository(db).FindStock(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stock)
}

func TestUnitOfWork_Commits(t *testing.T) {
	db := newTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	err := uow.Do(ctx, func(repos Repositories) error {
		return repos.Categories.Create(ctx, &models.Category{Name: "Books"})
	})
	require.NoError(t, err)

	all, err := NewCategoryRepository(db).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSeed_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, zap.NewNop()))
	require.NoError(t, Seed(ctx, db, zap.NewNop()))

	products := NewProductRepository(db)
	count, err := products.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(seedProducts)), count)

	top, err := NewCategoryRepository(db).FindTopLevel(ctx)
	require.NoError(t, err)
	require.Len(t, top, len(seedCategories))
	ids, err := NewCategoryRepository(db).ProductIDs(ctx, top[0].ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	var brands int64
	require.NoError(t, db.Model(&models.Brand{}).Count(&brands).Error)
	assert.Equal(t, int64(len(seedBrands)), brands)
	for name, brand := range map[string]string{
		"Wireless Headphones": "Acme",
		"USB-C Charger":       "Acme",
		"Desk Lamp":           "Northwind",
	} {
		found, err := products.Search(ctx, name)
		require.NoError(t, err)
		require.Len(t, found, 1, name)
		require.NotNil(t, found[0].Brand, name)
		assert.Equal(t, brand, found[0].Brand.Name, name)
	}
}
