package catalog

import (
	"context"
	"errors"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"

	"github.com/typelab/typelab/lib/infra"
	"github.com/typelab/typelab/xlog"
)

// productRecord is the persisted shape of Product.
type productRecord struct {
	ID     uint    `gorm:"primarykey"`
	Name   string  `gorm:"uniqueIndex;not null"`
	Price  float64 `gorm:"not null"`
	Rating float64 `gorm:"not null"`
}

func (productRecord) TableName() string {
	return "products"
}

func (r productRecord) toProduct() Product {
	return Product{
		Name:   r.Name,
		Price:  r.Price,
		Rating: r.Rating,
	}
}

// Store persists products in sqlite through GORM.
type Store struct {
	db *gorm.DB
}

// OpenStore opens (and migrates) the sqlite database at dsn.
// Use "file::memory:?cache=shared" for an in-memory store.
func OpenStore(dsn string, logger xlog.XLogger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: xlog.NewGormXLogger(logger,
			xlog.WithGormXLoggerLogLevel(glogger.Warn),
			xlog.WithGormXLoggerIgnoreRecord404Err(),
		),
	})
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "catalog store open failed")
	}
	if err = db.AutoMigrate(&productRecord{}); err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "catalog store migration failed")
	}
	return &Store{db: db}, nil
}

// Save inserts p, or updates its price and rating when a product
// with the same name already exists.
func (s *Store) Save(ctx context.Context, p Product) error {
	if len(p.Name) == 0 {
		return infra.NewErrorStack("product name must not be empty")
	}
	record := productRecord{
		Name:   p.Name,
		Price:  p.Price,
		Rating: p.Rating,
	}
	err := s.db.WithContext(ctx).
		Where(productRecord{Name: p.Name}).
		Assign(productRecord{Price: p.Price, Rating: p.Rating}).
		FirstOrCreate(&record).Error
	return infra.WrapErrorStack(err)
}

// All returns every product ordered by name.
func (s *Store) All(ctx context.Context) ([]Product, error) {
	var records []productRecord
	if err := s.db.WithContext(ctx).Order("name asc").Find(&records).Error; err != nil {
		return nil, infra.WrapErrorStack(err)
	}
	products := make([]Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toProduct())
	}
	return products, nil
}

// ByMinRating returns the products rated at least minRating, best
// rated first.
func (s *Store) ByMinRating(ctx context.Context, minRating float64) ([]Product, error) {
	var records []productRecord
	err := s.db.WithContext(ctx).
		Where("rating >= ?", minRating).
		Order("rating desc").
		Find(&records).Error
	if err != nil {
		return nil, infra.WrapErrorStack(err)
	}
	products := make([]Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toProduct())
	}
	return products, nil
}

// MostExpensive returns the priciest stored product. ok is false
// when the store is empty.
func (s *Store) MostExpensive(ctx context.Context) (Product, bool, error) {
	var record productRecord
	err := s.db.WithContext(ctx).Order("price desc, id asc").First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, infra.WrapErrorStack(err)
	}
	return record.toProduct(), true, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return infra.WrapErrorStack(err)
	}
	return infra.WrapErrorStack(sqlDB.Close())
}
