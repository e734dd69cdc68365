package db

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"todoapi/internal/model"
)

// MySQL wraps a GORM connection so it can be pinged and closed like the other stores.
type MySQL struct {
	DB *gorm.DB
}

// NewMySQL returns a connected GORM DB instance.
// Driver errors are translated so duplicate keys surface as gorm.ErrDuplicatedKey.
func NewMySQL(dsn string) (*MySQL, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return &MySQL{DB: db}, nil
}

// AutoMigrate creates the users and todos tables.
func (m *MySQL) AutoMigrate() error {
	return m.DB.AutoMigrate(&model.User{}, &model.Todo{})
}

// Ping checks the underlying connection pool.
func (m *MySQL) Ping(ctx context.Context) error {
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (m *MySQL) Close(_ context.Context) error {
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
