package store

import (
	"log"

	bookmodel "github.com/YOHANNES7766/AmenApp/book/repo/model"
	chatmodel "github.com/YOHANNES7766/AmenApp/chat/repo/model"
	usermodel "github.com/YOHANNES7766/AmenApp/user/repo/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB opens the postgres connection and runs migrations.
func InitDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	DB = db

	autoMigrate()

	return DB, nil
}

func autoMigrate() {
	err := DB.AutoMigrate(
		&usermodel.User{},
		&chatmodel.Conversation{},
		&chatmodel.Message{},
		&bookmodel.Book{},
		&bookmodel.BookComment{},
	)
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}
}

// CloseDB closes the underlying connection pool.
func CloseDB() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Println("failed to get sql.DB instance: ", err)
		return
	}
	if err = sqlDB.Close(); err != nil {
		log.Println("failed to close database connection: ", err)
	}
}
