package db

import (
	"server/config"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var Instance *gorm.DB

func Init() {
	var (
		db  *gorm.DB
		err error
	)
	opts := &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}
	if config.MYSQL_DSN != "" {
		db, err = gorm.Open(mysql.Open(config.MYSQL_DSN), opts)
	} else {
		file := config.SQLITE_FILE
		if file == "" {
			file = "capsave.db"
		}
		db, err = gorm.Open(sqlite.Open(file), opts)
	}
	if err != nil || db == nil {
		panic(err)
	}
	Instance = db
}
