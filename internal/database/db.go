package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open dials MySQL and verifies the connection with a short ping before
// returning the pool. parseTime maps DATETIME columns onto time.Time and
// loc=UTC keeps every scanned timestamp in UTC, the same zone reservation
// windows are validated and stored in.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn(user, pass, host, port, name))
	if err != nil {
		return nil, err
	}

	// Idle is kept equal to open so bursts of bookings reuse warm
	// connections instead of redialing.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// dsn assembles the driver connection string. The credential part omits the
// colon when no password is set so local root-without-password setups work.
func dsn(user, pass, host, port, name string) string {
	cred := user
	if pass != "" {
		cred = user + ":" + pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		cred, host, port, name)
}
