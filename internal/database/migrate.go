package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/kevinwu/room-reservation/internal/utils"
)

// Migrate creates the four application tables if they do not exist yet.
// Statements are run one by one so a partial schema from an earlier boot
// is completed rather than duplicated.
func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_username (username)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS locations (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			city VARCHAR(255) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS rooms (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			capacity INT,
			location_id BIGINT UNSIGNED NOT NULL,
			CONSTRAINT fk_rooms_location FOREIGN KEY (location_id) REFERENCES locations(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT UNSIGNED NOT NULL,
			room_id BIGINT UNSIGNED NOT NULL,
			purpose VARCHAR(255) NOT NULL DEFAULT '',
			start_time DATETIME NOT NULL,
			end_time DATETIME NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			KEY idx_reservations_room_start (room_id, start_time),
			CONSTRAINT fk_reservations_user FOREIGN KEY (user_id) REFERENCES users(id),
			CONSTRAINT fk_reservations_room FOREIGN KEY (room_id) REFERENCES rooms(id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedLocation describes one location with its rooms for initial data.
type seedLocation struct {
	city  string
	rooms []seedRoom
}

type seedRoom struct {
	name     string
	capacity int32
}

var seedData = []seedLocation{
	{city: "Berlin", rooms: []seedRoom{
		{name: "Konferenzraum A", capacity: 12},
		{name: "Konferenzraum B", capacity: 6},
	}},
	{city: "Hamburg", rooms: []seedRoom{
		{name: "Elbblick", capacity: 8},
		{name: "Speicherstadt", capacity: 4},
	}},
	{city: "Stuttgart", rooms: []seedRoom{
		{name: "Projektraum 1", capacity: 10},
		{name: "Projektraum 2", capacity: 10},
	}},
}

// Seed populates locations, rooms and a demo user on first boot. Each
// section checks for existing rows before inserting, so running Seed again
// never duplicates data.
func Seed(ctx context.Context, db *sql.DB, bcryptCost int) error {
	var locations int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM locations").Scan(&locations); err != nil {
		return err
	}
	if locations == 0 {
		for _, loc := range seedData {
			res, err := db.ExecContext(ctx, "INSERT INTO locations (city) VALUES (?)", loc.city)
			if err != nil {
				return err
			}
			locID, err := res.LastInsertId()
			if err != nil {
				return err
			}
			for _, room := range loc.rooms {
				if _, err := db.ExecContext(ctx,
					"INSERT INTO rooms (name, capacity, location_id) VALUES (?,?,?)",
					room.name, room.capacity, locID); err != nil {
					return err
				}
			}
		}
		log.Printf("seed: inserted %d locations with rooms", len(seedData))
	}

	var users int64
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&users); err != nil {
		return err
	}
	if users == 0 {
		hash, err := utils.HashPassword("testpassword", bcryptCost)
		if err != nil {
			return err
		}
		if _, err := db.ExecContext(ctx,
			"INSERT INTO users (username, password_hash) VALUES (?,?)",
			"testuser", hash); err != nil {
			return err
		}
		log.Printf("seed: inserted demo user %q", "testuser")
	}
	return nil
}
