package model

// Location represents a row in the `locations` table. Locations are
// read-mostly reference data seeded once at first boot; each location
// owns zero or more rooms.
//
// Fields:
//  ID   – primary key identifier.
//  City – city the location is in.
type Location struct {
	ID   uint64 // locations.id
	City string // locations.city
}

// Room represents a bookable meeting room in the `rooms` table. A room
// belongs to exactly one location and owns zero or more reservations.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – display name of the room.
//  Capacity   – number of seats (nil if unspecified).
//  LocationID – foreign key into the locations table.
type Room struct {
	ID         uint64 // rooms.id
	Name       string // rooms.name
	Capacity   *int32 // rooms.capacity (nullable)
	LocationID uint64 // rooms.location_id
}
