package rooms

// Room is a bookable unit. CurrentOccupancy is a display hint carried by the
// catalog; live occupancy is always counted from residents.
type Room struct {
	ID               int64  `json:"room_id" yaml:"room_id"`
	Number           string `json:"room_number" yaml:"room_number"`
	MaxCapacity      int    `json:"max_capacity" yaml:"max_capacity"`
	CurrentOccupancy int    `json:"current_occupancy" yaml:"current_occupancy"`
}

// DefaultRoomID is used when a resident's room cannot be resolved.
const DefaultRoomID int64 = 101
