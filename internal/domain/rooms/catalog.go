package rooms

import "sort"

// Catalog is the fixed room list. It is not persisted and never changes at runtime.
type Catalog struct {
	rooms []Room
	byID  map[int64]Room
}

func NewCatalog(rooms []Room) *Catalog {
	sorted := make([]Room, len(rooms))
	copy(sorted, rooms)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[int64]Room, len(sorted))
	for _, room := range sorted {
		byID[room.ID] = room
	}
	return &Catalog{rooms: sorted, byID: byID}
}

func (c *Catalog) List() []Room {
	result := make([]Room, len(c.rooms))
	copy(result, c.rooms)
	return result
}

func (c *Catalog) Get(id int64) (Room, error) {
	room, ok := c.byID[id]
	if !ok {
		return Room{}, ErrRoomNotFound
	}
	return room, nil
}

// Number returns the display number, or "" for an unknown room.
func (c *Catalog) Number(id int64) string {
	return c.byID[id].Number
}

func (c *Catalog) TotalCapacity() int {
	total := 0
	for _, room := range c.rooms {
		total += room.MaxCapacity
	}
	return total
}
