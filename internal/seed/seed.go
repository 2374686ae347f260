// Package seed holds the demo directory every empty slot starts from.
package seed

import (
	_ "embed"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
	feesdomain "pg-connect/internal/domain/fees"
	messagesdomain "pg-connect/internal/domain/messages"
	residentsdomain "pg-connect/internal/domain/residents"
	roomsdomain "pg-connect/internal/domain/rooms"
	ticketsdomain "pg-connect/internal/domain/tickets"
)

//go:embed seed.yaml
var raw []byte

type Data struct {
	Rooms     []roomsdomain.Room
	Residents []residentsdomain.Resident
	Fees      []feesdomain.FeeRecord
	Tickets   []ticketsdomain.SupportTicket
	Messages  []messagesdomain.ChatMessage
}

type file struct {
	Rooms     []roomsdomain.Room `yaml:"rooms"`
	RoomRange struct {
		From        int64 `yaml:"from"`
		To          int64 `yaml:"to"`
		MaxCapacity int   `yaml:"max_capacity"`
	} `yaml:"room_range"`
	Residents []residentsdomain.Resident    `yaml:"residents"`
	Fees      []feesdomain.FeeRecord        `yaml:"fees"`
	Tickets   []ticketsdomain.SupportTicket `yaml:"tickets"`
	Messages  []messagesdomain.ChatMessage  `yaml:"messages"`
}

// Load parses the embedded seed. Each call returns fresh slices.
func Load() (Data, error) {
	return parse(raw)
}

// MustLoad panics on a malformed embedded seed, which is a build defect.
func MustLoad() Data {
	data, err := Load()
	if err != nil {
		panic(err)
	}
	return data
}

func parse(payload []byte) (Data, error) {
	var f file
	if err := yaml.Unmarshal(payload, &f); err != nil {
		return Data{}, fmt.Errorf("parse seed: %w", err)
	}

	rooms := f.Rooms
	for id := f.RoomRange.From; f.RoomRange.From > 0 && id <= f.RoomRange.To; id++ {
		rooms = append(rooms, roomsdomain.Room{
			ID:          id,
			Number:      strconv.FormatInt(id, 10),
			MaxCapacity: f.RoomRange.MaxCapacity,
		})
	}

	return Data{
		Rooms:     rooms,
		Residents: f.Residents,
		Fees:      f.Fees,
		Tickets:   f.Tickets,
		Messages:  f.Messages,
	}, nil
}
