package savestore

import (
	"time"

	"uqm-starseed/internal/save"
)

// Slot is a stored save without its blob
type Slot struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Seed       uint32        `json:"seed"`
	Activity   save.Activity `json:"activity"`
	GameDate   string        `json:"game_date"`
	Summary    SlotSummary   `json:"summary"`
	Compressed bool          `json:"compressed"`
	Checksum   string        `json:"checksum"`
	RawSize    int           `json:"raw_size"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// SlotSummary is the load-menu view kept next to the blob so listing
// slots never decodes a save
type SlotSummary struct {
	ShipName      string `json:"ship_name"`
	CommanderName string `json:"commander_name"`
	PlanetName    string `json:"planet_name,omitempty"`
	ResUnits      uint32 `json:"res_units"`
	Fuel          uint32 `json:"fuel"`
	Crew          uint16 `json:"crew"`
	Landers       uint8  `json:"landers"`
	Credits       uint16 `json:"credits"`
	Ships         int    `json:"ships"`
	Devices       int    `json:"devices"`
	LogX          int32  `json:"log_x"`
	LogY          int32  `json:"log_y"`
}

func newSlotSummary(sum *save.Summary) SlotSummary {
	return SlotSummary{
		ShipName:      sum.SIS.ShipName,
		CommanderName: sum.SIS.CommanderName,
		PlanetName:    sum.SIS.PlanetName,
		ResUnits:      sum.SIS.ResUnits,
		Fuel:          sum.SIS.FuelOnBoard,
		Crew:          sum.SIS.CrewEnlisted,
		Landers:       sum.SIS.NumLanders,
		Credits:       sum.Credits(),
		Ships:         int(sum.NumShips),
		Devices:       int(sum.NumDevices),
		LogX:          sum.SIS.LogX,
		LogY:          sum.SIS.LogY,
	}
}

// AutosaveName is the slot autosaves overwrite
const AutosaveName = "Autosave"
