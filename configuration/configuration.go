package configuration

import (
	"github.com/fulldump/slotdb/database"
	"github.com/fulldump/slotdb/slotarray"
	"github.com/fulldump/slotdb/slotmap"
)

type Configuration struct {
	HttpAddr          string `usage:"HTTP address"`
	Version           bool   `usage:"show version and exit"`
	ShowBanner        bool   `usage:"show big banner"`
	ShowConfig        bool   `usage:"print config"`
	EnableCompression bool   `usage:"gzip responses when the client accepts it"`
	ApiKey            string `usage:"api key, empty disables authentication"`
	ApiSecret         string `usage:"api secret"`

	MaxCollections         int  `usage:"maximum number of collections"`
	InitialSlots           int  `usage:"slots created by the first insert of a collection"`
	MaxSlots               int  `usage:"maximum number of slots per collection, 0 means no limit"`
	ClearResetsGenerations bool `usage:"clearing a collection resets its generations, old handles may become valid again"`
	OverflowWrap           bool `usage:"wrap generation counters instead of retiring the slot"`
}

func Default() Configuration {
	return Configuration{
		HttpAddr:          "127.0.0.1:8080",
		ShowBanner:        true,
		EnableCompression: true,
		MaxCollections:    1024,
		InitialSlots:      slotmap.DefaultInitialSlots,
	}
}

// Database translates the configuration into the database settings.
func (c *Configuration) Database() *database.Config {
	rows := slotmap.Options{
		InitialSlots: slots(c.InitialSlots),
		MaxSlots:     slots(c.MaxSlots),
		Clear:        slotmap.ClearKeepGenerations,
		Overflow:     slotmap.OverflowRetire,
	}
	if c.ClearResetsGenerations {
		rows.Clear = slotmap.ClearResetGenerations
	}
	if c.OverflowWrap {
		rows.Overflow = slotmap.OverflowWrap
	}

	return &database.Config{
		MaxCollections: min(max(c.MaxCollections, 0), slotarray.MaxCapacity),
		Rows:           rows,
	}
}

func slots(n int) uint32 {
	if n <= 0 {
		return 0
	}
	return uint32(min(uint64(n), slotmap.MaxSlots))
}
