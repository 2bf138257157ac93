package main

import (
	"log"
	"strings"

	"github.com/fulldump/goconfig"
)

type Config struct {
	Test    string `usage:"name of the test: ALL | INSERT | REMOVE | SLOTMAP | SLOTARRAY"`
	Base    string `usage:"base URL, empty starts a server in process"`
	Addr    string `usage:"address of the in process server"`
	N       int64  `usage:"number of documents"`
	Workers int    `usage:"number of workers"`
}

func main() {

	c := Config{
		Test:    "all",
		Base:    "",
		Addr:    "127.0.0.1:18080",
		N:       1_000_000,
		Workers: 16,
	}
	goconfig.Read(&c)

	switch strings.ToUpper(c.Test) {
	case "ALL":
		TestSlotMap(c)
		TestSlotArray(c)
		TestInsert(c)
		TestRemove(c)
	case "INSERT":
		TestInsert(c)
	case "REMOVE":
		TestRemove(c)
	case "SLOTMAP":
		TestSlotMap(c)
	case "SLOTARRAY":
		TestSlotArray(c)
	default:
		log.Fatalf("Unknown test %s", c.Test)
	}

}
