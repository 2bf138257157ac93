package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fulldump/goconfig"
	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/fulldump/slotdb/bootstrap"
	"github.com/fulldump/slotdb/configuration"
)

var banner = `
     _       _      _ _     
 ___| | ___ | |_ __| | |__  
/ __| |/ _ \| __/ _' | '_ \ 
\__ \ | (_) | || (_| | |_) |
|___/_|\___/ \__\__,_|_.__/ 
            version ` + bootstrap.VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", bootstrap.VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		json2.MarshalWrite(os.Stdout, c, jsontext.WithIndent("    "))
		fmt.Println()
	}

	start, _, err := bootstrap.Bootstrap(&c)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}

	start()
}
