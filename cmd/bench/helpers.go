package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	json2 "github.com/go-json-experiment/json"

	"github.com/fulldump/slotdb/bootstrap"
	"github.com/fulldump/slotdb/configuration"
)

type JSON = map[string]any

func Parallel(workers int, f func()) {
	wg := &sync.WaitGroup{}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f()
		}()
	}
	wg.Wait()
}

func CreateCollection(base string) string {

	name := "col-" + strconv.FormatInt(time.Now().UnixNano(), 10)

	payload, _ := json2.Marshal(JSON{"name": name})

	req, _ := http.NewRequest("POST", base+"/v1/collections", bytes.NewReader(payload))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	io.Copy(os.Stdout, resp.Body)

	return name
}

// CreateServer starts an in-process server when no base url is given. The
// returned function stops it.
func CreateServer(c *Config) func() {
	if c.Base != "" {
		return func() {}
	}

	conf := configuration.Default()
	conf.HttpAddr = c.Addr
	conf.ShowBanner = false
	c.Base = "http://" + conf.HttpAddr

	start, stop, err := bootstrap.Bootstrap(&conf)
	if err != nil {
		fmt.Println("ERROR: bootstrap:", err.Error())
		os.Exit(2)
	}
	go start()

	return stop
}

func report(what string, n int64, took time.Duration) {
	fmt.Println(what+":", n)
	fmt.Println("took:", took)
	fmt.Printf("Throughput: %.2f ops/sec\n", float64(n)/took.Seconds())
}
