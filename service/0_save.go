package service

import (
	"fmt"
	"maps"
	"net/http"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/fulldump/apitest"
	json2 "github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Save writes a markdown example of the request and response into the
// directory named by API_EXAMPLES_PATH. Nothing is written when it is unset.
func Save(response *apitest.Response, title, description string) {

	examplesPath := os.Getenv("API_EXAMPLES_PATH")
	if examplesPath == "" {
		return
	}

	request := response.Request

	query := request.URL.RawQuery
	if query != "" {
		query = "?" + query
	}
	requestBody := formatBody(response.BodyRequestString())

	b := &strings.Builder{}

	fmt.Fprintf(b, "# %s\n", title)
	fmt.Fprintf(b, "%s\n", cropTabs(description))

	b.WriteString("Curl example:\n\n```sh\n")
	method := ""
	if request.Method != http.MethodGet {
		method = "-X " + request.Method + " "
	}
	fmt.Fprintf(b, "curl %s\"https://example.com%s%s\"", method, request.URL.Path, query)
	for _, k := range slices.Sorted(maps.Keys(request.Header)) {
		for _, v := range request.Header[k] {
			fmt.Fprintf(b, " \\\n-H \"%s: %s\"", k, v)
		}
	}
	if requestBody != "" {
		fmt.Fprintf(b, " \\\n-d '%s'", requestBody)
	}
	b.WriteString("\n```\n\n\n")

	b.WriteString("HTTP request/response example:\n\n```http\n")
	fmt.Fprintf(b, "%s %s%s %s\n", request.Method, request.URL.Path, query, request.Proto)
	b.WriteString("Host: example.com\n")
	writeHeaders(b, request.Header)
	fmt.Fprintf(b, "\n%s\n\n", requestBody)

	fmt.Fprintf(b, "%s %s\n", response.Proto, response.Status)
	writeHeaders(b, response.Header)
	fmt.Fprintf(b, "\n%s\n```\n\n\n", formatBody(response.BodyString()))

	filename := strings.ReplaceAll(strings.ToLower(title), " ", "_") + ".md"
	p := path.Join(examplesPath, path.Clean(filename))
	fmt.Println("Saving", p)
	if err := os.WriteFile(p, []byte(b.String()), 0666); err != nil {
		fmt.Println("Saving err:", err)
	}
}

func writeHeaders(b *strings.Builder, header http.Header) {
	for _, k := range slices.Sorted(maps.Keys(header)) {
		if k == "Date" {
			b.WriteString("Date: Mon, 15 Aug 2022 02:08:13 GMT\n")
			continue
		}
		for _, v := range header[k] {
			fmt.Fprintf(b, "%s: %s\n", k, v)
		}
	}
}

// formatBody indents every JSON line of body. Lines that are not JSON are
// kept as they are.
func formatBody(body string) string {
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i, line := range lines {
		var v any
		if err := json2.Unmarshal([]byte(line), &v); err != nil {
			continue
		}
		formatted, err := json2.Marshal(v, json2.Deterministic(true), jsontext.WithIndent("    "))
		if err != nil {
			continue
		}
		lines[i] = string(formatted)
	}
	return strings.Join(lines, "\n")
}

// cropTabs removes the indentation shared by the lines of a raw string
// literal written inside a test.
func cropTabs(d string) string {
	lines := strings.Split(d, "\n")

	first, last := 0, len(lines)
	if len(lines) > 2 {
		first++
		last--
	}

	minTabs := -1
	for _, line := range lines[first:last] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		c := len(line) - len(strings.TrimLeft(line, "\t"))
		if minTabs < 0 || c < minTabs {
			minTabs = c
		}
	}
	if minTabs <= 0 {
		return d
	}

	prefix := strings.Repeat("\t", minTabs)
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}
