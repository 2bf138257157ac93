package service

import (
	"net/http"
	"strings"

	"github.com/fulldump/apitest"
	"github.com/fulldump/biff"
	json2 "github.com/go-json-experiment/json"
)

type JSON = map[string]interface{}

// ndjson decodes one value per non empty line.
func ndjson(body string) []any {
	result := []any{}
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		var item any
		if err := json2.Unmarshal([]byte(line), &item); err != nil {
			result = append(result, line)
			continue
		}
		result = append(result, item)
	}
	return result
}

func ids(body string) []any {
	result := []any{}
	for _, item := range ndjson(body) {
		document, _ := item.(JSON)
		result = append(result, document["id"])
	}
	return result
}

func errorDescription(resp *apitest.Response) any {
	body, _ := resp.BodyJson().(JSON)
	e, _ := body["error"].(JSON)
	return e["description"]
}

// Acceptance runs the api scenario against apiRequest, which receives paths
// relative to the api version prefix.
func Acceptance(a *biff.A, apiRequest func(method, path string) *apitest.Request) {

	a.Alternative("Create collection", func(a *biff.A) {
		resp := apiRequest("POST", "/collections").
			WithBodyJson(JSON{
				"name": "my-collection",
			}).Do()
		Save(resp, "Create collection", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusCreated)
		expectedBody := JSON{
			"name":    "my-collection",
			"handle":  "0-0",
			"total":   0,
			"indexes": 0,
		}
		biff.AssertEqualJson(resp.BodyJson(), expectedBody)

		a.Alternative("Retrieve collection", func(a *biff.A) {
			resp := apiRequest("GET", "/collections/my-collection").Do()
			Save(resp, "Retrieve collection", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), expectedBody)
		})

		a.Alternative("List collections", func(a *biff.A) {
			resp := apiRequest("GET", "/collections").Do()
			Save(resp, "List collections", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), []JSON{expectedBody})
		})

		a.Alternative("Create collection twice", func(a *biff.A) {
			resp := apiRequest("POST", "/collections").
				WithBodyJson(JSON{
					"name": "my-collection",
				}).Do()
			Save(resp, "Create collection - already exists", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusConflict)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"error": JSON{
					"message":     "collection already exists: 'my-collection'",
					"description": "conflict",
				},
			})
		})

		a.Alternative("Registry stats", func(a *biff.A) {
			resp := apiRequest("GET", "/stats").Do()
			Save(resp, "Stats", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusOK)
			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"collections": JSON{
					"len":           1,
					"cap":           256,
					"max_cap":       65535,
					"free_slots":    255,
					"retired_slots": 0,
				},
				"documents": 0,
			})
		})

		a.Alternative("Drop collection", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-collection:dropCollection").
				Do()
			Save(resp, "Drop collection", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

			a.Alternative("Get dropped collection", func(a *biff.A) {
				resp := apiRequest("GET", "/collections/my-collection").
					Do()
				Save(resp, "Get collection - not found", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
				biff.AssertEqual(errorDescription(resp), "not found")
			})

			a.Alternative("Create it again", func(a *biff.A) {
				resp := apiRequest("POST", "/collections").
					WithBodyJson(JSON{
						"name": "my-collection",
					}).Do()

				// the dropped slot goes to the end of the free list
				biff.AssertEqual(resp.StatusCode, http.StatusCreated)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"name":    "my-collection",
					"handle":  "1-0",
					"total":   0,
					"indexes": 0,
				})
			})
		})

		a.Alternative("Insert one operation", func(a *biff.A) {
			myDocument := JSON{
				"id":      "my-id",
				"name":    "Fulanez",
				"address": "Elm Street 11",
			}
			resp := apiRequest("POST", "/collections/my-collection:insert").
				WithBodyJson(myDocument).Do()
			Save(resp, "Insert one", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqual(resp.BodyString(), `{"address":"Elm Street 11","id":"my-id","name":"Fulanez","_handle":"0-0"}`+"\n")

			storedDocument := JSON{
				"id":      "my-id",
				"name":    "Fulanez",
				"address": "Elm Street 11",
				"_handle": "0-0",
			}

			a.Alternative("Find with fullscan", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"mode":  "fullscan",
						"skip":  0,
						"limit": 1,
						"filter": JSON{
							"name": "Fulanez",
						},
					}).Do()
				Save(resp, "Find - fullscan", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), storedDocument)
			})

			a.Alternative("Find with bad mode", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"mode": "invented",
					}).Do()
				Save(resp, "Find - bad mode", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"error": JSON{
						"message":     "bad request: bad mode 'invented', must be [btree|fullscan|unique]",
						"description": "bad request",
					},
				})
			})

			a.Alternative("Get document", func(a *biff.A) {
				resp := apiRequest("GET", "/collections/my-collection/documents/0-0").Do()
				Save(resp, "Get document", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"id":       "0-0",
					"document": myDocument,
				})
			})

			a.Alternative("Get document - malformed id", func(a *biff.A) {
				resp := apiRequest("GET", "/collections/my-collection/documents/my-id").Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Patch document", func(a *biff.A) {
				resp := apiRequest("PATCH", "/collections/my-collection/documents/0-0").
					WithBodyJson(JSON{
						"name":    "Menganez",
						"address": nil,
					}).Do()
				Save(resp, "Patch document", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"id": "0-0",
					"document": JSON{
						"id":   "my-id",
						"name": "Menganez",
					},
				})
			})

			a.Alternative("Patch document with empty member name", func(a *biff.A) {
				resp := apiRequest("PATCH", "/collections/my-collection/documents/0-0").
					WithBodyString(`{"": 1}`).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
				biff.AssertEqual(errorDescription(resp), "bad request")

				resp = apiRequest("GET", "/collections/my-collection/documents/0-0").Do()
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"id":       "0-0",
					"document": myDocument,
				})
			})

			a.Alternative("Delete document", func(a *biff.A) {
				resp := apiRequest("DELETE", "/collections/my-collection/documents/0-0").Do()
				Save(resp, "Delete document", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"id":       "0-0",
					"document": myDocument,
				})

				a.Alternative("Stale handle", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:insert").
						WithBodyJson(myDocument).Do()
					biff.AssertEqual(resp.StatusCode, http.StatusCreated)
					biff.AssertEqualJson(resp.BodyJson(), JSON{
						"id":      "my-id",
						"name":    "Fulanez",
						"address": "Elm Street 11",
						"_handle": "1-0",
					})

					resp = apiRequest("GET", "/collections/my-collection/documents/0-0").Do()
					Save(resp, "Get document - stale handle", ``)

					biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
					biff.AssertEqual(errorDescription(resp), "not found")
				})
			})

		})

		a.Alternative("Insert many", func(a *biff.A) {

			myDocuments := []JSON{
				{"id": "1", "name": "Alfonso"},
				{"id": "2", "name": "Gerardo"},
				{"id": "3", "name": "Alfonso"},
			}

			body := ""
			for _, myDocument := range myDocuments {
				line, _ := json2.Marshal(myDocument)
				body += string(line) + "\n"
			}
			resp := apiRequest("POST", "/collections/my-collection:insert").
				WithBodyString(body).Do()
			Save(resp, "Insert many", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(ndjson(resp.BodyString()), []JSON{
				{"id": "1", "name": "Alfonso", "_handle": "0-0"},
				{"id": "2", "name": "Gerardo", "_handle": "1-0"},
				{"id": "3", "name": "Alfonso", "_handle": "2-0"},
			})

			a.Alternative("Create index", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:createIndex").
					WithBodyJson(JSON{"name": "my-index", "type": "map", "field": "id"}).Do()
				Save(resp, "Create index", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusCreated)

				a.Alternative("Delete by index", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:remove").
						WithBodyJson(JSON{
							"index": "my-index",
							"value": "2",
						}).Do()
					Save(resp, "Delete - by index", ``)

					biff.AssertEqualJson(resp.BodyJson(), JSON{"id": "2", "name": "Gerardo", "_handle": "1-0"})
					biff.AssertEqual(resp.StatusCode, http.StatusOK)
				})

				a.Alternative("Patch by index", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:patch").
						WithBodyJson(JSON{
							"index": "my-index",
							"value": "3",
							"patch": JSON{
								"name": "Pedro",
							},
						}).Do()
					Save(resp, "Patch - by index", ``)

					biff.AssertEqualJson(resp.BodyJson(), JSON{"id": "3", "name": "Pedro", "_handle": "2-0"})
					biff.AssertEqual(resp.StatusCode, http.StatusOK)

					resp = apiRequest("POST", "/collections/my-collection:find").
						WithBodyJson(JSON{"limit": 10}).Do()
					Save(resp, "Find - fullscan with limit 10", ``)

					biff.AssertEqual(ids(resp.BodyString()), []any{"1", "2", "3"})
					biff.AssertEqual(ndjson(resp.BodyString())[2].(JSON)["name"], "Pedro")
				})

				a.Alternative("Size", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:size").Do()
					Save(resp, "Size", ``)

					body := resp.BodyJson().(JSON)
					biff.AssertEqual(resp.StatusCode, http.StatusOK)
					biff.AssertEqualJson(body["len"], 3)
					biff.AssertEqualJson(body["slots"], 20)
					biff.AssertEqualJson(body["free_slots"], 17)
					biff.AssertEqualJson(body["indexes"], 1)
				})

			})

			a.Alternative("Delete by fullscan", func(a *biff.A) {

				resp := apiRequest("POST", "/collections/my-collection:remove").
					WithBodyJson(JSON{
						"limit": 10,
						"filter": JSON{
							"name": "Alfonso",
						},
					}).Do()
				Save(resp, "Delete - fullscan", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(ids(resp.BodyString()), []any{"1", "3"})

				resp = apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{"limit": 10}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(ids(resp.BodyString()), []any{"2"})
			})

			a.Alternative("Patch by fullscan", func(a *biff.A) {

				resp := apiRequest("POST", "/collections/my-collection:patch").
					WithBodyJson(JSON{
						"limit": 10,
						"filter": JSON{
							"name": "Alfonso",
						},
						"patch": JSON{
							"country": "es",
						},
					}).Do()
				Save(resp, "Patch - by fullscan", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqual(ids(resp.BodyString()), []any{"1", "3"})

				resp = apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{"limit": 10}).Do()

				biff.AssertEqualJson(ndjson(resp.BodyString()), []JSON{
					{"id": "1", "name": "Alfonso", "country": "es", "_handle": "0-0"},
					{"id": "2", "name": "Gerardo", "_handle": "1-0"},
					{"id": "3", "name": "Alfonso", "country": "es", "_handle": "2-0"},
				})
			})

			a.Alternative("Patch without patch", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:patch").
					WithBodyJson(JSON{"limit": 10}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
			})

			a.Alternative("Clear collection", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:clear").Do()
				Save(resp, "Clear collection", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

				resp = apiRequest("GET", "/collections/my-collection").Do()
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"name":    "my-collection",
					"handle":  "0-0",
					"total":   0,
					"indexes": 0,
				})
			})

		})

		a.Alternative("Create index - map", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-collection:createIndex").
				WithBodyJson(JSON{"name": "my-index", "type": "map", "field": "id", "sparse": true}).Do()
			Save(resp, "Create index - map", ``)

			expectedBody := JSON{"type": "map", "name": "my-index", "field": "id", "sparse": true, "unique": false}
			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqualJson(resp.BodyJson(), expectedBody)

			a.Alternative("Get index", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:getIndex").
					WithBodyJson(JSON{
						"name": "my-index",
					}).Do()
				Save(resp, "Retrieve index", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), expectedBody)
			})

			a.Alternative("List indexes", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:listIndexes").Do()
				Save(resp, "List indexes", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), []JSON{expectedBody})
			})

			a.Alternative("Create index twice", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:createIndex").
					WithBodyJson(JSON{"name": "my-index", "type": "map", "field": "id"}).Do()

				biff.AssertEqual(resp.StatusCode, http.StatusConflict)
			})

			a.Alternative("Drop index", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:dropIndex").
					WithBodyJson(JSON{"name": "my-index"}).Do()
				Save(resp, "Drop index", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusNoContent)

				resp = apiRequest("POST", "/collections/my-collection:listIndexes").Do()
				biff.AssertEqualJson(resp.BodyJson(), []JSON{})
			})

			a.Alternative("Insert twice", func(a *biff.A) {
				myDocument := JSON{
					"id":      "my-id",
					"name":    "Fulanez",
					"address": "Elm Street 11",
				}

				apiRequest("POST", "/collections/my-collection:insert").
					WithBodyJson(myDocument).Do()
				resp := apiRequest("POST", "/collections/my-collection:insert").
					WithBodyJson(myDocument).Do()
				Save(resp, "Insert - unique index conflict", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusConflict)
				biff.AssertEqual(errorDescription(resp), "conflict")

				resp = apiRequest("GET", "/collections/my-collection").Do()
				biff.AssertEqualJson(resp.BodyJson().(JSON)["total"], 1)
			})

			a.Alternative("Find with unique index", func(a *biff.A) {

				myDocument := JSON{
					"id":      "my-id",
					"name":    "Fulanez",
					"address": "Elm Street 11",
				}
				apiRequest("POST", "/collections/my-collection:insert").
					WithBodyJson(myDocument).Do()

				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"index": "my-index",
						"value": "my-id",
					}).Do()
				Save(resp, "Find - by unique index", ``)

				biff.AssertEqual(resp.StatusCode, http.StatusOK)
				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"id":      "my-id",
					"name":    "Fulanez",
					"address": "Elm Street 11",
					"_handle": "0-0",
				})
			})

			a.Alternative("Find - index not found", func(a *biff.A) {
				resp := apiRequest("POST", "/collections/my-collection:find").
					WithBodyJson(JSON{
						"index": "invented",
						"value": "my-id",
					}).Do()
				Save(resp, "Find - index not found", ``)

				biff.AssertEqualJson(resp.BodyJson(), JSON{
					"error": JSON{
						"description": "not found",
						"message":     "index not found: 'invented', available indexes [my-index]",
					},
				})
				biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
			})

		})

		a.Alternative("Create index - btree compound", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-collection:createIndex").
				WithBodyJson(JSON{"name": "my-index", "type": "btree", "fields": []string{"category", "-product"}}).Do()
			Save(resp, "Create index - btree compound", ``)

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)

			a.Alternative("Insert some documents", func(a *biff.A) {
				documents := []JSON{
					{"id": "1", "category": "fruit", "product": "orange"},
					{"id": "2", "category": "drink", "product": "water"},
					{"id": "3", "category": "drink", "product": "milk"},
					{"id": "4", "category": "fruit", "product": "apple"},
				}

				for _, document := range documents {
					resp := apiRequest("POST", "/collections/my-collection:insert").
						WithBodyJson(document).Do()
					biff.AssertEqual(resp.StatusCode, http.StatusCreated)
				}

				a.Alternative("Find with BTree", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:find").
						WithBodyJson(JSON{
							"index": "my-index",
							"skip":  0,
							"limit": 10,
						}).Do()
					Save(resp, "Find - by BTree compound", ``)

					biff.AssertEqual(ids(resp.BodyString()), []any{"2", "3", "1", "4"})
				})

			})
		})

		a.Alternative("Create index - btree", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-collection:createIndex").
				WithBodyJson(JSON{"name": "my-index", "type": "btree", "fields": []string{"category", "product"}}).Do()
			Save(resp, "Create index - btree", ``)

			expectedBody := JSON{"name": "my-index", "type": "btree", "fields": []interface{}{"category", "product"}, "sparse": false, "unique": false}
			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			biff.AssertEqual(resp.BodyJson(), expectedBody)

			a.Alternative("Insert some documents", func(a *biff.A) {

				documents := []JSON{
					{"id": "1", "category": "fruit", "product": "orange"},
					{"id": "2", "category": "drink", "product": "water"},
					{"id": "3", "category": "drink", "product": "milk"},
					{"id": "4", "category": "fruit", "product": "apple"},
				}

				for _, document := range documents {
					resp := apiRequest("POST", "/collections/my-collection:insert").
						WithBodyJson(document).Do()
					biff.AssertEqual(resp.StatusCode, http.StatusCreated)
				}

				a.Alternative("Find with BTree", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:find").
						WithBodyJson(JSON{
							"index": "my-index",
							"skip":  0,
							"limit": 10,
						}).Do()
					Save(resp, "Find - by BTree", ``)

					biff.AssertEqual(ids(resp.BodyString()), []any{"3", "2", "4", "1"})
				})

				a.Alternative("Find with BTree with filter", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:find").
						WithBodyJson(JSON{
							"index": "my-index",
							"skip":  0,
							"limit": 10,
							"filter": JSON{
								"category": "fruit",
							},
						}).Do()
					Save(resp, "Find - by BTree with filter", ``)

					biff.AssertEqual(ids(resp.BodyString()), []any{"4", "1"})
				})

				a.Alternative("Find with BTree - range", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:find").
						WithBodyJson(JSON{
							"index": "my-index",
							"limit": 10,
							"from": JSON{
								"category": "fruit",
							},
						}).Do()
					Save(resp, "Find - by BTree range", ``)

					biff.AssertEqual(ids(resp.BodyString()), []any{"4", "1"})
				})

				a.Alternative("Find with BTree - reverse order", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:find").
						WithBodyJson(JSON{
							"index":   "my-index",
							"skip":    0,
							"limit":   10,
							"reverse": true,
						}).Do()
					Save(resp, "Find - by BTree reverse order", ``)

					biff.AssertEqual(ids(resp.BodyString()), []any{"1", "4", "2", "3"})
				})

				a.Alternative("Remove - BTree", func(a *biff.A) {
					resp := apiRequest("POST", "/collections/my-collection:remove").
						WithBodyJson(JSON{
							"index": "my-index",
							"limit": 2,
						}).Do()
					Save(resp, "Remove - by BTree", ``)

					biff.AssertEqual(ids(resp.BodyString()), []any{"3", "2"})

					resp = apiRequest("POST", "/collections/my-collection:find").
						WithBodyJson(JSON{
							"index": "my-index",
							"limit": 10,
						}).Do()
					biff.AssertEqual(ids(resp.BodyString()), []any{"4", "1"})
				})

			})

		})

		a.Alternative("Find with collection not found", func(a *biff.A) {

			resp := apiRequest("POST", "/collections/your-collection:find").
				WithBodyJson(JSON{}).Do()

			Save(resp, "Find - collection not found", ``)

			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"error": JSON{
					"message":     "collection not found: 'your-collection'",
					"description": "not found",
				},
			})
			biff.AssertEqual(resp.StatusCode, http.StatusNotFound)
		})

	})

	a.Alternative("Insert on not existing collection", func(a *biff.A) {

		myDocument := JSON{
			"id": "my-id",
		}
		resp := apiRequest("POST", "/collections/my-collection:insert").
			WithBodyJson(myDocument).Do()

		biff.AssertEqual(resp.BodyString(), `{"id":"my-id","_handle":"0-0"}`+"\n")
		biff.AssertEqual(resp.StatusCode, http.StatusCreated)

		a.Alternative("List collection", func(a *biff.A) {

			resp := apiRequest("POST", "/collections/my-collection:find").
				WithBodyJson(JSON{}).Do()

			biff.AssertEqual(resp.BodyString(), `{"id":"my-id","_handle":"0-0"}`+"\n")
			biff.AssertEqual(resp.StatusCode, http.StatusOK)
		})

		a.Alternative("Default id", func(a *biff.A) {

			resp := apiRequest("POST", "/collections/my-collection:insert").
				WithBodyJson(JSON{"name": "Menganez"}).Do()

			biff.AssertEqual(resp.StatusCode, http.StatusCreated)
			id, _ := resp.BodyJson().(JSON)["id"].(string)
			biff.AssertEqual(len(id), 36)
		})

		a.Alternative("Retrieve collection", func(a *biff.A) {

			resp := apiRequest("GET", "/collections/my-collection").Do()

			biff.AssertEqualJson(resp.BodyJson(), JSON{
				"name":     "my-collection",
				"handle":   "0-0",
				"total":    1,
				"indexes":  0,
				"defaults": JSON{"id": "uuid()"},
			})
		})

	})

	a.Alternative("Set defaults", func(a *biff.A) {

		resp := apiRequest("POST", "/collections/my-collection:setDefaults").
			WithBodyJson(JSON{
				"id":      nil,
				"counter": "auto()",
				"kind":    "user",
			}).Do()
		Save(resp, "Set defaults", ``)

		biff.AssertEqual(resp.StatusCode, http.StatusOK)
		biff.AssertEqualJson(resp.BodyJson(), JSON{
			"counter": "auto()",
			"kind":    "user",
		})

		a.Alternative("Insert with defaults", func(a *biff.A) {
			resp := apiRequest("POST", "/collections/my-collection:insert").
				WithBodyString("{}\n{\"kind\":\"admin\"}\n").Do()

			biff.AssertEqualJson(ndjson(resp.BodyString()), []JSON{
				{"counter": 1, "kind": "user", "_handle": "0-0"},
				{"counter": 2, "kind": "admin", "_handle": "1-0"},
			})
		})

	})

	a.Alternative("Create index on not existing collection", func(a *biff.A) {

		resp := apiRequest("POST", "/collections/my-collection:createIndex").
			WithBodyJson(JSON{
				"type":  "map",
				"field": "id",
			}).Do()

		biff.AssertEqual(resp.StatusCode, http.StatusBadRequest)
		biff.AssertEqual(errorDescription(resp), "bad request")
	})

	a.Alternative("Empty insert", func(a *biff.A) {

		resp := apiRequest("POST", "/collections/my-collection:insert").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNoContent)
	})

	a.Alternative("Not implemented", func(a *biff.A) {

		resp := apiRequest("GET", "/invented/path").Do()

		biff.AssertEqual(resp.StatusCode, http.StatusNotImplemented)
		biff.AssertEqual(errorDescription(resp), "this endpoint does not exist, please check the documentation")
	})

}
