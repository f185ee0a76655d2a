// Package testsupport provides fixture helpers and request builders shared
// by package tests.
package testsupport

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-store-manager/product"
)

// LoadFixture loads test data from a fixture file. The path is relative to
// the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it
// into dest.
func LoadFixtureJSON(t *testing.T, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// LoadReader creates an io.Reader from fixture data. Useful for testing
// functions that accept readers.
func LoadReader(t *testing.T, path string) io.Reader {
	t.Helper()

	return strings.NewReader(string(LoadFixture(t, path)))
}

// RequestsReader marshals import requests into the JSON array shape the bulk
// importer consumes.
func RequestsReader(t *testing.T, reqs []product.Request) io.Reader {
	t.Helper()

	data, err := json.Marshal(reqs)
	if err != nil {
		t.Fatalf("failed to marshal import requests: %v", err)
	}
	return strings.NewReader(string(data))
}

// BookRequest builds a valid book import request.
func BookRequest(name, author string) product.Request {
	return product.Request{
		Name:     name,
		Price:    19.99,
		Quantity: 3,
		Type:     product.KindBook,
		Author:   author,
		Genre:    "Programming",
	}
}

// ElectronicsRequest builds a valid electronics import request.
func ElectronicsRequest(name, brand string) product.Request {
	return product.Request{
		Name:     name,
		Price:    899.00,
		Quantity: 2,
		Type:     product.KindElectronics,
		Brand:    brand,
		Warranty: "2 years",
	}
}

// ClothingRequest builds a valid clothing import request.
func ClothingRequest(name, size string) product.Request {
	return product.Request{
		Name:     name,
		Price:    29.90,
		Quantity: 10,
		Type:     product.KindClothing,
		Size:     size,
		Material: "Cotton",
	}
}

// GenericRequest builds a valid request with no category payload.
func GenericRequest(name string) product.Request {
	return product.Request{
		Name:     name,
		Price:    5.00,
		Quantity: 1,
	}
}
