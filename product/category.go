package product

import "encoding/json"

// Category kind tags. The set is closed; anything else resolves to no payload.
const (
	KindBook        = "Book"
	KindElectronics = "Electronics"
	KindClothing    = "Clothing"
)

// Category is a product's category payload: exactly one of Book, Electronics,
// or Clothing. A product without a payload is a generic product.
type Category interface {
	Kind() string
	isCategory()
}

// Book carries the attributes specific to book products.
type Book struct {
	Author string `json:"author,omitempty"`
	Genre  string `json:"genre,omitempty"`
}

func (Book) Kind() string { return KindBook }
func (Book) isCategory()  {}

// Electronics carries the attributes specific to electronics products.
type Electronics struct {
	Brand    string `json:"brand,omitempty"`
	Warranty string `json:"warranty,omitempty"`
}

func (Electronics) Kind() string { return KindElectronics }
func (Electronics) isCategory()  {}

// Clothing carries the attributes specific to clothing products.
type Clothing struct {
	Size     string `json:"size,omitempty"`
	Material string `json:"material,omitempty"`
}

func (Clothing) Kind() string { return KindClothing }
func (Clothing) isCategory()  {}

// CategoryFor maps a request's declared type tag and auxiliary fields into
// the matching payload. An empty or unrecognized tag resolves to no payload
// rather than an error.
func CategoryFor(r Request) Category {
	switch r.Type {
	case KindBook:
		return Book{Author: r.Author, Genre: r.Genre}
	case KindElectronics:
		return Electronics{Brand: r.Brand, Warranty: r.Warranty}
	case KindClothing:
		return Clothing{Size: r.Size, Material: r.Material}
	default:
		return nil
	}
}

// categoryEnvelope is the persisted JSON shape of a category payload, with
// the discriminator tag embedded alongside every variant's fields.
type categoryEnvelope struct {
	Type     string `json:"type"`
	Author   string `json:"author,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Brand    string `json:"brand,omitempty"`
	Warranty string `json:"warranty,omitempty"`
	Size     string `json:"size,omitempty"`
	Material string `json:"material,omitempty"`
}

// MarshalCategory encodes a category payload with its tag embedded. A nil
// category encodes to nil, which stores as SQL NULL.
func MarshalCategory(c Category) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	env := categoryEnvelope{Type: c.Kind()}
	switch v := c.(type) {
	case Book:
		env.Author, env.Genre = v.Author, v.Genre
	case Electronics:
		env.Brand, env.Warranty = v.Brand, v.Warranty
	case Clothing:
		env.Size, env.Material = v.Size, v.Material
	}
	return json.Marshal(env)
}

// UnmarshalCategory decodes a stored category payload. Empty input and
// unrecognized tags resolve to no payload.
func UnmarshalCategory(data []byte) (Category, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var env categoryEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Type {
	case KindBook:
		return Book{Author: env.Author, Genre: env.Genre}, nil
	case KindElectronics:
		return Electronics{Brand: env.Brand, Warranty: env.Warranty}, nil
	case KindClothing:
		return Clothing{Size: env.Size, Material: env.Material}, nil
	default:
		return nil, nil
	}
}
