package domain

import "sort"

const ScoreField = "score"

type Field struct {
	Name      string
	Value     string
	Tokenized bool
}

// Document - набор полей по имени, порядок не важен.
type Document struct {
	fields map[string]Field
}

func NewDocument() Document {
	return Document{fields: make(map[string]Field)}
}

// Add stores the field, replacing any field with the same name.
func (d *Document) Add(f Field) {
	if d.fields == nil {
		d.fields = make(map[string]Field)
	}
	d.fields[f.Name] = f
}

func (d Document) Get(name string) string {
	return d.fields[name].Value
}

func (d Document) Field(name string) (Field, bool) {
	f, ok := d.fields[name]
	return f, ok
}

func (d Document) Len() int {
	return len(d.fields)
}

// Names returns field names sorted alphabetically.
func (d Document) Names() []string {
	names := make([]string, 0, len(d.fields))
	for name := range d.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the field values keyed by name.
func (d Document) Map() map[string]string {
	m := make(map[string]string, len(d.fields))
	for name, f := range d.fields {
		m[name] = f.Value
	}
	return m
}
