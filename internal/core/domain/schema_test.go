package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaRef_Key(t *testing.T) {
	tests := []struct {
		name string
		ref  SchemaRef
		want string
	}{
		{
			name: "core ref",
			ref:  SchemaRef{Type: SchemaItem, Version: "1.0.0"},
			want: "item@1.0.0",
		},
		{
			name: "extension ref",
			ref:  SchemaRef{Type: SchemaExtension, Version: "1.0.0", Extension: "projection"},
			want: "extension@1.0.0#projection",
		},
		{
			name: "custom ref",
			ref:  SchemaRef{Type: SchemaCustom, Extension: "/tmp/schema.json"},
			want: "custom@#/tmp/schema.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ref.Key())
		})
	}
}

func TestSchemaRef_KeyDistinguishesVersions(t *testing.T) {
	a := SchemaRef{Type: SchemaItem, Version: "1.0.0"}
	b := SchemaRef{Type: SchemaItem, Version: "1.1.0"}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestSchemaRef_String(t *testing.T) {
	assert.Equal(t, "item (STAC 1.0.0)", SchemaRef{Type: SchemaItem, Version: "1.0.0"}.String())
	assert.Equal(t, "extension view (STAC 1.0.0)",
		SchemaRef{Type: SchemaExtension, Version: "1.0.0", Extension: "view"}.String())
	assert.Equal(t, "custom schema /tmp/s.json",
		SchemaRef{Type: SchemaCustom, Extension: "/tmp/s.json"}.String())
}

func TestSchemaRef_IsExtension(t *testing.T) {
	assert.True(t, SchemaRef{Type: SchemaExtension}.IsExtension())
	assert.False(t, SchemaRef{Type: SchemaItem}.IsExtension())
	assert.False(t, SchemaRef{Type: SchemaCustom}.IsExtension())
}

func TestCoreRef(t *testing.T) {
	ref := CoreRef(TypeCollection, "1.0.0")
	assert.Equal(t, SchemaCollection, ref.Type)
	assert.Equal(t, "1.0.0", ref.Version)
	assert.Empty(t, ref.Extension)
}
