package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	const payload = `{"Name": "Ravi Kumar"}`
	cases := []struct {
		name string
		in   string
	}{
		{"no fences", payload},
		{"json fences", "```json\n" + payload + "\n```"},
		{"bare fences", "```\n" + payload + "\n```"},
		{"leading fence only", "```json\n" + payload},
		{"surrounding whitespace", "\n\n  " + payload + "  \n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, payload, StripFences(tc.in))
		})
	}
}

func TestDecodeIntoFencedAndUnfencedAreIdentical(t *testing.T) {
	const body = `{"Name":"Ravi Kumar","DOB":"01/01/1984","Number":"123456789012","Relation_Name":"Murat Singh","Address":"12 MG Road, Bengaluru 560001"}`

	var plain, fenced AadhaarFields
	require.Nil(t, DecodeInto(body, &plain))
	require.Nil(t, DecodeInto("```json\n"+body+"\n```", &fenced))
	assert.Equal(t, plain, fenced)
	assert.Equal(t, "123456789012", plain.Number)
}

func TestDecodeIntoInvalidJSONReturnsSentinel(t *testing.T) {
	var out PANFields
	pf := DecodeInto("I could not find any card details in this image.", &out)
	require.NotNil(t, pf)
	assert.Equal(t, "Failed to parse response", pf.Message)
	assert.NotEmpty(t, pf.Details)

	// The sentinel serializes to the documented failure object shape.
	b, err := json.Marshal(pf)
	require.NoError(t, err)
	var m map[string]string
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Contains(t, m, "error")
	assert.Contains(t, m, "details")
}

func TestDecodeIntoPassesExtraKeysThrough(t *testing.T) {
	// No schema validation: extra keys are silently dropped by the struct
	// decode and missing keys stay zero-valued. Documented gap.
	var out PANFields
	pf := DecodeInto(`{"Name":"A","Unexpected":"x"}`, &out)
	require.Nil(t, pf)
	assert.Equal(t, "A", out.Name)
	assert.Empty(t, out.PANNumber)
}

func TestTypedFieldStructsSerializeFullKeySet(t *testing.T) {
	// The key-set invariant: every expected key is present even when
	// nothing was extracted.
	b, err := json.Marshal(AadhaarFields{Name: NotFound, DOB: NotFound, Number: NotFound, RelationName: NotFound, Address: NotFound})
	require.NoError(t, err)
	var m map[string]string
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{"Name", "DOB", "Number", "Relation_Name", "Address"} {
		assert.Equal(t, NotFound, m[k])
	}

	b, err = json.Marshal(UdyamFields{})
	require.NoError(t, err)
	var um map[string]string
	require.NoError(t, json.Unmarshal(b, &um))
	for _, k := range []string{"Enterprise_Name", "Udyam_Registration_Number", "Type_of_Enterprise", "Owner_Name", "Address"} {
		assert.Contains(t, um, k)
	}
}
