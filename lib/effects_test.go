package lib

import "testing"

func TestParseFireResult(t *testing.T) {
	for _, tc := range []struct {
		text   string
		result FireResult
	}{
		{"K", FireResult{Kill: true}},
		{"kia", FireResult{Kill: true}},
		{"NMC", FireResult{MoraleCheck: true}},
		{" 2MC", FireResult{MoraleCheck: true, Modifier: 2}},
		{"-", FireResult{}},
		{"", FireResult{}},
	} {
		result, err := ParseFireResult(tc.text)
		if err != nil {
			t.Fatalf("Error parsing %q, %v", tc.text, err)
		}
		if result != tc.result {
			t.Errorf("Parsed %q as %v, expected %v", tc.text, result, tc.result)
		}
	}
	for _, text := range []string{"X", "0MC", "-1MC", "MC"} {
		if _, err := ParseFireResult(text); err == nil {
			t.Errorf("Expected an error parsing %q", text)
		}
	}
	if s := (FireResult{MoraleCheck: true, Modifier: 1}).String(); s != "1MC" {
		t.Errorf("Expected 1MC, got %s", s)
	}
}

func TestFireTableLookup(t *testing.T) {
	k, nmc, one := FireResult{Kill: true}, FireResult{MoraleCheck: true}, FireResult{MoraleCheck: true, Modifier: 1}
	table := &FireTable{
		Columns: []int{2, 4, 8},
		MinRoll: 2,
		Rows: [][]FireResult{
			{nmc, one, k},
			{{}, nmc, one},
			{{}, {}, nmc},
		},
	}
	if err := table.Validate(); err != nil {
		t.Fatal("Invalid table,", err)
	}
	for _, tc := range []struct {
		firepower, roll int
		result          FireResult
	}{
		{1, 2, FireResult{}},
		{2, 2, nmc},
		{5, 3, nmc},
		{12, 2, k},
		{12, -3, k},
		{12, 20, nmc},
		{3, 4, FireResult{}},
	} {
		if result := table.Lookup(tc.firepower, tc.roll); result != tc.result {
			t.Errorf("Firepower %d roll %d: expected %v, got %v", tc.firepower, tc.roll, tc.result, result)
		}
	}
	table.Rows[1] = table.Rows[1][:2]
	if err := table.Validate(); err == nil {
		t.Error("Expected an error for a short row")
	}
	if err := (&FireTable{Columns: []int{4, 2}, Rows: [][]FireResult{{k, k}}}).Validate(); err == nil {
		t.Error("Expected an error for descending columns")
	}
}
