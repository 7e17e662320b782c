package cuebench

import "testing"

func TestCarbonCount(t *testing.T) {
	cases := []struct {
		formula string
		want    int
	}{
		{"C6H12O6", 6},          // glucose
		{"CO2", 1},              // carbon dioxide
		{"CHO2", 1},             // formate
		{"C10H12N5O13P3", 10},   // ATP
		{"H2O", 0},              // water
		{"H", 0},                // proton
		{"CaCl2", 0},            // Ca/Cl must not count as carbon
		{"CoC10H12N5O13P2", 10}, // cobalt complex: Co is not C
		{"C", 1},
		{"", 0},
		{"R", 0},          // polymer placeholder, no usable counts
		{"(C6H10O5)n", 0}, // unparseable polymer notation
	}

	for _, tc := range cases {
		if got := CarbonCount(tc.formula); got != tc.want {
			t.Errorf("CarbonCount(%q) = %d, want %d", tc.formula, got, tc.want)
		}
	}
}

func TestParseFormula(t *testing.T) {
	counts := ParseFormula("C6H12O6")
	if counts["C"] != 6 || counts["H"] != 12 || counts["O"] != 6 {
		t.Errorf("glucose parsed as %v", counts)
	}

	counts = ParseFormula("MgCl2")
	if counts["Mg"] != 1 || counts["Cl"] != 2 {
		t.Errorf("MgCl2 parsed as %v", counts)
	}
	if counts["C"] != 0 {
		t.Errorf("MgCl2 should have no carbon, got %d", counts["C"])
	}

	if ParseFormula("6CH") != nil {
		t.Errorf("Formula starting with a digit should be rejected")
	}
}

func TestParseFormula_RepeatedElement(t *testing.T) {
	// Some curated formulas repeat an element; counts accumulate.
	counts := ParseFormula("CH3COOH")
	if counts["C"] != 2 || counts["O"] != 2 || counts["H"] != 4 {
		t.Errorf("acetic acid parsed as %v", counts)
	}
}
